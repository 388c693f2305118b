package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. Handlers define separate response types with
// appropriate JSON tags; this struct is used by the repository
// and service layers only, so the password hash never leaks into
// a serialized response by accident.
//
// Fields:
//  ID           – uuid primary key of the user (never reused).
//  Firstname    – given name.
//  Lastname     – family name.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password; the plaintext is never stored.
//  Role         – role name, defaults to "user".
//  Timezone     – IANA timezone string, defaults to "UTC".
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.id
	Firstname    string    // users.firstname
	Lastname     string    // users.lastname
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	Timezone     string    // users.timezone
	CreatedAt    time.Time // users.created_at
}

// Defaults applied at signup when the caller does not supply them.
const (
	DefaultRole     = "user"
	DefaultTimezone = "UTC"
)
