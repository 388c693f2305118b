package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/imisi99/Todoapi/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user row. The unique indexes on username and
// email are the source of truth for uniqueness: when two signups
// race on the same value the second insert fails here with a 1062
// duplicate-key error, which is mapped back to the matching
// sentinel so there is never a corrupting check-then-insert window.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, firstname, lastname, username, email, password_hash, role, timezone) VALUES (?,?,?,?,?,?,?,?)",
		u.ID, u.Firstname, u.Lastname, u.Username, u.Email, u.PasswordHash, u.Role, u.Timezone)
	if err != nil {
		return dupKeyError(err)
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,firstname,lastname,username,email,password_hash,role,timezone,created_at FROM users WHERE id=? LIMIT 1",
		id))
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,firstname,lastname,username,email,password_hash,role,timezone,created_at FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,firstname,lastname,username,email,password_hash,role,timezone,created_at FROM users WHERE email=? LIMIT 1",
		email))
}

// UsernameEmailTaken reports whether username or email is already in
// use by any row other than excludeID. Pass an empty excludeID at
// signup; pass the caller's own id on profile update so keeping the
// current values is not flagged as a collision. This is only the
// pre-check that produces friendly error kinds; races are decided by
// the unique indexes in Create/UpdateDetails.
func (r *UserRepo) UsernameEmailTaken(ctx context.Context, username, email, excludeID string) (usernameTaken, emailTaken bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.DB.QueryContext(ctx,
		"SELECT username, email FROM users WHERE (username=? OR email=?) AND id<>?",
		strings.TrimSpace(username), email, excludeID)
	if err != nil {
		return false, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var gotUsername, gotEmail string
		if err := rows.Scan(&gotUsername, &gotEmail); err != nil {
			return false, false, err
		}
		if gotUsername == strings.TrimSpace(username) {
			usernameTaken = true
		}
		if strings.EqualFold(gotEmail, email) {
			emailTaken = true
		}
	}
	return usernameTaken, emailTaken, rows.Err()
}

// UpdateDetails rewrites the mutable profile columns.
func (r *UserRepo) UpdateDetails(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET firstname=?, lastname=?, username=?, email=? WHERE id=?",
		u.Firstname, u.Lastname, u.Username, strings.ToLower(strings.TrimSpace(u.Email)), u.ID)
	if err != nil {
		return dupKeyError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// zero rows can also mean "nothing changed"; confirm existence
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", passwordHash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user row. Todos and OTP rows must be removed
// first to respect the foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Username, &u.Email,
		&u.PasswordHash, &u.Role, &u.Timezone, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// dupKeyError maps a MySQL 1062 duplicate-key error onto the unique
// index it violated. The driver message names the key, e.g.
// "Duplicate entry 'janedoe1' for key 'users.username'".
func dupKeyError(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	switch {
	case strings.Contains(msg, "username"):
		return ErrUsernameExists
	case strings.Contains(msg, "email"):
		return ErrEmailExists
	default:
		return ErrUsernameExists
	}
}
