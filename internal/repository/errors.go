// Package repository defines the data access layer over MySQL and
// the sentinel error values reused across repositories. These
// sentinels let higher layers such as the auth service distinguish
// failure scenarios with errors.Is instead of inspecting driver
// errors: for example a duplicate username on insert surfaces as
// ErrUsernameExists rather than a raw MySQL 1062 error.
package repository

import "errors"

// ErrUserNotFound is returned when no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when an insert or update would
// violate the unique index on users.username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert or update would violate
// the unique index on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrTodoNotFound is returned when no todo row matches the lookup
// within the caller's user scope. A todo owned by another user is
// indistinguishable from a missing one.
var ErrTodoNotFound = errors.New("todo not found")

// ErrOtpNotFound is returned when no OTP row matches code and
// purpose (and, for scoped lookups, user id).
var ErrOtpNotFound = errors.New("otp not found")

// ErrOtpExpired is returned when the matching OTP exists but its
// expiry window has lapsed.
var ErrOtpExpired = errors.New("otp expired")

// ErrOtpUsed is returned when the matching OTP has already been
// consumed, including when a concurrent verification won the race.
var ErrOtpUsed = errors.New("otp already used")
