// Package service implements the authentication and credential
// lifecycle core: signup, login, token validation, password change
// and reset, and OTP-confirmed account deletion. Handlers call these
// operations and translate the error kinds below into transport
// status codes; the service itself knows nothing about HTTP.
package service

import "errors"

// Error kinds returned by the auth service. Each is a distinct,
// errors.Is-comparable value because callers render different
// user-facing messages per kind. None of the messages ever echo a
// submitted password.
var (
	// ErrUsernameTaken: the requested username is already in use.
	ErrUsernameTaken = errors.New("username is already in use")
	// ErrEmailTaken: the requested email is already in use.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrCredentialsTaken: both username and email are in use.
	// Reported as one combined kind, not two sequential errors.
	ErrCredentialsTaken = errors.New("username and email are already in use")
	// ErrInvalidCredentials covers both an unknown username and a
	// wrong password so a caller cannot probe which field was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPasswordMismatch: new password and confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrUnauthorized: the presented token or asserted identity does
	// not authorize the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound: no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable wraps store faults and timeouts that are
	// not one of the specific kinds above.
	ErrStoreUnavailable = errors.New("store unavailable")
)
