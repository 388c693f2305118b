package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashFormat reports a stored digest that bcrypt cannot parse.
// This is a system fault, distinct from a plain mismatch which
// VerifyPassword reports as (false, nil).
var ErrHashFormat = errors.New("malformed password hash")

// HashPassword returns a bcrypt hash of plain using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash with a plain password.
// A mismatch returns (false, nil); a digest bcrypt cannot read
// returns (false, ErrHashFormat).
func VerifyPassword(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrHashFormat
	}
}
