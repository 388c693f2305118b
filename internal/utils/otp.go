package utils

import (
	"crypto/rand"
	"math/big"
)

// OTP codes live in [100000, 999999]: always six digits, never a
// leading zero. Zero-padded codes like 012345 are intentionally out
// of range.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random 6-digit code using
// crypto/rand.
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}
