package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.GreaterOrEqual(t, code, 100000)
		require.LessOrEqual(t, code, 999999)
	}
}

func TestGenerateOTPVaries(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from a 900k space colliding down to a handful would
	// mean the generator is not uniform.
	require.Greater(t, len(seen), 40)
}
