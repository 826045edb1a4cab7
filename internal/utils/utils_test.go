package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, code)
		}
	}
}

func TestHashVerifyOTP(t *testing.T) {
	hash, err := HashOTP("042317", bcryptTestCost)
	require.NoError(t, err)

	assert.True(t, VerifyOTP(hash, "042317"))
	assert.False(t, VerifyOTP(hash, "042318"))
	assert.False(t, VerifyOTP("not-a-hash", "042317"))
}

// bcryptTestCost keeps the hashing tests fast.
const bcryptTestCost = 4

func TestCheckoutTokenRoundTrip(t *testing.T) {
	ct, err := NewCheckoutToken("secret", "guest@example.com", 15)
	require.NoError(t, err)
	require.NotEmpty(t, ct.Token)

	email, err := ParseCheckoutToken("secret", ct.Token)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", email)
}

func TestCheckoutTokenWrongSecret(t *testing.T) {
	ct, err := NewCheckoutToken("secret", "guest@example.com", 15)
	require.NoError(t, err)

	_, err = ParseCheckoutToken("other", ct.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCheckoutTokenGarbage(t *testing.T) {
	_, err := ParseCheckoutToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
