package utils

import (
	"crypto/rand" // secure random number generation
	"fmt"         // fmt pads the code to a fixed width
	"math/big"    // big bounds the random draw

	"golang.org/x/crypto/bcrypt"
)

// otpDigits is the fixed width of generated passcodes.
const otpDigits = 6

// GenerateOTP returns a six-digit numeric passcode drawn from
// crypto/rand.  Leading zeros are preserved, so "042317" is a valid
// code.
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// HashOTP returns the bcrypt hash of a passcode using the given cost.
func HashOTP(code string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyOTP safely compares a bcrypt hash and a plain passcode.
func VerifyOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
