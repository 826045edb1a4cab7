package utils // package utils provides helper functions for token creation and passcode hashing

import (
	"errors" // errors for sentinel definitions
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned when a checkout token fails signature or
// claim validation.  Handlers should translate it into an HTTP 401.
var ErrInvalidToken = errors.New("invalid checkout token")

// CheckoutToken represents a signed JWT proving a verified email along
// with its expiry.  The Token field contains the JWT string.  Exp stores
// the expiration timestamp.  Checkout tokens are short-lived and encoded
// in the Authorization header when creating an invoice.
type CheckoutToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewCheckoutToken builds and signs an HS256 JWT for a verified email.
// It takes the signing secret, the email the OTP was verified against,
// and a TTL in minutes.  The JWT includes the email claim plus standard
// expiration (exp) and issued at (iat) claims, and a scope claim fixing
// what the token may be used for.
func NewCheckoutToken(secret, email string, ttlMin int) (CheckoutToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"email": email,
		"scope": "checkout",
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return CheckoutToken{}, err
	}
	return CheckoutToken{Token: signed, Exp: exp}, nil
}

// ParseCheckoutToken validates a checkout token string and returns the
// verified email.  The signing method must be HS256; tokens signed with
// any other method are rejected before signature verification.
func ParseCheckoutToken(secret, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if scope, _ := claims["scope"].(string); scope != "checkout" {
		return "", ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
