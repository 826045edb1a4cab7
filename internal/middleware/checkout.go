package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/sasplaza/theater-ticketing/internal/utils"
)

// CheckoutAuth returns an Echo middleware that validates a Bearer checkout
// token and injects the verified email into the request context.  The
// provided secret must match the one used when issuing tokens after OTP
// verification.  This middleware wraps the invoice route so that handlers
// can access the verified customer email via `c.Get("verified_email")`.
func CheckoutAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			email, err := utils.ParseCheckoutToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Handlers downstream read the verified email to cross-check
			// the invoice payload.
			c.Set("verified_email", email)
			return next(c)
		}
	}
}
