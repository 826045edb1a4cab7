// This file defines the OTP endpoints that gate invoice creation. A
// customer requests a passcode for their email, the mailer delivers it
// via the queue, and a successful verification yields a short-lived
// checkout token. The plaintext code is never returned over HTTP and
// never stored; only its bcrypt hash is kept, with a TTL.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sasplaza/theater-ticketing/internal/queue"
	"github.com/sasplaza/theater-ticketing/internal/repository"
	"github.com/sasplaza/theater-ticketing/internal/utils"
)

// OTPHandler issues and verifies checkout passcodes. Publish is
// injectable so tests can capture events instead of dialing a broker.
type OTPHandler struct {
	Store          repository.OTPStore
	Publish        func(ctx context.Context, ev queue.OTPEmailEvent) error
	Secret         string
	TTL            time.Duration
	BcryptCost     int
	CheckoutTTLMin int
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// normalizeEmail lowercases and trims an email so the store key is
// stable across differently-cased submissions.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendOTP generates a six-digit code for the given email, stores its
// bcrypt hash with the configured TTL and publishes an otp.email event
// for the mailer. Requesting a new code replaces any pending one.
func (h *OTPHandler) SendOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email is required"})
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code generation failed"})
	}
	hash, err := utils.HashOTP(code, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code generation failed"})
	}
	if err := h.Store.Put(ctx, email, hash, h.TTL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code storage failed"})
	}

	now := time.Now().UTC()
	ev := queue.OTPEmailEvent{
		Email:       email,
		Code:        code,
		ExpiresAt:   now.Add(h.TTL).Format(time.RFC3339),
		RequestedAt: now.Format(time.RFC3339),
	}
	if err := h.Publish(ctx, ev); err != nil {
		// The stored hash would outlive a code the customer never
		// received, so drop it before reporting the failure.
		_ = h.Store.Delete(ctx, email)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "email delivery unavailable"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "verification code sent",
		"expires_in": int(h.TTL / time.Second),
	})
}

// VerifyOTP checks a submitted code against the stored hash. On success
// the pending code is deleted and a checkout token is issued; expired,
// missing and wrong codes are all reported identically.
func (h *OTPHandler) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and otp are required"})
	}

	hash, err := h.Store.Get(ctx, email)
	if errors.Is(err, repository.ErrOTPNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired code"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	if !utils.VerifyOTP(hash, req.OTP) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired code"})
	}
	_ = h.Store.Delete(ctx, email)

	token, err := utils.NewCheckoutToken(h.Secret, email, h.CheckoutTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      token.Token,
		"expires_at": token.Exp.Format(time.RFC3339),
	})
}
