package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasplaza/theater-ticketing/internal/queue"
	"github.com/sasplaza/theater-ticketing/internal/repository"
	"github.com/sasplaza/theater-ticketing/internal/utils"
)

// otpCapture records published OTP events instead of dialing a broker.
type otpCapture struct {
	events []queue.OTPEmailEvent
	fail   bool
}

func (p *otpCapture) publish(_ context.Context, ev queue.OTPEmailEvent) error {
	if p.fail {
		return assert.AnError
	}
	p.events = append(p.events, ev)
	return nil
}

func newOTPHandler(capture *otpCapture) *OTPHandler {
	return &OTPHandler{
		Store:          repository.NewMemoryOTPStore(),
		Publish:        capture.publish,
		Secret:         "test-secret",
		TTL:            10 * time.Minute,
		BcryptCost:     4,
		CheckoutTTLMin: 15,
	}
}

func TestSendAndVerifyOTP(t *testing.T) {
	capture := &otpCapture{}
	h := newOTPHandler(capture)
	e := echo.New()

	c, rec := postJSON(e, "/v1/otp/send", `{"email":"Guest@Example.com"}`)
	require.NoError(t, h.SendOTP(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, capture.events, 1)
	ev := capture.events[0]
	assert.Equal(t, "guest@example.com", ev.Email, "email is normalized")
	require.Len(t, ev.Code, 6)
	assert.NotContains(t, rec.Body.String(), ev.Code, "code never leaks over HTTP")

	// Verify with the code from the captured email event.
	c, rec = postJSON(e, "/v1/otp/verify", `{"email":"guest@example.com","otp":"`+ev.Code+`"}`)
	require.NoError(t, h.VerifyOTP(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	email, err := utils.ParseCheckoutToken("test-secret", body.Token)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", email)

	// The code is single use.
	c, rec = postJSON(e, "/v1/otp/verify", `{"email":"guest@example.com","otp":"`+ev.Code+`"}`)
	require.NoError(t, h.VerifyOTP(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyWrongCodeLeavesOTPPending(t *testing.T) {
	capture := &otpCapture{}
	h := newOTPHandler(capture)
	e := echo.New()

	c, rec := postJSON(e, "/v1/otp/send", `{"email":"guest@example.com"}`)
	require.NoError(t, h.SendOTP(c))
	require.Equal(t, http.StatusOK, rec.Code)
	code := capture.events[0].Code

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	c, rec = postJSON(e, "/v1/otp/verify", `{"email":"guest@example.com","otp":"`+wrong+`"}`)
	require.NoError(t, h.VerifyOTP(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A failed attempt does not burn the pending code.
	c, rec = postJSON(e, "/v1/otp/verify", `{"email":"guest@example.com","otp":"`+code+`"}`)
	require.NoError(t, h.VerifyOTP(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSendOTPInvalidEmail(t *testing.T) {
	h := newOTPHandler(&otpCapture{})
	e := echo.New()

	c, rec := postJSON(e, "/v1/otp/send", `{"email":"not-an-email"}`)
	require.NoError(t, h.SendOTP(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendOTPPublishFailure(t *testing.T) {
	capture := &otpCapture{fail: true}
	h := newOTPHandler(capture)
	e := echo.New()

	c, rec := postJSON(e, "/v1/otp/send", `{"email":"guest@example.com"}`)
	require.NoError(t, h.SendOTP(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The undelivered code must not be verifiable later.
	_, err := h.Store.Get(context.Background(), "guest@example.com")
	assert.ErrorIs(t, err, repository.ErrOTPNotFound)
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	h := newOTPHandler(&otpCapture{})
	e := echo.New()

	c, rec := postJSON(e, "/v1/otp/verify", `{"email":"nobody@example.com","otp":"123456"}`)
	require.NoError(t, h.VerifyOTP(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
