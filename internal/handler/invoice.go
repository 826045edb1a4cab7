// This file defines invoice creation, the final step of checkout. The
// route sits behind the checkout-token middleware, so only a caller who
// verified their email minutes ago can reach it. The invoice itself is
// returned synchronously; delivery and logging happen downstream via the
// invoice.created event.
package handler

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sasplaza/theater-ticketing/internal/queue"
)

// serviceFeeRate is the checkout service fee applied on the booking
// subtotal.
const serviceFeeRate = 0.05

// InvoiceHandler issues invoices for verified customers. Publish is
// injectable so tests can capture events instead of dialing a broker.
type InvoiceHandler struct {
	Publish func(ctx context.Context, ev queue.InvoiceCreatedEvent) error
}

// invoiceCustomer identifies who the invoice is issued to. Email must
// match the verified email carried by the checkout token.
type invoiceCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// invoiceBooking is the booked show as the client presents it at
// checkout: the summary totals from the seat selection session plus the
// display fields of the show context.
type invoiceBooking struct {
	MovieTitle string   `json:"movie_title"`
	CinemaName string   `json:"cinema_name"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Seats      []string `json:"seats"`
	Subtotal   float64  `json:"subtotal"`
}

type createInvoiceRequest struct {
	Customer invoiceCustomer `json:"customer"`
	Booking  invoiceBooking  `json:"booking"`
}

// invoiceResponse is the issued invoice.
type invoiceResponse struct {
	InvoiceNumber string          `json:"invoice_number"`
	Customer      invoiceCustomer `json:"customer"`
	Booking       invoiceBooking  `json:"booking"`
	Subtotal      float64         `json:"subtotal"`
	ServiceFee    float64         `json:"service_fee"`
	Total         float64         `json:"total"`
	CreatedAt     string          `json:"created_at"`
}

// CreateInvoice validates the checkout payload, applies the service fee
// and issues an invoice number. The invoice.created event is published
// best-effort; a broker outage never fails an issued invoice.
func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Customer.Name == "" || req.Customer.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer name and email are required"})
	}
	if req.Booking.MovieTitle == "" || len(req.Booking.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking movie_title and seats are required"})
	}
	if req.Booking.Subtotal <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking subtotal must be positive"})
	}

	// The token proves one email; the invoice must be for that email.
	verified, _ := c.Get("verified_email").(string)
	if verified == "" || normalizeEmail(req.Customer.Email) != verified {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "email does not match verified email"})
	}

	number, err := invoiceNumber()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invoice number generation failed"})
	}
	fee := round2(req.Booking.Subtotal * serviceFeeRate)
	total := round2(req.Booking.Subtotal + fee)
	createdAt := time.Now().UTC().Format(time.RFC3339)

	ev := queue.InvoiceCreatedEvent{
		InvoiceNumber: number,
		CustomerName:  req.Customer.Name,
		CustomerEmail: normalizeEmail(req.Customer.Email),
		CustomerPhone: req.Customer.Phone,
		MovieTitle:    req.Booking.MovieTitle,
		CinemaName:    req.Booking.CinemaName,
		ShowDate:      req.Booking.Date,
		ShowTime:      req.Booking.Time,
		SeatLabels:    req.Booking.Seats,
		Subtotal:      req.Booking.Subtotal,
		ServiceFee:    fee,
		Total:         total,
		CreatedAt:     createdAt,
	}
	if err := h.Publish(ctx, ev); err != nil {
		log.Printf("invoice: publish failed for %s: %v", number, err)
	}

	return c.JSON(http.StatusCreated, invoiceResponse{
		InvoiceNumber: number,
		Customer:      req.Customer,
		Booking:       req.Booking,
		Subtotal:      req.Booking.Subtotal,
		ServiceFee:    fee,
		Total:         total,
		CreatedAt:     createdAt,
	})
}

// invoiceNumber generates an INV-<unix-ms>-<rand> number. The random
// suffix disambiguates invoices issued in the same millisecond.
func invoiceNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", time.Now().UnixMilli(), n), nil
}

// round2 rounds to two decimal places for money arithmetic on float
// amounts.
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
