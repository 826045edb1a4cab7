// Package queue defines message payloads exchanged over the message broker.
package queue

// OTPEmailEvent is published when a customer requests a checkout passcode.
// The mailer consumes it and delivers the code; the API never sends email
// inline. The plaintext code exists only in this message, the stored copy
// is a bcrypt hash.
type OTPEmailEvent struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	ExpiresAt   string `json:"expires_at"`
	RequestedAt string `json:"requested_at"`
}

// InvoiceCreatedEvent is published when an invoice is issued at checkout.
// It contains enough information for downstream consumers to log, deliver
// a receipt, or trigger analytics without querying the API.
type InvoiceCreatedEvent struct {
	InvoiceNumber string   `json:"invoice_number"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone string   `json:"customer_phone,omitempty"`
	MovieTitle    string   `json:"movie_title"`
	CinemaName    string   `json:"cinema_name"`
	ShowDate      string   `json:"show_date"`
	ShowTime      string   `json:"show_time"`
	SeatLabels    []string `json:"seats"`
	Subtotal      float64  `json:"subtotal"`
	ServiceFee    float64  `json:"service_fee"`
	Total         float64  `json:"total"`
	CreatedAt     string   `json:"created_at"`
}
