package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/sasplaza/theater-ticketing/internal/handler"    // import the handlers that implement business logic
	"github.com/sasplaza/theater-ticketing/internal/middleware" // import middleware for caching, rate limiting and checkout tokens
)

// RegisterRoutes registers infrastructure routes on the provided Echo
// instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems probe this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the public catalog endpoints.  These routes
// are unauthenticated and read-only; the cache middleware, when enabled,
// wraps the GET routes so repeat catalog reads are served from Redis.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	// Movie listings for the landing page shelves (?type=now_showing or
	// ?type=coming_soon) and the single-movie detail page.
	g.GET("/movies", h.ListMovies, cache)
	g.GET("/movies/:ref", h.GetMovie, cache)
	// The booking page payload: cinemas, showtimes grouped by format and
	// the selectable date window.  POST because the show context travels
	// in the body, mirroring how booking surfaces request it.
	g.POST("/booking/display-layout", h.DisplayLayout)
}

// RegisterSessions registers the seat selection session endpoints.  No
// caching applies here: every response reflects live session state.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler) {
	g := e.Group("/v1/sessions")
	g.POST("", h.CreateSession)
	g.GET("/:id", h.GetSession)
	g.POST("/:id/toggle", h.ToggleSeat)
	g.GET("/:id/summary", h.GetSummary)
	g.POST("/:id/checkout", h.Checkout)
}

// RegisterCheckout registers the OTP and invoice endpoints.  The send
// route is rate limited because every allowed request sends an email;
// the invoice route requires a Bearer checkout token proving a verified
// email.
func RegisterCheckout(e *echo.Echo, otp *handler.OTPHandler, inv *handler.InvoiceHandler, limiter echo.MiddlewareFunc, jwtSecret string) {
	g := e.Group("/v1")
	g.POST("/otp/send", otp.SendOTP, limiter)
	g.POST("/otp/verify", otp.VerifyOTP)
	g.POST("/invoices", inv.CreateInvoice, middleware.CheckoutAuth(jwtSecret))
}
