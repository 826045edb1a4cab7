package main // Entry point package

import (
	"log"  // Logging library
	"time" // Janitor interval

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/sasplaza/theater-ticketing/internal/config"
	"github.com/sasplaza/theater-ticketing/internal/database"
	"github.com/sasplaza/theater-ticketing/internal/fixture"
	"github.com/sasplaza/theater-ticketing/internal/handler"
	"github.com/sasplaza/theater-ticketing/internal/middleware"
	"github.com/sasplaza/theater-ticketing/internal/model"
	"github.com/sasplaza/theater-ticketing/internal/queue"
	"github.com/sasplaza/theater-ticketing/internal/repository"
	"github.com/sasplaza/theater-ticketing/internal/router"
	queue_publisher "github.com/sasplaza/theater-ticketing/internal/service"
	"github.com/sasplaza/theater-ticketing/internal/session"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// Catalog source: deterministic fixture by default, MySQL when
	// configured.  Handlers only ever see the model.Source interface.
	var source model.Source
	switch cfg.LayoutSource {
	case config.SourceMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql: %v", err)
		}
		source = repository.NewCatalogRepo(db, nil, cfg.DateWindowDays)
	default:
		source = fixture.New(nil)
	}

	// Redis backs the catalog response cache, OTP storage and the rate
	// limiter; all three degrade gracefully when it is absent.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled, OTP store in memory")
	}
	var otpStore repository.OTPStore
	if rdb != nil {
		otpStore = repository.NewRedisOTPStore(rdb)
	} else {
		otpStore = repository.NewMemoryOTPStore()
	}

	// Booking sessions live in process memory with a sliding TTL.
	store := session.NewStore(cfg.SessionTTL, cfg.SelectionMax)
	store.StartJanitor(time.Minute)
	defer store.Close()

	// Background consumer appends issued invoices to logs/invoice.log.
	go func() {
		if err := queue.StartInvoiceConsumer(); err != nil {
			log.Printf("invoice-consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	cacheMW := middleware.CatalogCache(config.LoadCacheConfig(), rdb)
	limiterMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	catalogH := &handler.CatalogHandler{Source: source}
	sessionH := &handler.SessionHandler{Source: source, Store: store}
	otpH := &handler.OTPHandler{
		Store:          otpStore,
		Publish:        queue_publisher.PublishOTPEmail,
		Secret:         cfg.JWTSecret,
		TTL:            cfg.OTPTTL,
		BcryptCost:     cfg.BcryptCost,
		CheckoutTTLMin: cfg.CheckoutTTLMin,
	}
	invoiceH := &handler.InvoiceHandler{Publish: queue_publisher.PublishInvoiceCreated}

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, catalogH, cacheMW)
	router.RegisterSessions(e, sessionH)
	router.RegisterCheckout(e, otpH, invoiceH, limiterMW, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s source=%s)", addr, cfg.Env, cfg.LayoutSource)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
