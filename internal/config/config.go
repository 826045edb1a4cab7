package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration-valued settings
)

// Layout source selectors.  The active source is chosen once at startup;
// handlers never branch on it.
const (
	SourceFixture = "fixture" // deterministic in-process seat map generator
	SourceMySQL   = "mysql"   // catalog and occupancy loaded from MySQL
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Defaults are chosen so the service boots in
// fixture mode with no environment at all; MySQL mode enforces its
// connection variables via must().
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	LayoutSource string // "fixture" or "mysql"

	DBUser string // database username (mysql mode only)
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret      string        // secret used to sign checkout tokens
	CheckoutTTLMin int           // checkout token time-to-live in minutes
	OTPTTL         time.Duration // lifetime of a pending OTP code
	BcryptCost     int           // bcrypt cost for hashing OTP codes

	SelectionMax   int           // max selected seats per session, 0 means unlimited
	SessionTTL     time.Duration // idle lifetime of a booking session
	DateWindowDays int           // length of the selectable date strip
}

// Load reads configuration values from environment variables and returns a
// Config.  Database variables are only required when the MySQL layout
// source is selected; a missing required value causes the program to exit
// with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:          getenv("APP_ENV", "dev"),            // environment (dev/test/prod)
		Port:         getenv("APP_PORT", "8000"),          // port to bind the HTTP server
		LayoutSource: getenv("LAYOUT_SOURCE", SourceFixture),

		JWTSecret:      getenv("JWT_SECRET", "dev-secret-change-me"), // signing secret for checkout tokens
		CheckoutTTLMin: intenv("CHECKOUT_TOKEN_TTL_MIN", 15),
		OTPTTL:         durenv("OTP_TTL", 10*time.Minute),
		BcryptCost:     intenv("BCRYPT_COST", 10),

		SelectionMax:   intenv("SELECTION_MAX", 0),
		SessionTTL:     durenv("SESSION_TTL", 30*time.Minute),
		DateWindowDays: intenv("DATE_WINDOW_DAYS", 7),
	}
	if cfg.LayoutSource != SourceFixture && cfg.LayoutSource != SourceMySQL {
		log.Fatalf("invalid LAYOUT_SOURCE: %q (want %q or %q)", cfg.LayoutSource, SourceFixture, SourceMySQL)
	}
	if cfg.LayoutSource == SourceMySQL {
		cfg.DBUser = must("DB_USER")      // database user
		cfg.DBPass = os.Getenv("DB_PASS") // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")      // database host
		cfg.DBPort = must("DB_PORT")      // database port
		cfg.DBName = must("DB_NAME")      // database name
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable or a default when
// the variable is unset or empty.
func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// intenv is like getenv() but converts the retrieved string into an
// integer.  A malformed value logs a fatal error and exits.
func intenv(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

// durenv is like getenv() but parses the value as a time.Duration.
func durenv(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
