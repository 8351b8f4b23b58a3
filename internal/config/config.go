package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Config holds environment-driven configuration for the API server.
type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	AMQPURL        string
	EventsExchange string
	LogLevel       string
	LogFormat      string
	CORSOrigins    string
	AllowMenuReset bool
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:           getEnv("COOKNEST_ADDR", ":5000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getEnv("JWT_SECRET", "cooknest-dev-secret"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		EventsExchange: getEnv("ORDER_EVENTS_EXCHANGE", "cooknest.orders"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		AllowMenuReset: os.Getenv("ALLOW_RESET_MENU") == "1",
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client holds the terminal client settings.
type Client struct {
	APIURL        string
	Timeout       time.Duration
	SlideInterval time.Duration
	RedirectDelay time.Duration
	LogLevel      string
}

// ParseClient reads the client flags from args (without the program name).
func ParseClient(args []string, stderr io.Writer) (Client, error) {
	fs := flag.NewFlagSet("cooknest", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var c Client
	fs.StringVar(&c.APIURL, "api", getEnv("COOKNEST_API", "http://localhost:5000"), "CookNest API base URL")
	fs.DurationVar(&c.Timeout, "timeout", 10*time.Second, "per-request timeout")
	fs.DurationVar(&c.SlideInterval, "slide-interval", 3*time.Second, "carousel auto-advance interval")
	fs.DurationVar(&c.RedirectDelay, "redirect-delay", 1500*time.Millisecond, "pause after registering before returning to login")
	fs.StringVar(&c.LogLevel, "log-level", "warn", "log level written to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "CookNest terminal client\n\nUsage:\n  cooknest [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Client{}, err
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return Client{}, fmt.Errorf("invalid -api %q: must start with http:// or https://", c.APIURL)
	}
	if c.Timeout <= 0 || c.SlideInterval <= 0 || c.RedirectDelay < 0 {
		return Client{}, errors.New("durations must be positive")
	}
	return c, nil
}
