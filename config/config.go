package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultSignupAPIBaseURL points at a locally running signup backend
	DefaultSignupAPIBaseURL = "http://localhost:8000"

	// DefaultSignupTimeout bounds a single outbound signup request
	DefaultSignupTimeout = 10 * time.Second

	// DefaultFormSessionTTL is how long an untouched waitlist form is kept
	DefaultFormSessionTTL = 30 * time.Minute
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Signup backend
	SignupAPIBaseURL string
	SignupTimeout    time.Duration
	FormSessionTTL   time.Duration
	// Email (Resend)
	ResendAPIKey        string
	EmailFrom           string
	EmailFromName       string
	EmailTestMode       bool // When true, emails are logged to console instead of sent
	WaitlistNotifyEmail string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Rate limiting for POST /waitlist
	SubmitRateLimit  int
	SubmitRateWindow time.Duration
	// Observability
	MetricsEnabled   bool
	OTelEnabled      bool
	OTelServiceName  string
	OTelOTLPEndpoint string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		Environment:         environment,
		AppURL:              strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/"),
		SignupAPIBaseURL:    getEnv("SIGNUP_API_BASE_URL", DefaultSignupAPIBaseURL),
		SignupTimeout:       getEnvDuration("SIGNUP_TIMEOUT", DefaultSignupTimeout),
		FormSessionTTL:      getEnvDuration("FORM_SESSION_TTL", DefaultFormSessionTTL),
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		EmailFrom:           getEnv("EMAIL_FROM", "noreply@turn2law.com"),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Turn2Law"),
		EmailTestMode:       getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		WaitlistNotifyEmail: getEnv("WAITLIST_NOTIFY_EMAIL", ""),
		TurnstileSiteKey:    getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey:  getEnv("TURNSTILE_SECRET_KEY", ""),
		SubmitRateLimit:     getEnvInt("SUBMIT_RATE_LIMIT", 5),
		SubmitRateWindow:    getEnvDuration("SUBMIT_RATE_WINDOW", time.Minute),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
		OTelEnabled:         getEnvBool("OTEL_ENABLED", false),
		OTelServiceName:     getEnv("OTEL_SERVICE_NAME", "turn2law-web"),
		OTelOTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	if environment == "production" && strings.HasPrefix(cfg.SignupAPIBaseURL, "http://localhost") {
		log.Printf("[WARNING] SIGNUP_API_BASE_URL is %s in production. Signups will not reach the real backend.", cfg.SignupAPIBaseURL)
	}

	return cfg
}

// TurnstileEnabled reports whether both Turnstile keys are configured
func (c *Config) TurnstileEnabled() bool {
	return c.TurnstileSiteKey != "" && c.TurnstileSecretKey != ""
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// getEnvDuration parses Go duration strings ("10s", "1m30s"). Bare integers
// are read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("[WARNING] Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
