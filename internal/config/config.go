package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minAuthKeyBytes = 32

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	ShutdownTimeout         time.Duration
	RequestTimeout          time.Duration
	LiveMaxDuration         time.Duration
	LogLevel                string

	CoreAPIURL      string
	TrackingAPIURL  string
	UpstreamTimeout time.Duration

	SessionAuthKey      []byte
	SessionEncryptKey   []byte
	SessionCookieName   string
	SessionMaxAge       int
	SessionCookieSecure bool

	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int

	LowStockThreshold         int
	TrackingPollInterval      time.Duration
	InventoryFetchConcurrency int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		// Live sockets outlive any write timeout; they set their own deadlines.
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 0),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		LiveMaxDuration:    getDuration("LIVE_MAX_DURATION", 2*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),

		CoreAPIURL:      getEnv("CORE_API_URL", "http://localhost:8082/api"),
		TrackingAPIURL:  getEnv("TRACKING_API_URL", "http://localhost:5160/api"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 15*time.Second),

		SessionAuthKey:      []byte(strings.TrimSpace(os.Getenv("SESSION_AUTH_KEY"))),
		SessionEncryptKey:   []byte(strings.TrimSpace(os.Getenv("SESSION_ENCRYPT_KEY"))),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "logigraph_session"),
		SessionMaxAge:       getInt("SESSION_MAX_AGE", 86400),
		SessionCookieSecure: getBool("SESSION_COOKIE_SECURE", false),

		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RateLimitRPM:     getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM: getInt("AUTH_RATE_LIMIT_RPM", 10),

		LowStockThreshold:         getInt("LOW_STOCK_THRESHOLD", 10),
		TrackingPollInterval:      getDuration("TRACKING_POLL_INTERVAL", 5*time.Second),
		InventoryFetchConcurrency: getInt("INVENTORY_FETCH_CONCURRENCY", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	if err := validateBaseURL("CORE_API_URL", c.CoreAPIURL); err != nil {
		return err
	}

	if err := validateBaseURL("TRACKING_API_URL", c.TrackingAPIURL); err != nil {
		return err
	}

	if len(c.SessionAuthKey) == 0 {
		return fmt.Errorf("SESSION_AUTH_KEY is required")
	}

	if len(c.SessionAuthKey) < minAuthKeyBytes {
		return fmt.Errorf("SESSION_AUTH_KEY must be at least %d bytes", minAuthKeyBytes)
	}

	switch len(c.SessionEncryptKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("SESSION_ENCRYPT_KEY must be 16, 24 or 32 bytes")
	}

	if strings.TrimSpace(c.SessionCookieName) == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME cannot be empty")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}

	if c.TrackingPollInterval <= 0 {
		return fmt.Errorf("TRACKING_POLL_INTERVAL must be positive")
	}

	if c.InventoryFetchConcurrency <= 0 {
		return fmt.Errorf("INVENTORY_FETCH_CONCURRENCY must be positive")
	}

	return nil
}

func validateBaseURL(key string, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
