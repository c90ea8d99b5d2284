package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv                 string
	Port                   string
	CORSAllowedOrigins     []string
	CurrencyCode           string
	GSTRateBps             int
	ShopName               string
	ShopWhatsAppNumber     string
	PriceListMinOrder      float64
	CheckoutClearCart      bool
	RateLimitWindow        time.Duration
	RateLimitMax           int64
	RateLimitRedisURL      string
	SecurityHeadersEnabled bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	gst, err := parseInt(k.String("PRICING_GST_RATE_BPS"), 1800)
	if err != nil {
		return nil, fmt.Errorf("PRICING_GST_RATE_BPS: %w", err)
	}
	minOrder, err := parseFloat(k.String("PRICE_LIST_MIN_ORDER"), 3000)
	if err != nil {
		return nil, fmt.Errorf("PRICE_LIST_MIN_ORDER: %w", err)
	}
	limitMax, err := parseInt(k.String("RATE_LIMIT_MAX"), 20)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_MAX: %w", err)
	}

	cfg := &Config{
		AppEnv:                 valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                   valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins:     splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		CurrencyCode:           strings.ToUpper(valueOrDefault(k.String("CURRENCY_CODE"), "INR")),
		GSTRateBps:             gst,
		ShopName:               strings.TrimSpace(k.String("SHOP_NAME")),
		ShopWhatsAppNumber:     strings.TrimSpace(k.String("SHOP_WHATSAPP_NUMBER")),
		PriceListMinOrder:      minOrder,
		CheckoutClearCart:      parseBoolDefault(k.String("CHECKOUT_CLEAR_CART"), true),
		RateLimitWindow:        parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:           int64(limitMax),
		RateLimitRedisURL:      strings.TrimSpace(k.String("RATE_LIMIT_REDIS_URL")),
		SecurityHeadersEnabled: parseBoolDefault(k.String("SECURITY_HEADERS_ENABLED"), true),
	}

	if cfg.GSTRateBps < 0 || cfg.GSTRateBps > 10000 {
		return nil, errors.New("PRICING_GST_RATE_BPS must be between 0 and 10000")
	}
	if cfg.PriceListMinOrder <= 0 {
		return nil, errors.New("PRICE_LIST_MIN_ORDER must be positive")
	}
	if cfg.RateLimitMax <= 0 {
		return nil, errors.New("RATE_LIMIT_MAX must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	if n := cfg.ShopWhatsAppNumber; n != "" && strings.Trim(n, "+0123456789") != "" {
		return nil, errors.New("SHOP_WHATSAPP_NUMBER must contain digits only")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return strconv.Atoi(trimmed)
}

func parseFloat(value string, fallback float64) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(trimmed, 64)
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
