package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	JWTSecret   string
	FrontendURL string

	DefaultBalance decimal.Decimal
	Currency       string

	RateLimit  int
	RateWindow time.Duration

	SignalFeedInterval time.Duration

	MetricsUser     string
	MetricsPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromEnv()
}

// FromEnv читает окружение процесса, не трогая .env.
func FromEnv() *Config {
	return &Config{
		Port:               getEnv("PORT", "5000"),
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", "fallback-secret"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		DefaultBalance:     getDecimal("DEFAULT_BALANCE", decimal.NewFromInt(100000)),
		Currency:           getEnv("CURRENCY", "INR"),
		RateLimit:          getInt("RATE_LIMIT", 100),
		RateWindow:         getDuration("RATE_WINDOW", 15*time.Minute),
		SignalFeedInterval: getDuration("SIGNAL_FEED_INTERVAL", 5*time.Second),
		MetricsUser:        os.Getenv("METRICS_USER"),
		MetricsPassword:    os.Getenv("METRICS_PASSWORD"),
	}
}

// IsProduction - в проде детали внутренних ошибок клиенту не показываем.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
