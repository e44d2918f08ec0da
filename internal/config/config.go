package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Payment gateway
	GatewayBaseURL   string
	GatewayServerKey string
	GatewayTimeout   time.Duration

	// Reconciliation
	PaymentExpiry time.Duration
	SweepInterval time.Duration
	SweepBatch    int
}

func Load() *Config {
	// .env is optional; real environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "eventick"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", "5m"),

		GatewayBaseURL:   getEnv("GATEWAY_BASE_URL", "https://api.sandbox.midtrans.com/v2"),
		GatewayServerKey: getEnv("GATEWAY_SERVER_KEY", ""),
		GatewayTimeout:   getEnvAsDuration("GATEWAY_TIMEOUT", "10s"),

		PaymentExpiry: getEnvAsDuration("PAYMENT_EXPIRY", "15m"),
		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", "1m"),
		SweepBatch:    getEnvAsInt("SWEEP_BATCH", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
