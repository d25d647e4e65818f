package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	Redis RedisConfig
	Store StoreConfig
}

// RedisConfig contains Redis connection parameters. An empty Host means the
// service runs with the in-process cart store instead of Redis.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StoreConfig contains storefront parameters: currency, checkout entry point
// and the key prefix under which cart blobs are persisted.
type StoreConfig struct {
	Currency      string
	CheckoutURL   string
	CartKeyPrefix string
	DefaultCartID string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Storefront
	cfg.Store = StoreConfig{
		Currency:      getEnv("STORE_CURRENCY", "EUR"),
		CheckoutURL:   getEnv("CHECKOUT_URL", "/checkout"),
		CartKeyPrefix: getEnv("CART_KEY_PREFIX", "cart"),
		DefaultCartID: getEnv("DEFAULT_CART_ID", "mock-cart-id"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for customer session tokens")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
