package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB    DatabaseConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Store StoreConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SMTPConfig contains credentials for the order notification mailer.
// When Host is empty, mail notifications are disabled.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	AdminAddr string
}

// StoreConfig contains storefront parameters and the documented defaults for
// the singleton store configuration row.
type StoreConfig struct {
	PanelURL  string
	PublicURL string

	DefaultContactPhone   string
	DefaultWelcomeMessage string
	DefaultDeliveryPrice  decimal.Decimal
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

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// SMTP (optional)
	cfg.SMTP = SMTPConfig{
		Host:      getEnv("SMTP_HOST", ""),
		Port:      getEnvInt("SMTP_PORT", 587),
		Username:  getEnv("SMTP_USERNAME", ""),
		Password:  getEnv("SMTP_PASSWORD", ""),
		From:      getEnv("SMTP_FROM", "no-reply@playfiesta.cl"),
		AdminAddr: getEnv("SMTP_ADMIN_ADDR", ""),
	}

	// Storefront
	deliveryPrice, err := decimal.NewFromString(getEnv("STORE_DEFAULT_DELIVERY_PRICE", "3500"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_DEFAULT_DELIVERY_PRICE: %w", err)
	}
	cfg.Store = StoreConfig{
		PanelURL:              getEnv("STORE_PANEL_URL", "http://localhost:3000/admin"),
		PublicURL:             getEnv("STORE_PUBLIC_URL", "https://playfiesta.cl"),
		DefaultContactPhone:   getEnv("STORE_DEFAULT_CONTACT_PHONE", "+56 9 0000 0000"),
		DefaultWelcomeMessage: getEnv("STORE_DEFAULT_WELCOME_MESSAGE", "Bienvenidos a la tienda"),
		DefaultDeliveryPrice:  deliveryPrice,
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
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
