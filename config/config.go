package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs. It is loaded once in
// main and passed down explicitly; no package keeps a global copy.
type Config struct {
	App struct {
		Env  string
		Port string
	}
	DB struct {
		Driver   string // "postgres" or "sqlite"
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		Path     string // sqlite file path
	}
	JWT struct {
		Secret        string
		ExpiryMinutes int
	}
	Mail struct {
		AWSAccessKeyID     string
		AWSSecretAccessKey string
		AWSRegion          string
		Sender             string
	}
	Push struct {
		GatewayURL string
	}
	RateLimit struct {
		RequestsPerMinute int
	}
}

// Load reads .env (when present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")

	cfg.DB.Driver = getEnv("DB_DRIVER", "postgres")
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "peladeiro")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.Path = getEnv("DB_PATH", "peladeiro.db")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "supersecret")
	expiry, err := getEnvAsInt("JWT_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}
	cfg.JWT.ExpiryMinutes = expiry

	cfg.Mail.AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.Mail.AWSSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.Mail.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	cfg.Mail.Sender = getEnv("MAIL_SENDER", "no-reply@peladeiro.app")

	cfg.Push.GatewayURL = getEnv("PUSH_GATEWAY_URL", "https://exp.host/--/api/v2/push/send")

	rpm, err := getEnvAsInt("RATE_LIMIT_RPM", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPM: %w", err)
	}
	cfg.RateLimit.RequestsPerMinute = rpm

	if cfg.JWT.Secret == "supersecret" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default JWT secret in production. Set JWT_SECRET.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
