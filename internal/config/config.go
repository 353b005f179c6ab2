package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Database
	DBDriver   string // "sqlite3" or "mysql"
	DBPath     string // sqlite file
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// Allowed cross-origin caller (the browser frontend)
	FrontendURL string

	// Per-IP rate limit for /api/auth endpoints
	AuthRatePerMin int
	AuthRateBurst  int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite3"),
		DBPath:         getEnv("DB_PATH", "notes.db"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         os.Getenv("DB_HOST"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		AuthRatePerMin: getEnvInt("AUTH_RATE_LIMIT", 30),
		AuthRateBurst:  getEnvInt("AUTH_RATE_BURST", 10),
	}

	ttlHours := getEnvInt("SESSION_TTL_HOURS", 72)
	if ttlHours <= 0 {
		return nil, errors.New("SESSION_TTL_HOURS must be positive")
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	switch cfg.DBDriver {
	case "sqlite3", "mysql":
	default:
		return nil, errors.New("DB_DRIVER must be sqlite3 or mysql")
	}
	if cfg.DBDriver == "mysql" && (cfg.DBHost == "" || cfg.DBName == "") {
		return nil, errors.New("DB_HOST and DB_NAME are required for mysql")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
