package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	DEV_MODE   bool

	CORS_ORIGIN  string
	LOG_LEVEL    string
	LOG_ENCODING string

	ADMIN_EMAIL    string
	ADMIN_PASSWORD string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	STRIPE_CURRENCY       string
	APP_URL               string

	CLOUDINARY_URL    string
	CLOUDINARY_FOLDER string

	REDIS_URL   string
	SESSION_TTL time.Duration

	GALLERY_PAGE_SIZE int
	CATALOG_REFRESH   string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DEV_MODE = getBool("DEV_MODE", false)
	if DEV_MODE {
		DB_URL = getEnv("DB_URL", "")
	} else {
		DB_URL = mustEnv("DB_URL")
	}
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_ENCODING = getEnv("LOG_ENCODING", "json")

	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "")
	ADMIN_PASSWORD = getEnv("ADMIN_PASSWORD", "")

	// Google sign-in stays off unless all three are set.
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")
	STRIPE_CURRENCY = getEnv("STRIPE_CURRENCY", "eur")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")

	CLOUDINARY_URL = getEnv("CLOUDINARY_URL", "")
	CLOUDINARY_FOLDER = getEnv("CLOUDINARY_FOLDER", "portfolio")

	REDIS_URL = getEnv("REDIS_URL", "")
	SESSION_TTL = getDuration("SESSION_TTL", 24*time.Hour)

	GALLERY_PAGE_SIZE = getInt("GALLERY_PAGE_SIZE", 6)
	CATALOG_REFRESH = getEnv("CATALOG_REFRESH", "@every 5m")
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(getEnv(key, "")))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(getEnv(key, "")))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
