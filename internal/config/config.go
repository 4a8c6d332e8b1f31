// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	Env        string

	// DB
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	// Auth
	JWTSecret        string
	JWTExpireMinutes int

	// Admin seed account
	AdminUserName string
	AdminEmail    string
	AdminPassword string

	// CORS
	AllowedOrigins string
}

func Load() *Config {
	env := getEnv("ENV", "development")
	if env != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	expireMinutes := 120
	if v := os.Getenv("JWT_EXPIRE_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("❌ Invalid JWT_EXPIRE_MINUTES: %v", err)
		}
		expireMinutes = n
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if env == "production" {
			log.Fatal("❌ JWT_SECRET is required in production")
		}
		secret = "dev-only-insecure-secret"
	}

	return &Config{
		ServerPort: getEnv("PORT", "5188"),
		Env:        env,

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", "postgres"),
		DBName:    getEnv("DB_NAME", "skillswap_db"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        secret,
		JWTExpireMinutes: expireMinutes,

		AdminUserName: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
