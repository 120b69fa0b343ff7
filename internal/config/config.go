package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Server   ServerConfig
	CORS     CORSConfig
	SMTP     SMTPConfig
	Pharmacy PharmacyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type AuthConfig struct {
	// The pharmacy shares a single password; either the plain value or
	// a bcrypt hash of it can be configured. The hash wins when both
	// are set.
	AppPassword     string
	AppPasswordHash string
	JWTSecret       string
	TokenExpiry     time.Duration
	CookieName      string
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SMTPConfig is the env fallback used when no smtp_settings row exists.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromName  string
	FromEmail string
}

// PharmacyConfig holds the letterhead data printed on loan documents.
type PharmacyConfig struct {
	HospitalName string
	ServiceName  string
	Address      string
	StorageDir   string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pharmacy_loans"),
		},
		Auth: AuthConfig{
			AppPassword:     getEnv("APP_PASSWORD", ""),
			AppPasswordHash: getEnv("APP_PASSWORD_HASH", ""),
			JWTSecret:       getEnv("JWT_SECRET", "your-secret-key"),
			TokenExpiry:     parseDuration(getEnv("TOKEN_EXPIRY", "720h")),
			CookieName:      getEnv("AUTH_COOKIE_NAME", "prestamos-auth"),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      parseInt(getEnv("SMTP_PORT", "587"), 587),
			User:      getEnv("SMTP_USER", ""),
			Password:  getEnv("SMTP_PASS", ""),
			FromName:  getEnv("SMTP_FROM_NAME", "Farmacia - H.U. Fuenlabrada"),
			FromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@example.com"),
		},
		Pharmacy: PharmacyConfig{
			HospitalName: getEnv("PHARMACY_HOSPITAL_NAME", "HOSPITAL UNIVERSITARIO DE FUENLABRADA"),
			ServiceName:  getEnv("PHARMACY_SERVICE_NAME", "Servicio de Farmacia"),
			Address:      getEnv("PHARMACY_ADDRESS", "Hospital Universitario de Fuenlabrada - Camino del Molino, 2 - 28942 Fuenlabrada (Madrid)"),
			StorageDir:   getEnv("PDF_STORAGE_DIR", "storage/pdf"),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return 720 * time.Hour
	}
	return duration
}

func parseInt(s string, defaultValue int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
