package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds everything the service reads from the environment.
type Config struct {
	MongoURI      string
	Database      string
	Port          string
	NATSURL       string // empty disables change events
	JWTSecret     string
	PublicBaseURL string
	SessionTTL    time.Duration

	// Seed account created at startup if the users collection is empty.
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	cfg := &Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		Database:      getEnvOrDefault("MONGO_DATABASE", "memorialdb"),
		Port:          getEnvOrDefault("PORT", "8080"),
		NATSURL:       os.Getenv("NATS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		SessionTTL:    time.Duration(getEnvIntOrDefault("SESSION_TTL_HOURS", 24)) * time.Hour,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	if cfg.NATSURL == "" {
		log.Println("[WARN] NATS_URL not set, record change events disabled")
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
