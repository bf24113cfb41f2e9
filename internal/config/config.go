package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Host       string
	Port       string
	JWTSecret  string
	AdminEmail string
	RedisURL   string
	BCryptCost int
}

func LoadConfig() *Config {
	// Check if we're in test mode
	testMode := strings.ToLower(os.Getenv("TEST_MODE")) == "true"

	secret := getEnv("JWT_SECRET", "")
	if secret == "" && !testMode {
		log.Fatal("JWT_SECRET environment variable is required when not in test mode")
	}

	return &Config{
		Host:       getEnv("HOST", "0.0.0.0"),
		Port:       getEnv("PORT", "3000"),
		JWTSecret:  secret,
		AdminEmail: getEnv("ADMIN_EMAIL", ""),
		RedisURL:   getEnv("REDIS_URL", ""),
		BCryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}
