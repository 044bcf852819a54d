package common

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// GetEnv gets an environment variable with a fallback default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an environment variable as an integer with a fallback default
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvBool gets an environment variable as a boolean with a fallback default
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// LoadDotEnv loads a .env file when one exists. A missing file is not an
// error; the process environment always wins over file values.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		// Try the parent directory (when running from a cmd/ subdirectory)
		_ = godotenv.Load("../.env")
	}
}
