// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	JWTSecretKey string

	// Account store (sqlite via gorm).
	SQLitePath string

	// Chat history store. ChatStore is "mongo" or "memory"; the memory
	// store exists for local development without a running MongoDB.
	ChatStore     string
	MongoURI      string
	MongoDatabase string

	// External recipe/chat generation backend.
	BackendBaseURL string
	BackendTimeout time.Duration

	// Upload limit for food photos, in bytes.
	MaxUploadBytes int64
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    env,
		JWTSecretKey:   getEnv("JWT_SECRET_KEY", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "dishcovery.db"),
		ChatStore:      getEnv("CHAT_STORE", "mongo"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "dishcovery"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 120*time.Second),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 16)) << 20,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.ChatStore == "mongo" && cfg.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
		if cfg.BackendBaseURL == "" {
			missing = append(missing, "BACKEND_BASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration gets an env var as a duration, with a fallback.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
		return defaultValue
	}
	return d
}
