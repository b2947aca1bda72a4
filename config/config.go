package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBDriver string // sqlite, postgres or mysql
	DBName   string

	AIServiceURL     string // Base URL of the AI scoring service
	AITimeoutSeconds int    // Timeout for AI scoring calls
	RecommendTopK    int    // Result-count hint sent to the AI service

	PollIntervalMs int // Dashboard reconciliation poll interval
	CookieTTLDays  int // Expiry window for cart/wishlist/userData cookies
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:     getEnv("PORT", "3000"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBName:   getEnv("DB_NAME", "antoree.db"),

		AIServiceURL:     getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		AITimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 10),
		RecommendTopK:    getEnvInt("RECOMMEND_TOP_K", 3),

		PollIntervalMs: getEnvInt("POLL_INTERVAL_MS", 500),
		CookieTTLDays:  getEnvInt("COOKIE_TTL_DAYS", 7),
	}

	// Validate critical configuration
	if AppConfig.AIServiceURL == "http://localhost:8000" {
		log.Println("Warning: Using default AI_SERVICE_URL. Update it in your environment.")
	}
	if AppConfig.DBName == "antoree.db" {
		log.Println("Warning: Using default DBName. Update it in your environment.")
	}
}

// Defaults returns a config populated with built-in defaults, without touching
// the environment. Used by tests and by components constructed before LoadConfig.
func Defaults() *Config {
	return &Config{
		Port:             "3000",
		DBDriver:         "sqlite",
		DBName:           "antoree.db",
		AIServiceURL:     "http://localhost:8000",
		AITimeoutSeconds: 10,
		RecommendTopK:    3,
		PollIntervalMs:   500,
		CookieTTLDays:    7,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
