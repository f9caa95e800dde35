package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey string
	HTTPPort     string
	Environment  string
	LogLevel     string
	ServerURL    string // chat client only
	HistoryDB    string // chat client only; empty disables archive persistence
}

var AppConfig Config

func LoadConfig() {
	loadEnv()

	if AppConfig.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}
}

// LoadClientConfig is LoadConfig for the chat client, which talks to the
// server over HTTP and needs no API key of its own.
func LoadClientConfig() {
	loadEnv()
}

func loadEnv() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		HTTPPort:     getEnv("HTTP_PORT", "5001"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		ServerURL:    getEnv("SERVER_URL", "http://localhost:5001"),
		HistoryDB:    getEnv("HISTORY_DB", ""),
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
