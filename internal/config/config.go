package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	OpenAIAPIKey     string
	FeedURL          string
	IdentityURL      string
	TelegramToken    string
	TelegramChatID   int64
	ServerPort       string
	FetchTimeout     time.Duration
	MaxContentWords  int
	SessionRetention time.Duration
	LogLevel         string
}

func Load() *Config {
	return &Config{
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		FeedURL:          getEnv("FEED_URL", "https://scoops-finder.s3.us-east-2.amazonaws.com/PAIN.json"),
		IdentityURL:      getEnv("IDENTITY_URL", ""),
		TelegramToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
		MaxContentWords:  getEnvAsInt("MAX_CONTENT_WORDS", 5000),
		SessionRetention: getEnvAsDuration("SESSION_RETENTION", 24*time.Hour),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
