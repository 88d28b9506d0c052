package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	FirestoreProject string
	StorageBucket    string
	Environment      string

	// Token bucket settings for bid placement, per wallet.
	BidRateLimit      int
	BidRateWindowSecs int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		FirestoreProject:  getEnv("FIRESTORE_PROJECT_ID", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", ""),
		Environment:       getEnv("ENVIRONMENT", "development"),
		BidRateLimit:      getEnvAsInt("BID_RATE_LIMIT", 10),
		BidRateWindowSecs: getEnvAsInt64("BID_RATE_WINDOW_SECONDS", 60),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
