package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string
	GinMode           string
	UpstreamBaseURL   string
	UpstreamTimeout   time.Duration
	SessionSecret     string
	SessionCookieName string
	LocalStorePath    string
}

func Load() *Config {
	// .env is optional; real environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8090"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", "http://localhost:8000"),
		UpstreamTimeout:   time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		SessionSecret:     getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "equiptrack_session"),
		LocalStorePath:    getEnv("LOCAL_STORE_PATH", "equiptrack.db"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
