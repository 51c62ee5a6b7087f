package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Crawler settings.
	CrawlEnabled    bool
	CrawlWorkers    int
	CrawlJobTimeout time.Duration
	CrawlCronSpec   string

	// Browser session settings.
	BrowserHeadless   bool
	BrowserNavTimeout time.Duration
	BrowserUserAgent  string
	BrowserWindowSize string

	// Dedup link cache TTL.
	LinkCacheTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "smalltown"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),

		CrawlEnabled:    getEnvAsBool("CRAWL_ENABLED", true),
		CrawlWorkers:    getEnvAsInt("CRAWL_WORKERS", 5),
		CrawlJobTimeout: getEnvAsDuration("CRAWL_JOB_TIMEOUT_SECONDS", 300) * time.Second,
		CrawlCronSpec:   getEnv("CRAWL_CRON_SPEC", "0 2 * * *"),

		BrowserHeadless:   getEnvAsBool("BROWSER_HEADLESS", true),
		BrowserNavTimeout: getEnvAsDuration("BROWSER_NAV_TIMEOUT_SECONDS", 30) * time.Second,
		BrowserUserAgent: getEnv("BROWSER_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		BrowserWindowSize: getEnv("BROWSER_WINDOW_SIZE", "1920,1080"),

		LinkCacheTTL: getEnvAsDuration("LINK_CACHE_TTL_HOURS", 72) * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
