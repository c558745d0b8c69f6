package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Database
	DatabaseURL string
	MongoDBURL  string
	MongoDBName string
	RedisURL    string

	// OAuth - Google
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Poll
	PollInterval       time.Duration
	PollMaxMessages    int
	PollUserConcurrent int
	SearchQuery        string
	SchedulerEnabled   bool

	// Extraction
	PlaceholderWindow time.Duration

	// Archive
	ArchiveTTLDays int

	// Internal endpoints
	CronSecret string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),
		MongoDBURL:  getEnv("MONGODB_URL", ""),
		MongoDBName: getEnv("MONGODB_DATABASE", "tripscan"),
		RedisURL:    getEnv("REDIS_URL", ""),

		// OAuth - Google
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),

		// Poll
		PollInterval:       time.Duration(getEnvInt("POLL_INTERVAL_MIN", 5)) * time.Minute,
		PollMaxMessages:    getEnvInt("POLL_MAX_MESSAGES", 20),
		PollUserConcurrent: getEnvInt("POLL_USER_CONCURRENCY", 4),
		SearchQuery:        getEnv("POLL_SEARCH_QUERY", ""),
		SchedulerEnabled:   getEnvBool("SCHEDULER_ENABLED", true),

		// Extraction
		PlaceholderWindow: time.Duration(getEnvInt("EXTRACT_PLACEHOLDER_WINDOW_MIN", 120)) * time.Minute,

		// Archive
		ArchiveTTLDays: getEnvInt("ARCHIVE_TTL_DAYS", 90),

		// Internal endpoints
		CronSecret: getEnv("CRON_SECRET", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
