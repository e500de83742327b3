package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration for the application.
type Config struct {
	// Server
	ServerPort string
	ServerHost string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// External data APIs
	DrugAPIKey   string
	RecipeAPIKey string

	// Daily request ceilings per public API
	DrugAPIDailyLimit       int
	RecipeAPIDailyLimit     int
	HealthFoodAPIDailyLimit int

	// QuotaTimezone defines the day boundary for quota counters.
	QuotaTimezone string

	// GeneralInfoTTL bounds cached general food info. Zero means no expiry.
	GeneralInfoTTL time.Duration
}

// LoadConfig reads configuration from environment variables, with Docker
// secret file fallbacks for credentials.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnvOrSecret("DB_PASSWORD", "DB_PASSWORD_FILE", ""),
		DBName:     getEnv("DB_NAME", "mealsafe"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrSecret("REDIS_PASSWORD", "REDIS_PASSWORD_FILE", ""),

		DrugAPIKey:   getEnvOrSecret("DRUG_API_KEY", "DRUG_API_KEY_FILE", ""),
		RecipeAPIKey: getEnvOrSecret("RECIPE_API_KEY", "RECIPE_API_KEY_FILE", ""),

		DrugAPIDailyLimit:       getEnvInt("DRUG_API_DAILY_LIMIT", 900),
		RecipeAPIDailyLimit:     getEnvInt("RECIPE_API_DAILY_LIMIT", 900),
		HealthFoodAPIDailyLimit: getEnvInt("HEALTH_FOOD_API_DAILY_LIMIT", 900),

		QuotaTimezone: getEnv("QUOTA_TIMEZONE", "Asia/Seoul"),

		GeneralInfoTTL: time.Duration(getEnvInt("GENERAL_INFO_TTL_DAYS", 0)) * 24 * time.Hour,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseDSN renders the postgres connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// QuotaLocation resolves the quota timezone, falling back to UTC when the
// configured name cannot be loaded.
func (c *Config) QuotaLocation() *time.Location {
	loc, err := time.LoadLocation(c.QuotaTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) validate() error {
	if c.DrugAPIDailyLimit <= 0 || c.RecipeAPIDailyLimit <= 0 || c.HealthFoodAPIDailyLimit <= 0 {
		return fmt.Errorf("daily API limits must be positive")
	}
	if _, err := time.LoadLocation(c.QuotaTimezone); err != nil {
		return fmt.Errorf("invalid quota timezone %q: %w", c.QuotaTimezone, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvOrSecret checks the plain env var first, then a *_FILE variable
// pointing at a Docker secret.
func getEnvOrSecret(key, fileKey, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if path := os.Getenv(fileKey); path != "" {
		if secret, err := readSecret(path); err == nil {
			return secret
		}
	}
	return fallback
}

func readSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
