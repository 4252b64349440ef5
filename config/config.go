package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort          string
	ShopDomain          string
	AdminAPIToken       string
	AdminAPIVersion     string
	AdminTimeoutSeconds string
	AdminMinDelayMillis string
	DatabaseURL         string
	ListCacheTTLMinutes string
	LogLevel            string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		ShopDomain:          getEnv("SHOP_DOMAIN", ""),
		AdminAPIToken:       getEnv("ADMIN_API_TOKEN", ""),
		AdminAPIVersion:     getEnv("ADMIN_API_VERSION", "2024-10"),
		AdminTimeoutSeconds: getEnv("ADMIN_API_TIMEOUT_SECONDS", "10"),
		AdminMinDelayMillis: getEnv("ADMIN_API_MIN_DELAY_MS", "250"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		ListCacheTTLMinutes: getEnv("LIST_CACHE_TTL_MINUTES", "5"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// GetAdminTimeout returns the Admin API request timeout. Requests past this
// deadline are treated as fatal failures.
func (c *Config) GetAdminTimeout() time.Duration {
	seconds, err := strconv.Atoi(c.AdminTimeoutSeconds)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid ADMIN_API_TIMEOUT_SECONDS value: %s, using default 10 seconds", c.AdminTimeoutSeconds)
		return 10 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// GetAdminMinDelay returns the minimum delay between Admin API requests.
func (c *Config) GetAdminMinDelay() time.Duration {
	millis, err := strconv.Atoi(c.AdminMinDelayMillis)
	if err != nil || millis < 0 {
		logrus.Warnf("Invalid ADMIN_API_MIN_DELAY_MS value: %s, using default 250ms", c.AdminMinDelayMillis)
		return 250 * time.Millisecond
	}
	return time.Duration(millis) * time.Millisecond
}

// GetListCacheTTL returns how long the raffle list cache stays fresh.
func (c *Config) GetListCacheTTL() time.Duration {
	minutes, err := strconv.Atoi(c.ListCacheTTLMinutes)
	if err != nil || minutes <= 0 {
		logrus.Warnf("Invalid LIST_CACHE_TTL_MINUTES value: %s, using default 5 minutes", c.ListCacheTTLMinutes)
		return 5 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
