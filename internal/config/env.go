package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"csekit/internal/logger"
)

const envPrefix = "CSEKIT_"

// LoadDotEnv loads a .env file into the process environment if one exists.
// Missing files are not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
}

// applyEnv overrides config fields from CSEKIT_* environment variables.
func applyEnv(c *Config) {
	c.API.BaseURL = getString("API_BASE_URL", c.API.BaseURL)
	c.API.CDNBaseURL = getString("API_CDN_BASE_URL", c.API.CDNBaseURL)
	c.API.UserAgent = getString("API_USER_AGENT", c.API.UserAgent)
	c.API.Timeout = getDuration("API_TIMEOUT", c.API.Timeout)
	c.API.RequestsPerSec = getFloat("API_REQUESTS_PER_SEC", c.API.RequestsPerSec)
	c.API.Burst = getInt("API_BURST", c.API.Burst)

	c.Data.CompanyDir = getString("DATA_COMPANY_DIR", c.Data.CompanyDir)
	c.Data.ReportsDir = getString("DATA_REPORTS_DIR", c.Data.ReportsDir)

	c.Download.MaxRetries = getInt("DOWNLOAD_MAX_RETRIES", c.Download.MaxRetries)
	c.Download.InitialWait = getDuration("DOWNLOAD_INITIAL_WAIT", c.Download.InitialWait)
	c.Download.MaxWait = getDuration("DOWNLOAD_MAX_WAIT", c.Download.MaxWait)
	c.Download.Delay = getDuration("DOWNLOAD_DELAY", c.Download.Delay)

	c.Logging.Level = logger.LogLevel(getString("LOG_LEVEL", string(c.Logging.Level)))
	c.Logging.Format = logger.LogFormat(getString("LOG_FORMAT", string(c.Logging.Format)))
	c.Logging.Output = getString("LOG_OUTPUT", c.Logging.Output)
	c.Logging.Filename = getString("LOG_FILENAME", c.Logging.Filename)
}

func getString(key, defaultValue string) string {
	value := os.Getenv(envPrefix + strings.ToUpper(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value := getString(key, "")
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	value := getString(key, "")
	if value == "" {
		return defaultValue
	}
	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := getString(key, "")
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
