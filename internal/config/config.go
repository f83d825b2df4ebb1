package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Game     GameConfig
	Provider ProviderConfig
	Storage  StorageConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	DefaultCategories []string // Used when the category list is unavailable
	DefaultLiars      int
}

// ProviderConfig holds word service configuration
type ProviderConfig struct {
	URL                string // Empty means the built-in word lists are used
	Timeout            time.Duration
	SessionHistorySize int
	SessionHistoryTTL  time.Duration
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	DBPath string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return FromEnv(), nil
}

// FromEnv builds the configuration from the current environment
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			DefaultCategories: getEnvList("DEFAULT_CATEGORIES", []string{"peliculas", "famosos"}),
			DefaultLiars:      getEnvInt("DEFAULT_LIARS", 1),
		},
		Provider: ProviderConfig{
			URL:                strings.TrimRight(getEnv("WORD_SERVICE_URL", ""), "/"),
			Timeout:            getEnvSeconds("WORD_SERVICE_TIMEOUT_SECONDS", 10),
			SessionHistorySize: getEnvInt("SESSION_HISTORY_SIZE", 256),
			SessionHistoryTTL:  time.Duration(getEnvInt("SESSION_HISTORY_TTL_MINUTES", 720)) * time.Minute,
		},
		Storage: StorageConfig{
			DBPath: getEnv("DB_PATH", "data/mentiroso.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// UsesRemoteProvider returns true if a word service URL is configured
func (c *Config) UsesRemoteProvider() bool {
	return c.Provider.URL != ""
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}

// getEnvList returns a comma-separated environment variable as a list
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	list := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
