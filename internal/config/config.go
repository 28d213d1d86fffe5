package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	Log        LogConfig
	Cache      CacheConfig
	Share      ShareConfig
	Retention  RetentionConfig
	Simulation SimulationConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
}

// CacheConfig selects the result cache backend.
// An empty RedisAddr keeps results in process memory.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// ShareConfig holds the fernet key used to sign share tokens.
// An empty Key makes the service generate one at startup, which invalidates
// previously issued tokens on restart.
type ShareConfig struct {
	Key      string
	TokenTTL time.Duration
}

// RetentionConfig controls the scheduled purge of old simulations.
// Days == 0 disables the purge.
type RetentionConfig struct {
	Days     int
	Schedule string
}

// SimulationConfig holds limits applied when running projections.
type SimulationConfig struct {
	BatchConcurrency int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/simulations.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
		},
		Share: ShareConfig{
			Key: getEnv("SHARE_KEY", ""),
		},
		Retention: RetentionConfig{
			Schedule: getEnv("RETENTION_SCHEDULE", "@daily"),
		},
	}

	var err error
	if config.Cache.TTL, err = getEnvDuration("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if config.Share.TokenTTL, err = getEnvDuration("SHARE_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if config.Retention.Days, err = getEnvInt("RETENTION_DAYS", 0); err != nil {
		return nil, err
	}
	if config.Simulation.BatchConcurrency, err = getEnvInt("BATCH_CONCURRENCY", 4); err != nil {
		return nil, err
	}

	if config.Share.TokenTTL <= 0 {
		return nil, fmt.Errorf("SHARE_TOKEN_TTL must be positive, got %s", config.Share.TokenTTL)
	}
	if config.Retention.Days < 0 {
		return nil, fmt.Errorf("RETENTION_DAYS must not be negative, got %d", config.Retention.Days)
	}
	if config.Simulation.BatchConcurrency < 1 {
		return nil, fmt.Errorf("BATCH_CONCURRENCY must be at least 1, got %d", config.Simulation.BatchConcurrency)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
