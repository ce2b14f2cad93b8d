package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Application settings
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Client  ClientConfig  `yaml:"client"`
	UI      UIConfig      `yaml:"ui"`
}

// Server settings
type ServerConfig struct {
	Port           string        `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CORSOrigins    []string      `yaml:"cors_origins"`
}

// Storage backends for the API server
type StorageConfig struct {
	// memory or postgres
	Driver      string `yaml:"driver"`
	DatabaseURL string `yaml:"database_url"`
	// settings go to redis when set, memory otherwise
	RedisURL string `yaml:"redis_url"`
	SeedFile string `yaml:"seed_file"`
}

// Dashboard client settings
type ClientConfig struct {
	APIURL             string        `yaml:"api_url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	RateLimitPerSecond int           `yaml:"rate_limit_per_second"`
}

type UIConfig struct {
	// persisted light/dark preference
	ThemeFile string `yaml:"theme_file"`
	LogFile   string `yaml:"log_file"`
}

// Logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if set),
// then applies environment overrides on top.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.mergeFile(path); err != nil {
			return nil, err
		}
	}

	config.applyEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			RequestTimeout: 30 * time.Second,
			CORSOrigins:    []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Client: ClientConfig{
			APIURL:             "http://localhost:8080/api",
			RequestTimeout:     15 * time.Second,
			RateLimitPerSecond: 20,
		},
	}
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.RequestTimeout = getDurationEnv("REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.CORSOrigins = getListEnv("CORS_ORIGINS", c.Server.CORSOrigins)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	c.Storage.Driver = getEnv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.DatabaseURL = getEnv("DATABASE_URL", c.Storage.DatabaseURL)
	c.Storage.RedisURL = getEnv("REDIS_URL", c.Storage.RedisURL)
	c.Storage.SeedFile = getEnv("SEED_FILE", c.Storage.SeedFile)

	c.Client.APIURL = getEnv("DASHBOARD_API_URL", c.Client.APIURL)
	c.Client.RequestTimeout = getDurationEnv("DASHBOARD_REQUEST_TIMEOUT", c.Client.RequestTimeout)
	c.Client.RateLimitPerSecond = getIntEnv("DASHBOARD_RATE_LIMIT", c.Client.RateLimitPerSecond)

	c.UI.ThemeFile = getEnv("DASHBOARD_THEME_FILE", c.UI.ThemeFile)
	c.UI.LogFile = getEnv("DASHBOARD_LOG_FILE", c.UI.LogFile)
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage driver postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Client.RateLimitPerSecond <= 0 {
		return fmt.Errorf("client rate limit must be positive, got %d", c.Client.RateLimitPerSecond)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// accepts a comma separated list
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
