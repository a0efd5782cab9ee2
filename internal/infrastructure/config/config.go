package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Home    HomeConfig    `mapstructure:"home"`
	Log     LogConfig     `mapstructure:"log"`
}

// AppConfig holds calendar settings
type AppConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// StorageConfig holds usage ledger and snapshot configuration
type StorageConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	SnapshotPath string `mapstructure:"snapshot_path"`
	LogSQL       bool   `mapstructure:"log_sql"`
}

// HomeConfig holds home screen configuration
type HomeConfig struct {
	RecentLimit int `mapstructure:"recent_limit"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.timezone", "Local")

	// Storage defaults
	viper.SetDefault("storage.driver", "sqlite3")
	viper.SetDefault("storage.dsn", "file:studytrack.db?_fk=1")
	viper.SetDefault("storage.snapshot_path", "studytrack.jsonl")
	viper.SetDefault("storage.log_sql", false)

	viper.SetDefault("home.recent_limit", 3)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// DatabaseDriver returns the sql driver name registered for the configured backend.
func (c *Config) DatabaseDriver() (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql", "pgx":
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
}

// Location resolves the configured time zone used to decide calendar days.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.App.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// RecentLimit returns the bound on the home feed, never below 1.
func (c *Config) RecentLimit() int {
	if c.Home.RecentLimit <= 0 {
		return 1
	}
	return c.Home.RecentLimit
}
