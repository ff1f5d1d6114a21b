// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	YouTube  YouTubeConfig
	Monitor  MonitorConfig
	Display  DisplayConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// DatabaseConfig contains the local store configuration.
type DatabaseConfig struct {
	Path           string
	ClearOnStartup bool
}

// YouTubeConfig contains the outbound API configuration. APIKeys is the
// ordered credential rotation pool.
type YouTubeConfig struct {
	APIKeys        []string
	RequestTimeout time.Duration
}

// MonitorConfig contains refresh-cycle configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type MonitorConfig struct {
	Queries           []string
	RetentionDays     int
	RefreshTopUp      int
	ShortsMaxDuration int
}

// DisplayConfig contains presentation-side configuration.
type DisplayConfig struct {
	Timezone string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Database
	viper.SetDefault("database.path", "monitor.db")
	viper.SetDefault("database.clearonstartup", false)

	// YouTube
	viper.SetDefault("youtube.apikeys", []string{})
	viper.SetDefault("youtube.requesttimeout", 15*time.Second)

	// Monitor
	viper.SetDefault("monitor.queries", []string{})
	viper.SetDefault("monitor.retentiondays", 7)
	viper.SetDefault("monitor.refreshtopup", 100)
	viper.SetDefault("monitor.shortsmaxduration", 60)

	// Display
	viper.SetDefault("display.timezone", "Asia/Kolkata")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
