package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`
	Task      TaskConfig      `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile enables an additional rotating JSON log file when set.
	LogFile        string   `mapstructure:"log_file"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver is the database/sql driver name: "sqlite" or "pgx".
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite pgx"`
	URL    string `mapstructure:"url" validate:"required"`
}

// ProvidersConfig contains the upstream threat feed locations.
type ProvidersConfig struct {
	ProviderAURL   string        `mapstructure:"provider_a_url" validate:"required,url"`
	ProviderBURL   string        `mapstructure:"provider_b_url" validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// TaskConfig controls the simulated latency around task execution.
// Zero disables the delay; ordering of status writes is unaffected.
type TaskConfig struct {
	SettleDelay     time.Duration `mapstructure:"settle_delay" validate:"gte=0"`
	CompletionDelay time.Duration `mapstructure:"completion_delay" validate:"gte=0"`
}
