package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable read by Load.
const EnvPrefix = "THREAT"

const (
	defaultProviderAURL = "https://drive.google.com/uc?export=download&id=14Hpisb3UceyMi-hiM10xxJzujFIKjT7G"
	defaultProviderBURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSssRY0QUuBGZ6R0DwOPX-brnHJ0VwDji6vDFY6ESptB3VUNVgFzMsv1e6uTnfe-AlkcxqrI8uCN5lS/pub?gid=1788409129&single=true&output=csv"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// the ones without defaults explicitly.
	for _, key := range []string{"server.log_file"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "file:data/threats.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")

	v.SetDefault("providers.provider_a_url", defaultProviderAURL)
	v.SetDefault("providers.provider_b_url", defaultProviderBURL)
	v.SetDefault("providers.request_timeout", "30s")

	v.SetDefault("task.settle_delay", "0s")
	v.SetDefault("task.completion_delay", "0s")
}
