package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variables, e.g.
// USERREG_SERVER_PORT, USERREG_STORE_MONGO_URI.
const envPrefix = "USERREG"

// Load configuration from environment variables and optionally a
// config file. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("store.backend", "mongo")
	v.SetDefault("store.mongo.database", "college")
	// Empty defaults register the keys so AutomaticEnv can fill them.
	v.SetDefault("store.mongo.uri", "")
	v.SetDefault("store.postgres.url", "")

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables still apply.
	}

	// Environment variables with USERREG_ prefix override file values
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks struct tags plus the backend-specific settings that
// tags alone cannot express.
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Store.Backend {
	case "mongo":
		if cfg.Store.Mongo.URI == "" {
			return fmt.Errorf("invalid configuration: store.mongo.uri is required for the mongo backend")
		}
		if cfg.Store.Mongo.Database == "" {
			return fmt.Errorf("invalid configuration: store.mongo.database is required for the mongo backend")
		}
	case "postgres":
		if cfg.Store.Postgres.URL == "" {
			return fmt.Errorf("invalid configuration: store.postgres.url is required for the postgres backend")
		}
	}

	return nil
}
