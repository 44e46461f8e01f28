package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from an optional YAML file using viper.
// Precedence: CLI flags (applied by the caller) > environment > config
// file > defaults. Environment variables use the CODEMINT_ prefix with
// dots replaced by underscores (CODEMINT_DATABASE_URL, CODEMINT_LOG_LEVEL).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("database_url", defaults.DatabaseURL)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("max_expression_length", defaults.MaxExpressionLength)
	v.SetDefault("max_components", defaults.MaxComponents)

	v.SetEnvPrefix("CODEMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:         v.GetString("database_url"),
		LogLevel:            v.GetString("log_level"),
		MaxExpressionLength: v.GetInt("max_expression_length"),
		MaxComponents:       v.GetInt("max_components"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
