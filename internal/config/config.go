// Package config loads runtime settings from an optional workdesk.yaml file
// and WD_-prefixed environment variables, with environment taking precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config stores the settings the CLI needs at startup.
type Config struct {
	Model       string `mapstructure:"model"`        // Anthropic model name; empty selects the provider default
	TokenBudget int    `mapstructure:"token_budget"` // approximate token window for history sent upstream
	PersistPath string `mapstructure:"persist_path"` // conversation history file
	SeedPath    string `mapstructure:"seed_path"`    // optional YAML seed for the workplace store
}

// Load reads configuration from configPath when given, otherwise from a
// workdesk.yaml in the working directory if one exists. A missing config
// file is not an error; defaults and environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("workdesk")
		v.SetConfigType("yaml")
	}

	v.SetDefault("model", "")
	v.SetDefault("token_budget", 50000)
	v.SetDefault("persist_path", "conversation.json")
	v.SetDefault("seed_path", "")

	v.SetEnvPrefix("WD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults and environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.TokenBudget <= 0 {
		return nil, fmt.Errorf("token_budget must be positive, got %d", cfg.TokenBudget)
	}
	return &cfg, nil
}
