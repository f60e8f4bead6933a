// Package config loads runtime settings from an optional oagent.toml
// file, OAGENT_* environment variables, and built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings holds everything configurable at runtime. Flags override
// these per command.
type Settings struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Server      string        `mapstructure:"server"`
	AuthEnv     string        `mapstructure:"auth_env"`
	RateLimit   float64       `mapstructure:"rate_limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "openai")
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("server", "")
	v.SetDefault("auth_env", "")
	v.SetDefault("rate_limit", 0.0)
}

// Load reads settings from the given config file, or from oagent.toml
// in the working directory when the path is empty. A missing config
// file is not an error, defaults and environment variables apply.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OAGENT")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("oagent")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}
