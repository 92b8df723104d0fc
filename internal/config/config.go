package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API   APIConfig   `mapstructure:"api"`
	State StateConfig `mapstructure:"state"`
	Mock  MockConfig  `mapstructure:"mock"`
}

type APIConfig struct {
	// BaseURL is the backend root, e.g. https://store.example.com.
	// Every consumed endpoint lives under <BaseURL>/api.
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StateConfig struct {
	// Dir holds the durable client state (session, favorites).
	Dir string `mapstructure:"dir"`
}

type MockConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// SHOPFRONT_API_BASE_URL (or SHOPFRONT_API_URL) overrides the backend root.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.shopfront/")
	v.AddConfigPath("/etc/shopfront/")

	v.SetEnvPrefix("SHOPFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults also register the keys so AutomaticEnv can see them.
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("state.dir", "")
	v.SetDefault("mock.addr", ":8080")

	// Config file is optional: environment variables alone are enough to run.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.API.BaseURL == "" {
		config.API.BaseURL = os.Getenv("SHOPFRONT_API_URL")
	}
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")

	if config.State.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home dir: %w", err)
		}
		config.State.Dir = filepath.Join(home, ".shopfront")
	}

	return &config, nil
}
