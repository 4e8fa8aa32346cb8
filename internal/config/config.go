package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Endpoint struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"endpoint"`
	Session struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// Load reads configuration from an optional config.yaml, with environment
// overrides (TAMAL_SERVER_PORT, TAMAL_ENDPOINT_URL, ...) and defaults for
// every key.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TAMAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("endpoint.url", "https://script.google.com/macros/s/AKfycbzRklOYJ2jS__V-PmWeGEf7szqKY1XyhoPrLzQdOS65-51Fi8nitrm6Yktkjm-uYZgf/exec")
	v.SetDefault("session.secret", "dev-secret-change-in-production")
	v.SetDefault("session.ttl", "45m")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8080"})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file; defaults and env overrides apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
