package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haytac/emotions/internal/emotion"
	"github.com/haytac/emotions/internal/logging"
	"github.com/spf13/viper"
)

// RateLimit bounds the HTTP API. A zero PerSecond disables limiting.
type RateLimit struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

// AppConfig holds the application configuration.
type AppConfig struct {
	Log             logging.Config `mapstructure:"log"`
	StaticServePath string         `mapstructure:"static_serve_path"` // asset base URL for rendered image tags
	ToneAction      string         `mapstructure:"tone_action"`
	ListenAddr      string         `mapstructure:"listen_addr"`
	MetricsPort     string         `mapstructure:"metrics_port"`
	SanitizeInput   bool           `mapstructure:"sanitize_input"`
	RateLimit       RateLimit      `mapstructure:"rate_limit"`

	Tone emotion.ToneAction `mapstructure:"-"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.time_format", time.RFC3339)
	v.SetDefault("static_serve_path", "")
	v.SetDefault("tone_action", "remove")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("metrics_port", ":9090")
	v.SetDefault("sanitize_input", false)
	v.SetDefault("rate_limit.per_second", 0)
	v.SetDefault("rate_limit.burst", 20)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.emotions")
		v.AddConfigPath("/etc/emotions/")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("EMOTIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	tone, err := emotion.ParseToneAction(cfg.ToneAction)
	if err != nil {
		return nil, fmt.Errorf("tone_action: %w", err)
	}
	cfg.Tone = tone
	cfg.StaticServePath = strings.TrimSuffix(cfg.StaticServePath, "/")

	return &cfg, nil
}
