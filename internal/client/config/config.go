// Package config настройки CLI клиента: флаги, PROMPTPAL_* переменные
// окружения и необязательный YAML файл.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения: PROMPTPAL_SERVER_URL, PROMPTPAL_DB ...
const EnvPrefix = "PROMPTPAL"

// Config конфигурация клиента
type Config struct {
	ServerURL      string        `mapstructure:"server_url"`
	DBPath         string        `mapstructure:"db"`
	SuggestURL     string        `mapstructure:"suggest_url"`
	LogLevel       string        `mapstructure:"log_level"`
	SuggestTimeout time.Duration `mapstructure:"suggest_timeout"`
	PublicLimit    int           `mapstructure:"public_limit"`
}

var flagBindings = map[string]string{
	"server_url":  "server",
	"db":          "db",
	"suggest_url": "suggest-url",
	"log_level":   "log-level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_url", "http://localhost:3001")
	v.SetDefault("db", "promptpal-client.db")
	v.SetDefault("suggest_url", "http://localhost:5000")
	v.SetDefault("log_level", "error")
	v.SetDefault("suggest_timeout", 15*time.Second)
	v.SetDefault("public_limit", 0)
}

// Load читает конфигурацию: defaults → файл (если задан) → env → флаги
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	cfg.SuggestURL = strings.TrimRight(cfg.SuggestURL, "/")

	return &cfg, nil
}

// Validate проверяет адреса и пути
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL("server_url", c.ServerURL); err != nil {
		errs = append(errs, err)
	}
	if c.SuggestURL != "" {
		if err := validateURL("suggest_url", c.SuggestURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db is required"))
	}
	if c.PublicLimit < 0 || c.PublicLimit > 100 {
		errs = append(errs, errors.New("public_limit must be between 0 and 100"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, raw)
	}
	return nil
}

// Level уровень логирования диагностики: debug, info, warn, error
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelError, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
