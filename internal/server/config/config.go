package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/promptpal/internal/crypto"
)

// EnvPrefix префикс переменных окружения: PROMPTPAL_JWT_SECRET, PROMPTPAL_DATABASE_PATH ...
const EnvPrefix = "PROMPTPAL"

// EnvProduction значение env, при котором включаются строгие проверки
const EnvProduction = "production"

// MinSecretLen минимальная длина JWT секрета в production
const MinSecretLen = 16

// Config конфигурация сервера
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Env       string          `mapstructure:"env"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Public    PublicConfig    `mapstructure:"public"`
}

// HTTPConfig настройки HTTP сервера
type HTTPConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig настройки SQLite
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// JWTConfig настройки токенов сессии
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// CORSConfig список разрешенных origin. Пустой список разрешает все.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig лимит запросов к /api/auth/* с одного IP
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PublicConfig размер страницы публичных промптов
type PublicConfig struct {
	Limit int `mapstructure:"limit"`
}

// flagBindings связывает ключи конфигурации с флагами cobra
var flagBindings = map[string]string{
	"http.address":  "addr",
	"database.path": "db",
	"log.level":     "log-level",
	"log.format":    "log-format",
	"env":           "env",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("http.address", ":3001")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.path", "promptpal.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("public.limit", 100)
}

// Load читает конфигурацию: defaults → файл (если задан) → env → флаги.
// flags может быть nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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

	return &cfg, nil
}

// IsProduction сообщает, включен ли production режим
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Validate проверяет конфигурацию перед запуском сервера
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.Address == "" {
		errs = append(errs, errors.New("http.address is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}
	if c.IsProduction() && len(c.JWT.Secret) < MinSecretLen {
		errs = append(errs, fmt.Errorf("jwt.secret must be at least %d bytes in production", MinSecretLen))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.requests and rate_limit.window must be positive"))
	}
	if c.Public.Limit < 1 || c.Public.Limit > 100 {
		errs = append(errs, errors.New("public.limit must be between 1 and 100"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// EnsureSecret генерирует случайный секрет, если он не задан.
// Токены, подписанные таким секретом, не переживают перезапуск.
func (c *Config) EnsureSecret() (bool, error) {
	if c.JWT.Secret != "" {
		return false, nil
	}

	secret, err := crypto.GenerateSecret()
	if err != nil {
		return false, fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	c.JWT.Secret = secret
	return true, nil
}
