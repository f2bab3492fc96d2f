package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Defaults.
const (
	DefaultBackend    = BackendSQLite
	DefaultDBPath     = "~/.local/share/cashheal/cashheal.db"
	DefaultCurrency   = "EUR"
	DefaultLanguage   = "fr"
	DefaultServerAddr = "127.0.0.1:8080"
)

// SupportedCurrencies lists the display currencies.
var SupportedCurrencies = []string{"EUR", "USD", "GBP", "CAD", "CNY", "XOF"}

// SupportedLanguages lists the display languages.
var SupportedLanguages = []string{"fr", "en", "es", "pt", "zh", "ja"}

// Settings are the user-facing display preferences.
type Settings struct {
	Currency string
	Language string
}

// Validate checks both values against the supported lists.
func (s Settings) Validate() error {
	if !slices.Contains(SupportedCurrencies, s.Currency) {
		return fmt.Errorf("%w: unsupported currency %q (supported: %s)",
			common.ErrInvalidConfig, s.Currency, strings.Join(SupportedCurrencies, ", "))
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%w: unsupported language %q (supported: %s)",
			common.ErrInvalidConfig, s.Language, strings.Join(SupportedLanguages, ", "))
	}
	return nil
}

// Normalize upper-cases the currency and lower-cases the language.
func (s Settings) Normalize() Settings {
	return Settings{
		Currency: strings.ToUpper(strings.TrimSpace(s.Currency)),
		Language: strings.ToLower(strings.TrimSpace(s.Language)),
	}
}

// Config is the resolved application configuration.
type Config struct {
	Settings    Settings
	Backend     string
	DBPath      string
	RedisURL    string
	RedisPrefix string
	ServerAddr  string
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.backend", DefaultBackend)
	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.prefix", "cashheal:")
	v.SetDefault("display.currency", DefaultCurrency)
	v.SetDefault("display.language", DefaultLanguage)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Backend:     strings.ToLower(v.GetString("database.backend")),
		DBPath:      ExpandPath(v.GetString("database.path")),
		RedisURL:    v.GetString("redis.url"),
		RedisPrefix: v.GetString("redis.prefix"),
		ServerAddr:  v.GetString("server.addr"),
		Settings: Settings{
			Currency: v.GetString("display.currency"),
			Language: v.GetString("display.language"),
		}.Normalize(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend selection and display settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: redis.url", common.ErrMissingConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown database.backend %q", common.ErrInvalidConfig, c.Backend)
	}
	return c.Settings.Validate()
}
