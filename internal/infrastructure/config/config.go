package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all engine configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	Valuation ValuationConfig
	Expiry    ExpiryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr
}

// ValuationConfig holds recompute scheduling settings
type ValuationConfig struct {
	// DebounceWindow is how long a burst of line edits is coalesced before
	// a single recompute fires with the latest state
	DebounceWindow time.Duration
}

// ExpiryConfig holds the quotation expiry sweep settings
type ExpiryConfig struct {
	Enabled       bool
	CheckInterval time.Duration // how often to sweep for expired quotations
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with DGSALES_ prefix (e.g., DGSALES_LOG_LEVEL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("DGSALES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Valuation: ValuationConfig{
			DebounceWindow: v.GetDuration("valuation.debounce_window"),
		},
		Expiry: ExpiryConfig{
			Enabled:       v.GetBool("expiry.enabled"),
			CheckInterval: v.GetDuration("expiry.check_interval"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "dgsales")
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("valuation.debounce_window", 150*time.Millisecond)
	v.SetDefault("expiry.enabled", true)
	v.SetDefault("expiry.check_interval", time.Minute)
}

// Validate checks the configuration for values the engine cannot run with
func (c *Config) Validate() error {
	if c.Valuation.DebounceWindow <= 0 {
		return fmt.Errorf("valuation.debounce_window must be positive, got %s", c.Valuation.DebounceWindow)
	}
	if c.Expiry.Enabled && c.Expiry.CheckInterval <= 0 {
		return fmt.Errorf("expiry.check_interval must be positive, got %s", c.Expiry.CheckInterval)
	}
	return nil
}
