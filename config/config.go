package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a double
// underscore, e.g. FUELTRACK_SMTP__HOST sets smtp.host.
const EnvPrefix = "FUELTRACK_"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	SMTP      SMTPConfig      `koanf:"smtp"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Reminders ReminderConfig  `koanf:"reminders"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode string `koanf:"mode"`
}

type DatabaseConfig struct {
	// Driver is "mysql" or "sqlite".
	Driver   string `koanf:"driver"`
	URL      string `koanf:"url"`
	LogLevel string `koanf:"log_level"`
	Seed     bool   `koanf:"seed"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type SMTPConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Host      string `koanf:"host"`
	Port      int    `koanf:"port"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
	FromEmail string `koanf:"from_email"`
	FromName  string `koanf:"from_name"`
}

type RateLimitConfig struct {
	PerMinute int `koanf:"per_minute"`
	Burst     int `koanf:"burst"`
}

type ReminderConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	// DueSoonDistance is how close to the service interval a vehicle must be
	// to be reported as due soon.
	DueSoonDistance float64       `koanf:"due_soon_distance"`
	Cooldown        time.Duration `koanf:"cooldown"`
}

type AnalyticsConfig struct {
	WindowSize int `koanf:"window_size"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
	// Env "dev" switches to human readable console output.
	Env string `koanf:"env"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Mode: "debug"},
		Database: DatabaseConfig{
			Driver:   "mysql",
			URL:      "user:password@tcp(localhost:3306)/fueltrack?charset=utf8mb4&parseTime=True&loc=UTC",
			LogLevel: "warn",
		},
		Auth: AuthConfig{JWTSecret: "your-secret-key"},
		SMTP: SMTPConfig{
			Host:      "sandbox.smtp.mailtrap.io",
			Port:      2525,
			FromEmail: "noreply@fueltrack.app",
			FromName:  "FuelTrack",
		},
		RateLimit: RateLimitConfig{PerMinute: 120, Burst: 30},
		Reminders: ReminderConfig{
			Enabled:         true,
			Interval:        time.Hour,
			DueSoonDistance: 500,
			Cooldown:        7 * 24 * time.Hour,
		},
		Analytics: AnalyticsConfig{WindowSize: 5},
		Logging:   LoggingConfig{Level: "info", Env: os.Getenv("APP_ENV")},
	}
}

// Load reads the configuration file at path (YAML or JSON, chosen by
// extension) over the defaults and applies environment overrides. An empty
// path or a missing file skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Server.Mode)
	}
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate_limit.per_minute and rate_limit.burst must be positive")
	}
	if c.Analytics.WindowSize < 1 {
		return errors.New("analytics.window_size must be at least 1")
	}
	if c.Reminders.Enabled && c.Reminders.Interval <= 0 {
		return errors.New("reminders.interval must be positive")
	}
	return nil
}
