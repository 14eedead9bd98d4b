package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type SiteConfig struct {
	Port     int    `yaml:"port"`
	BaseURL  string `yaml:"base_url"`
	PriceBRL string `yaml:"price_brl"` // display-only, e.g. "14,90"
}

type AdminConfig struct {
	Port       int           `yaml:"port"`
	Passphrase string        `yaml:"passphrase"`  // shared secret for the simplified login
	JWTSecret  string        `yaml:"jwt_secret"`  // HMAC key for the session cookie
	SessionTTL time.Duration `yaml:"session_ttl"` // e.g. 30m
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type GeneratorConfig struct {
	Source    string        `yaml:"source"` // local | gemini | openai
	GeminiKey string        `yaml:"gemini_key"`
	GeminiURL string        `yaml:"gemini_url"`
	OpenAIKey string        `yaml:"openai_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
}

type RateLimitConfig struct {
	RedeemPerMinute int `yaml:"redeem_per_minute"` // per client IP
}

type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Admin     AdminConfig     `yaml:"admin"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Generator GeneratorConfig `yaml:"generator"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file, applies defaults and env overrides for
// secrets, and validates the required fields.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// secrets may come from the environment instead of the file
	if v := os.Getenv("ADMIN_SECRET_CODE"); v != "" {
		cfg.Admin.Passphrase = v
	}
	if v := os.Getenv("ADMIN_JWT_SECRET"); v != "" {
		cfg.Admin.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Generator.GeminiKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Generator.OpenAIKey = v
	}

	// defaults
	if cfg.Site.Port <= 0 {
		cfg.Site.Port = 8080
	}
	if cfg.Admin.Port <= 0 {
		cfg.Admin.Port = 8081
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Generator.Source == "" {
		cfg.Generator.Source = "local"
	}
	if cfg.Generator.Timeout <= 0 {
		cfg.Generator.Timeout = 30 * time.Second
	}
	if cfg.RateLimit.RedeemPerMinute <= 0 {
		cfg.RateLimit.RedeemPerMinute = 10
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Admin.Passphrase == "" {
		return nil, errors.New("admin.passphrase is required (or set ADMIN_SECRET_CODE)")
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, errors.New("admin.jwt_secret is required (or set ADMIN_JWT_SECRET)")
	}
	switch cfg.Generator.Source {
	case "local":
	case "gemini":
		if cfg.Generator.GeminiKey == "" {
			return nil, errors.New("generator.gemini_key is required when generator.source=gemini")
		}
	case "openai":
		if cfg.Generator.OpenAIKey == "" {
			return nil, errors.New("generator.openai_key is required when generator.source=openai")
		}
	default:
		return nil, fmt.Errorf("unknown generator.source %q", cfg.Generator.Source)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
