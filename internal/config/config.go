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

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type WebConfig struct {
	Port         int    `yaml:"port"`
	JWTSecret    string `yaml:"jwt_secret"`
	SecureCookie bool   `yaml:"secure_cookie"`
	CookieDomain string `yaml:"cookie_domain"`
}

type BotConfig struct {
	Token  string `yaml:"token"`   // empty disables Telegram alerts
	ChatID int64  `yaml:"chat_id"` // destination chat for expiry alerts
}

type ScanConfig struct {
	OpenAIKey   string `yaml:"openai_key"`
	GeminiKey   string `yaml:"gemini_key"`
	GeminiURL   string `yaml:"gemini_url"`
	OpenAIModel string `yaml:"openai_model"`
	GeminiModel string `yaml:"gemini_model"`
	RatePerMin  int    `yaml:"rate_per_min"` // scan requests per user per minute
	Workers     int    `yaml:"workers"`      // scan worker pool size
}

type RecommendConfig struct {
	ExpiryThresholdDays int `yaml:"expiry_threshold_days"` // default notification threshold
}

type SchedulerConfig struct {
	NotifyInterval time.Duration `yaml:"notify_interval"`
	StatsInterval  time.Duration `yaml:"stats_interval"`
}

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Web       WebConfig       `yaml:"web"`
	Bot       BotConfig       `yaml:"bot"`
	Scan      ScanConfig      `yaml:"scan"`
	Recommend RecommendConfig `yaml:"recommend"`
	Scheduler SchedulerConfig `yaml:"scheduler"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads and validates the YAML config at path.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Scan.RatePerMin <= 0 {
		cfg.Scan.RatePerMin = 5
	}
	if cfg.Scan.Workers <= 0 {
		cfg.Scan.Workers = 4
	}
	if cfg.Scan.OpenAIModel == "" {
		cfg.Scan.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.Scan.GeminiModel == "" {
		cfg.Scan.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.Recommend.ExpiryThresholdDays <= 0 {
		cfg.Recommend.ExpiryThresholdDays = 7
	}
	if cfg.Scheduler.NotifyInterval <= 0 {
		cfg.Scheduler.NotifyInterval = time.Hour
	}
	if cfg.Scheduler.StatsInterval <= 0 {
		cfg.Scheduler.StatsInterval = 5 * time.Minute
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Web.JWTSecret == "" && !dev {
		return nil, errors.New("web.jwt_secret is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 24 * time.Hour
	}
	return d
}
