package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var ErrUnknownDriver = errors.New("unknown store driver")

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	DatabaseURL   string `yaml:"database_url"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// Enabled reports whether daily summaries should also go out by e-mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.To != ""
}

// Config holds all configuration for the application
type Config struct {
	Port           string        `yaml:"port"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Timezone       string        `yaml:"timezone"`
	AMQPURL        string        `yaml:"amqp_url"`
	WebhookTimeout time.Duration `yaml:"webhook_timeout"`
	SchedulerEvery time.Duration `yaml:"scheduler_interval"`
	Store          StoreConfig   `yaml:"store"`
	Mail           MailConfig    `yaml:"mail"`

	Location *time.Location `yaml:"-"`
	Level    zerolog.Level  `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		LogLevel:       "info",
		LogFormat:      "console",
		AllowedOrigins: []string{"http://localhost:5173"},
		SchedulerEvery: time.Minute,
		Store: StoreConfig{
			Driver:      DriverFile,
			Path:        "data/calltracker.json",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "calltracker:",
		},
		Mail: MailConfig{Port: 587},
	}
}

// Load reads the optional YAML file at path, then lets .env and the process
// environment override it.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.Path = getEnv("STORE_PATH", cfg.Store.Path)
	cfg.Store.DatabaseURL = getEnv("DATABASE_URL", cfg.Store.DatabaseURL)
	cfg.Store.RedisAddr = getEnv("REDIS_ADDR", cfg.Store.RedisAddr)
	cfg.Store.RedisPassword = getEnv("REDIS_PASSWORD", cfg.Store.RedisPassword)
	cfg.Store.RedisPrefix = getEnv("REDIS_PREFIX", cfg.Store.RedisPrefix)

	cfg.Mail.Host = getEnv("SMTP_HOST", cfg.Mail.Host)
	cfg.Mail.User = getEnv("SMTP_USER", cfg.Mail.User)
	cfg.Mail.Password = getEnv("SMTP_PASS", cfg.Mail.Password)
	cfg.Mail.From = getEnv("REPORT_EMAIL_FROM", cfg.Mail.From)
	cfg.Mail.To = getEnv("REPORT_EMAIL_TO", cfg.Mail.To)

	var err error
	if cfg.Store.RedisDB, err = getEnvInt("REDIS_DB", cfg.Store.RedisDB); err != nil {
		return err
	}
	if cfg.Mail.Port, err = getEnvInt("SMTP_PORT", cfg.Mail.Port); err != nil {
		return err
	}
	if cfg.WebhookTimeout, err = getEnvDuration("WEBHOOK_TIMEOUT", cfg.WebhookTimeout); err != nil {
		return err
	}
	if cfg.SchedulerEvery, err = getEnvDuration("SCHEDULER_INTERVAL", cfg.SchedulerEvery); err != nil {
		return err
	}
	return nil
}

func (c *Config) finalize() error {
	for i, origin := range c.AllowedOrigins {
		c.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}
	if c.Store.Driver == DriverPostgres && c.Store.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for the postgres store")
	}

	if c.SchedulerEvery <= 0 {
		return fmt.Errorf("invalid SCHEDULER_INTERVAL: %s", c.SchedulerEvery)
	}
	// A slower tick can step over the configured HH:MM minute.
	if c.SchedulerEvery > time.Minute {
		return fmt.Errorf("invalid SCHEDULER_INTERVAL: %s exceeds 1m", c.SchedulerEvery)
	}
	if c.WebhookTimeout < 0 {
		return fmt.Errorf("invalid WEBHOOK_TIMEOUT: %s", c.WebhookTimeout)
	}

	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	c.Level = level

	c.Location = time.Local
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("invalid TIMEZONE: %w", err)
		}
		c.Location = loc
	}
	return nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// getEnvDuration accepts Go durations ("90s") or bare seconds ("90").
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
