package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the API server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	Tasks    TasksConfig    `yaml:"tasks"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// URL is a SQLite file path or a postgres:// DSN.
	URL string `yaml:"url"`
}

type AuthConfig struct {
	// BcryptCost of zero means bcrypt.DefaultCost.
	BcryptCost int `yaml:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// RedisConfig enables the list cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type TasksConfig struct {
	// DefaultStatusID is the status tasks fall back to when theirs is deleted.
	DefaultStatusID uint `yaml:"default_status_id"`
	// PurgeAt is a daily HH:MM time; it wins over PurgeInterval when set.
	PurgeAt        string        `yaml:"purge_at"`
	PurgeInterval  time.Duration `yaml:"purge_interval"`
	PurgeRetention time.Duration `yaml:"purge_retention"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{URL: "task_tracker.db"},
		JWT:      JWTConfig{TTL: 24 * time.Hour},
		Redis:    RedisConfig{CacheTTL: time.Minute},
		Tasks: TasksConfig{
			DefaultStatusID: 1,
			PurgeRetention:  30 * 24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %q: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if c.Tasks.DefaultStatusID == 0 {
		return errors.New("default status id must be positive")
	}
	return nil
}

func overrideFromEnv(cfg *Config) error {
	if v := env("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := env("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := env("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := env("JWT_TTL_HOURS"); v != "" {
		if d := parseInterval(v); d > 0 {
			cfg.JWT.TTL = d
		}
	}
	if v := env("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		cfg.Auth.BcryptCost = cost
	}
	if v := env("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := env("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := env("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	if v := env("DEFAULT_STATUS_ID"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DEFAULT_STATUS_ID: %w", err)
		}
		cfg.Tasks.DefaultStatusID = uint(id)
	}
	if v := env("PURGE_AT"); v != "" {
		cfg.Tasks.PurgeAt = v
	}
	if v := env("PURGE_INTERVAL_HOURS"); v != "" {
		cfg.Tasks.PurgeInterval = parseInterval(v)
	}
	if v := env("PURGE_RETENTION_HOURS"); v != "" {
		if d := parseInterval(v); d > 0 {
			cfg.Tasks.PurgeRetention = d
		}
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
