package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the runtime configuration shared by the CLI commands.
type Config struct {
	Addr        string    `yaml:"addr" validate:"required,hostname_port"`
	LogLevel    string    `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	Definition  string    `yaml:"definition"`
	Concurrency int       `yaml:"concurrency" validate:"gte=1,lte=1024"`
	Store       string    `yaml:"store" validate:"oneof=memory redis"`
	Redis       Redis     `yaml:"redis"`
	RateLimit   RateLimit `yaml:"rate_limit"`
}

// Redis configures the Redis verdict store.
type Redis struct {
	Addr     string        `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"gte=0,lte=15"`
	TTL      time.Duration `yaml:"ttl" validate:"gte=0"`
	Prefix   string        `yaml:"prefix"`
}

// RateLimit configures the HTTP token bucket. RPS 0 disables it.
type RateLimit struct {
	RPS   float64 `yaml:"rps" validate:"gte=0"`
	Burst int     `yaml:"burst" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:        "localhost:8080",
		LogLevel:    "info",
		Concurrency: 8,
		Store:       StoreMemory,
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "romandfa:verdict:",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates.
// An empty path skips the file. A missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ROMANDFA_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookup("ROMANDFA_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("ROMANDFA_DEFINITION"); ok {
		c.Definition = v
	}
	if v, ok := lookup("ROMANDFA_STORE"); ok {
		c.Store = v
	}
	if v, ok := lookup("ROMANDFA_REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := lookup("ROMANDFA_REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := lookup("ROMANDFA_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROMANDFA_REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration with its struct tags.
func (c *Config) Validate() error {
	if c.Store == StoreRedis && c.Redis.Addr == "" {
		return errors.New("invalid config: redis store requires redis.addr")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %w", errors.Join(msgs...))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
