// Package config loads application configuration from environment
// variables, optionally merged with a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Client  ClientConfig  `yaml:"client" envconfig:"CLIENT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Checker CheckerConfig `yaml:"checker" envconfig:"CHECKER"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"20"`
}

// ClientConfig configures outbound report fetches.
type ClientConfig struct {
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"misoreports"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/misoreports.log"`
}

// CheckerConfig configures the registry sweep tool. RPS throttles requests
// against the report hosts, which rate limit aggressively.
type CheckerConfig struct {
	Concurrency int     `yaml:"concurrency" envconfig:"CONCURRENCY" default:"4"`
	RPS         float64 `yaml:"rps" envconfig:"RPS" default:"2"`
}

// Load reads configuration from the environment, then applies the optional
// YAML file named by MISO_CONFIG_FILE. Keys set in the file override the
// environment.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MISO", &cfg); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if path := os.Getenv("MISO_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("server rate limit rps must be positive, got %v", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("server rate limit burst must be at least 1, got %d", c.Server.RateLimitBurst)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client timeout must be positive, got %s", c.Client.Timeout)
	}
	if c.Checker.Concurrency < 1 {
		return fmt.Errorf("checker concurrency must be at least 1, got %d", c.Checker.Concurrency)
	}
	if c.Checker.RPS <= 0 {
		return fmt.Errorf("checker rps must be positive, got %v", c.Checker.RPS)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}
