package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
	Ladder        LadderConfig        `yaml:"ladder"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the read-only query API settings.
type HTTPConfig struct {
	Address           string  `yaml:"address"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// LadderConfig holds the defaults used when a guild has no competition row yet.
type LadderConfig struct {
	DefaultWinModifier      int     `yaml:"default_win_modifier"`
	DefaultLossModifier     int     `yaml:"default_loss_modifier"`
	DefaultReductionPercent float64 `yaml:"default_reduction_percent"`
}

const (
	defaultHTTPAddress      = ":8080"
	defaultRequestsPerSec   = 10
	defaultBurst            = 20
	defaultWinModifier      = 10
	defaultLossModifier     = 5
	defaultReductionPercent = 0.5
)

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if err := applyOptionalEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	if err := applyOptionalEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func applyOptionalEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_REQUESTS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_REQUESTS_PER_SECOND value: %v", err)
		}
		cfg.HTTP.RequestsPerSecond = f
	}
	if v := os.Getenv("HTTP_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_BURST value: %v", err)
		}
		cfg.HTTP.Burst = n
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LADDER_DEFAULT_WIN_MODIFIER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LADDER_DEFAULT_WIN_MODIFIER value: %v", err)
		}
		cfg.Ladder.DefaultWinModifier = n
	}
	if v := os.Getenv("LADDER_DEFAULT_LOSS_MODIFIER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LADDER_DEFAULT_LOSS_MODIFIER value: %v", err)
		}
		cfg.Ladder.DefaultLossModifier = n
	}
	if v := os.Getenv("LADDER_DEFAULT_REDUCTION_PERCENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LADDER_DEFAULT_REDUCTION_PERCENT value: %v", err)
		}
		cfg.Ladder.DefaultReductionPercent = f
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = defaultHTTPAddress
	}
	if c.HTTP.RequestsPerSecond <= 0 {
		c.HTTP.RequestsPerSecond = defaultRequestsPerSec
	}
	if c.HTTP.Burst <= 0 {
		c.HTTP.Burst = defaultBurst
	}
	if c.Ladder.DefaultWinModifier == 0 {
		c.Ladder.DefaultWinModifier = defaultWinModifier
	}
	if c.Ladder.DefaultLossModifier == 0 {
		c.Ladder.DefaultLossModifier = defaultLossModifier
	}
	if c.Ladder.DefaultReductionPercent == 0 {
		c.Ladder.DefaultReductionPercent = defaultReductionPercent
	}
}

// SlogLevel maps observability.log_level onto a slog level. Unknown values mean Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
