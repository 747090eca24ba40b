package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/tradebrain/logger"
	"gopkg.in/yaml.v3"
)

// Config represents the complete session configuration
type Config struct {
	Session SessionConfig `json:"session" yaml:"session"`
	Logging logger.Config `json:"logging" yaml:"logging"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// SessionConfig seeds the position book before any command runs
type SessionConfig struct {
	Instrument   string  `json:"instrument" yaml:"instrument"`
	RiskPerTrade float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
	StockPrice   float64 `json:"stock_price" yaml:"stock_price"`

	// RiskLine is used by script commands that leave the risk line blank.
	RiskLine float64 `json:"risk_line" yaml:"risk_line"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	ExecutionsFile string `json:"executions_file,omitempty" yaml:"executions_file,omitempty"`
	SnapshotsFile  string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty"`
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// MetricsConfig controls the prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Session.Instrument == "" {
		return fmt.Errorf("session.instrument is required")
	}
	if c.Session.RiskPerTrade <= 0 {
		return fmt.Errorf("session.risk_per_trade must be positive")
	}
	if c.Session.StockPrice < 0 {
		return fmt.Errorf("session.stock_price must not be negative")
	}
	if c.Session.RiskLine < 0 {
		return fmt.Errorf("session.risk_line must not be negative")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.ExecutionsFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal executions_file and snapshots_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Metrics.Addr != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			Instrument:   "SPY",
			RiskPerTrade: 1000,
		},
		Logging: logger.DefaultConfig(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradebrain.sqlite",
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
	}
}
