package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/tradebrain/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "SPY", cfg.Session.Instrument)
	assert.Equal(t, 1000.0, cfg.Session.RiskPerTrade)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func(mut func(c *Config)) *Config {
		c := Default()
		mut(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "missing instrument",
			config:  valid(func(c *Config) { c.Session.Instrument = "" }),
			wantErr: true,
			errMsg:  "session.instrument is required",
		},
		{
			name:    "zero risk per trade",
			config:  valid(func(c *Config) { c.Session.RiskPerTrade = 0 }),
			wantErr: true,
			errMsg:  "session.risk_per_trade must be positive",
		},
		{
			name:    "negative stock price",
			config:  valid(func(c *Config) { c.Session.StockPrice = -1 }),
			wantErr: true,
			errMsg:  "session.stock_price must not be negative",
		},
		{
			name:    "negative risk line",
			config:  valid(func(c *Config) { c.Session.RiskLine = -1 }),
			wantErr: true,
			errMsg:  "session.risk_line must not be negative",
		},
		{
			name:    "bad log level",
			config:  valid(func(c *Config) { c.Logging = logger.Config{Level: "chatty", Format: "json", Output: "stderr"} }),
			wantErr: true,
			errMsg:  "logging.level",
		},
		{
			name:    "unknown journal",
			config:  valid(func(c *Config) { c.Journal.Type = "postgres" }),
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name:    "csv journal without files",
			config:  valid(func(c *Config) { c.Journal = JournalConfig{Type: "csv", ExecutionsFile: "e.csv"} }),
			wantErr: true,
			errMsg:  "journal executions_file and snapshots_file required",
		},
		{
			name:    "sqlite journal without path",
			config:  valid(func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }),
			wantErr: true,
			errMsg:  "journal db_path required",
		},
		{
			name:    "no journal",
			config:  valid(func(c *Config) { c.Journal = JournalConfig{Type: "none"} }),
			wantErr: false,
		},
		{
			name:    "metrics path without slash",
			config:  valid(func(c *Config) { c.Metrics = MetricsConfig{Addr: ":9100", Path: "metrics"} }),
			wantErr: true,
			errMsg:  "metrics.path must start with '/'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Session.StockPrice = 101.25
			cfg.Session.RiskLine = 99
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  instrument: AAPL\n  risk_per_trade: 250\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", cfg.Session.Instrument)
	assert.Equal(t, 250.0, cfg.Session.RiskPerTrade)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  instrument: AAPL\n  risk_per_trade: -5\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
