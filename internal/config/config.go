package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	SendGrid struct {
		APIKey string `yaml:"api_key"`
		From   string `yaml:"from"`
		To     string `yaml:"to"`
	} `yaml:"sendgrid"`
	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	Scan struct {
		ChunkSize        int     `yaml:"chunk_size"`
		PacingMs         int     `yaml:"pacing_ms"`
		DropLookbackDays int     `yaml:"drop_lookback_days"`
		DropBufferDays   int     `yaml:"drop_buffer_days"`
		DropThreshold    float64 `yaml:"drop_threshold"`
		RsiPeriod        int     `yaml:"rsi_period"`
		RsiHistoryDays   int     `yaml:"rsi_history_days"`
		RsiOversold      float64 `yaml:"rsi_oversold"`
		RsiOverbought    float64 `yaml:"rsi_overbought"`
		CrossHistoryDays int     `yaml:"cross_history_days"`
	} `yaml:"scan"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Universe struct {
		File string `yaml:"file"`
	} `yaml:"universe"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.SendGrid.APIKey = v
	}
	if v := os.Getenv("SENDGRID_FROM"); v != "" {
		cfg.SendGrid.From = v
	}
	if v := os.Getenv("SENDGRID_TO"); v != "" {
		cfg.SendGrid.To = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("UNIVERSE_FILE"); v != "" {
		cfg.Universe.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.ChunkSize = n
		}
	}

	// Defaults
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Scan.ChunkSize == 0 {
		cfg.Scan.ChunkSize = 5
	}
	if cfg.Scan.PacingMs == 0 {
		cfg.Scan.PacingMs = 500
	}
	if cfg.Scan.DropLookbackDays == 0 {
		cfg.Scan.DropLookbackDays = 6
	}
	if cfg.Scan.DropBufferDays == 0 {
		cfg.Scan.DropBufferDays = 5
	}
	if cfg.Scan.DropThreshold == 0 {
		cfg.Scan.DropThreshold = 0.06
	}
	if cfg.Scan.RsiPeriod == 0 {
		cfg.Scan.RsiPeriod = 14
	}
	if cfg.Scan.RsiHistoryDays == 0 {
		cfg.Scan.RsiHistoryDays = 150
	}
	if cfg.Scan.RsiOversold == 0 {
		cfg.Scan.RsiOversold = 30
	}
	if cfg.Scan.RsiOverbought == 0 {
		// Stricter than the textbook 70, cuts overbought false positives.
		cfg.Scan.RsiOverbought = 75
	}
	if cfg.Scan.CrossHistoryDays == 0 {
		cfg.Scan.CrossHistoryDays = 400
	}
	if cfg.Schedule.DailyCron == "" {
		// 08:00 server time on weekdays, with seconds field.
		cfg.Schedule.DailyCron = "0 0 8 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockscout.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.SendGrid.APIKey == "" {
		return fmt.Errorf("sendgrid.api_key is required")
	}
	if c.SendGrid.From == "" {
		return fmt.Errorf("sendgrid.from is required")
	}
	if c.SendGrid.To == "" {
		return fmt.Errorf("sendgrid.to is required")
	}
	if c.Scan.ChunkSize <= 0 {
		return fmt.Errorf("scan.chunk_size must be positive")
	}
	if c.Scan.DropThreshold <= 0 || c.Scan.DropThreshold >= 1 {
		return fmt.Errorf("scan.drop_threshold must be a fraction in (0, 1)")
	}
	if c.Scan.RsiOversold >= c.Scan.RsiOverbought {
		return fmt.Errorf("scan.rsi_oversold must be below scan.rsi_overbought")
	}
	return nil
}
