package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if cfg.Scan.ChunkSize != 5 {
		t.Errorf("expected default chunk size 5, got %d", cfg.Scan.ChunkSize)
	}
	if cfg.Scan.DropThreshold != 0.06 {
		t.Errorf("expected default drop threshold 0.06, got %v", cfg.Scan.DropThreshold)
	}
	if cfg.Scan.RsiOverbought != 75 {
		t.Errorf("expected asymmetric overbought bound 75, got %v", cfg.Scan.RsiOverbought)
	}
	if cfg.Schedule.DailyCron == "" {
		t.Error("expected a default daily cron")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sendgrid:
  api_key: file-key
  from: a@example.com
  to: b@example.com
scan:
  chunk_size: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SENDGRID_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SendGrid.APIKey != "env-key" {
		t.Errorf("env must override file, got %q", cfg.SendGrid.APIKey)
	}
	if cfg.Scan.ChunkSize != 10 {
		t.Errorf("expected chunk size 10 from file, got %d", cfg.Scan.ChunkSize)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without sendgrid settings")
	}

	cfg.SendGrid.APIKey = "k"
	cfg.SendGrid.From = "a@example.com"
	cfg.SendGrid.To = "b@example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	cfg.Scan.RsiOversold = 80
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for inverted RSI thresholds")
	}
}
