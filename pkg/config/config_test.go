package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v := InitViper("genptkt-test")
	var cfg Config
	if err := Load(v, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("Expected log level warn, got %q", cfg.Log.Level)
	}
	if cfg.Authority.Mock {
		t.Fatalf("Expected real authority by default")
	}
	if cfg.Policy.File != "" || cfg.Metrics.Textfile != "" || cfg.OTel.Enabled {
		t.Fatalf("Expected optional features disabled, got %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte(`
log:
  level: debug
authority:
  mock: true
  mock_ticket: ABCDEFGH
  mock_saf_rc: 8
policy:
  file: /etc/genptkt/policy.rego
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("PASSTICKET_AUTHORITY_MOCK_RACF_REASON", "4")

	v := InitViper("genptkt-test")
	var cfg Config
	if err := Load(v, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Expected log level debug, got %q", cfg.Log.Level)
	}
	if !cfg.Authority.Mock || cfg.Authority.MockTicket != "ABCDEFGH" || cfg.Authority.MockSAFReturnCode != 8 {
		t.Fatalf("Expected mock authority settings from file, got %+v", cfg.Authority)
	}
	if cfg.Authority.MockRACFReason != 4 {
		t.Fatalf("Expected reason code from env, got %d", cfg.Authority.MockRACFReason)
	}
	if cfg.Policy.File != "/etc/genptkt/policy.rego" {
		t.Fatalf("Expected policy file, got %q", cfg.Policy.File)
	}
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("log: [unterminated"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := InitViper("genptkt-test")
	v.SetConfigFile(path)
	var cfg Config
	if err := Load(v, &cfg); err == nil {
		t.Fatalf("Expected error for malformed config file")
	}
}

func TestBindFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := &cobra.Command{Use: "genptkt"}
	v := InitViper("genptkt-test")
	BindFlags(cmd, v)

	if err := cmd.PersistentFlags().Parse([]string{"--mock", "--log-level=error", "--metrics-textfile=/tmp/ptkt.prom"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var cfg Config
	if err := Load(v, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Authority.Mock || cfg.Log.Level != "error" || cfg.Metrics.Textfile != "/tmp/ptkt.prom" {
		t.Fatalf("Expected flags to override defaults, got %+v", cfg)
	}
}
