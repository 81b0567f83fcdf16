package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Dashboard.PageSize != nil || cfg.API.BaseURL != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[dashboard]
page-size = 20
debounce = "250ms"

[api]
base-url = "http://localhost:8080"
timeout = "3s"

[export]
format = "CSV"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fileCfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := Defaults()
	if err := fileCfg.Apply(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.PageSize != 20 || cfg.Debounce != 250*time.Millisecond {
		t.Fatalf("unexpected dashboard values: %+v", cfg)
	}
	if cfg.BaseURL != "http://localhost:8080" || cfg.Timeout != 3*time.Second {
		t.Fatalf("unexpected api values: %+v", cfg)
	}
	if cfg.ExportFormat != "csv" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected export/log values: %+v", cfg)
	}
	if cfg.JournalPath != ":memory:" {
		t.Fatalf("unset keys must keep defaults, got %q", cfg.JournalPath)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[dashboard]\npage-sise = 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "page-sise") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestApplyInvalidDuration(t *testing.T) {
	bad := "soon"
	cfg := Defaults()
	if err := (FileConfig{Dashboard: DashboardConfig{Debounce: &bad}}).Apply(&cfg); err == nil {
		t.Fatalf("expected duration error")
	}
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template must decode: %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}

	cfg := Defaults()
	cfg.PageSize = 0
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "PageSize") {
		t.Fatalf("expected page size error, got %v", err)
	}

	cfg = Defaults()
	cfg.ExportFormat = "docx"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "ExportFormat") {
		t.Fatalf("expected export format error, got %v", err)
	}

	cfg = Defaults()
	cfg.BaseURL = "not a url"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "BaseURL") {
		t.Fatalf("expected base url error, got %v", err)
	}
}

func TestXDGPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	if got := DefaultConfigPath(); got != filepath.Join(dir, "config", "disneydash", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "disneydash", "disneydash.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
	if got := DefaultJournalFile(); got != filepath.Join(dir, "data", "disneydash", "journal.db") {
		t.Fatalf("unexpected journal path: %s", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := ExpandHome("~/exports"); got != filepath.Join(home, "exports") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute paths must not change: %s", got)
	}
}
