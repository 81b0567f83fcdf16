// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Dashboard DashboardConfig `toml:"dashboard"`
	API       APIConfig       `toml:"api"`
	Export    ExportConfig    `toml:"export"`
	Log       LogConfig       `toml:"log"`
}

// DashboardConfig maps dashboard settings.
type DashboardConfig struct {
	PageSize *int    `toml:"page-size"`
	Debounce *string `toml:"debounce"`
	Journal  *string `toml:"journal"`
}

// APIConfig maps characters API settings.
type APIConfig struct {
	BaseURL   *string  `toml:"base-url"`
	Timeout   *string  `toml:"timeout"`
	RateLimit *float64 `toml:"rate-limit"`
}

// ExportConfig maps export settings.
type ExportConfig struct {
	Dir    *string `toml:"dir"`
	Format *string `toml:"format"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	Path  *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written when the config command creates a new file.
const Template = `# disneydash configuration

[dashboard]
# page-size = 50
# debounce = "500ms"
# journal = ":memory:"

[api]
# base-url = "https://api.disneyapi.dev"
# timeout = "10s"
# rate-limit = 5

[export]
# dir = "~/Downloads"
# format = "xlsx"

[log]
# level = "info"
`
