package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/disneydash/internal/api"
	"github.com/verte-zerg/disneydash/internal/debounce"
	"github.com/verte-zerg/disneydash/internal/journal"
	"github.com/verte-zerg/disneydash/internal/model"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 5
)

var validate = validator.New()

// Defaults returns the built-in configuration.
func Defaults() model.Config {
	return model.Config{
		BaseURL:      api.DefaultBaseURL,
		PageSize:     model.DefaultPageSize,
		Debounce:     debounce.DefaultQuiet,
		Timeout:      defaultTimeout,
		RateLimit:    defaultRateLimit,
		ExportDir:    DefaultExportDir(),
		ExportFormat: "xlsx",
		JournalPath:  journal.MemoryPath,
		LogLevel:     "info",
		LogPath:      DefaultLogPath(),
	}
}

// Apply overlays values set in the file onto cfg.
func (f FileConfig) Apply(cfg *model.Config) error {
	if f.Dashboard.PageSize != nil {
		cfg.PageSize = *f.Dashboard.PageSize
	}
	if f.Dashboard.Debounce != nil {
		d, err := time.ParseDuration(*f.Dashboard.Debounce)
		if err != nil {
			return fmt.Errorf("invalid dashboard.debounce: %w", err)
		}
		cfg.Debounce = d
	}
	if f.Dashboard.Journal != nil {
		cfg.JournalPath = ExpandHome(*f.Dashboard.Journal)
	}
	if f.API.BaseURL != nil {
		cfg.BaseURL = *f.API.BaseURL
	}
	if f.API.Timeout != nil {
		d, err := time.ParseDuration(*f.API.Timeout)
		if err != nil {
			return fmt.Errorf("invalid api.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if f.API.RateLimit != nil {
		cfg.RateLimit = *f.API.RateLimit
	}
	if f.Export.Dir != nil {
		cfg.ExportDir = ExpandHome(*f.Export.Dir)
	}
	if f.Export.Format != nil {
		cfg.ExportFormat = strings.ToLower(*f.Export.Format)
	}
	if f.Log.Level != nil {
		cfg.LogLevel = strings.ToLower(*f.Log.Level)
	}
	if f.Log.Path != nil {
		cfg.LogPath = ExpandHome(*f.Log.Path)
	}
	return nil
}

// Validate checks cfg against its field constraints and reports the
// first violation by field name.
func Validate(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("invalid config: %s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("invalid config: %s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "url":
		return fmt.Errorf("invalid config: %s must be a URL, got %v", fe.Field(), fe.Value())
	default:
		return fmt.Errorf("invalid config: %s must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
}
