package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/overlook/internal/logging"
)

// Default values for Config.
const (
	DefaultIntervalMS   = 16
	DefaultPopoutTitle  = "Overlook Debugger"
	DefaultPopoutWidth  = 900
	DefaultPopoutHeight = 360
	DefaultMaxDepth     = 64
	DefaultDetailsID    = "debugger-details"
	DefaultOverlayID    = "debugger-overlay"
	DefaultLogLevel     = "warn"
	DefaultHistoryDir   = "."
)

// Dir is the directory, relative to the base path, holding the config file.
const Dir = ".overlook"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Frames: Frames{IntervalMS: DefaultIntervalMS},
		Popout: Popout{
			Title:  DefaultPopoutTitle,
			Width:  DefaultPopoutWidth,
			Height: DefaultPopoutHeight,
		},
		Inspect: Inspect{MaxDepth: DefaultMaxDepth},
		Gate: Gate{
			DetailsID: DefaultDetailsID,
			OverlayID: DefaultOverlayID,
		},
		Log:     Log{Level: DefaultLogLevel},
		History: History{Dir: DefaultHistoryDir},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Path returns the config file path under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, Dir, "config.yaml")
}

// LoadConfig reads and parses .overlook/config.yaml from the given base
// path. If the file doesn't exist, returns default config. Applies defaults
// for any missing fields.
func LoadConfig(basePath string) (*Config, error) {
	data, err := os.ReadFile(Path(basePath))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Frames.IntervalMS <= 0 {
		return ValidationError{Field: "frames.interval_ms", Message: "must be positive"}
	}
	if cfg.Popout.Width <= 0 {
		return ValidationError{Field: "popout.width", Message: "must be positive"}
	}
	if cfg.Popout.Height <= 0 {
		return ValidationError{Field: "popout.height", Message: "must be positive"}
	}
	if cfg.Inspect.MaxDepth <= 0 {
		return ValidationError{Field: "inspect.max_depth", Message: "must be positive"}
	}
	if cfg.Gate.DetailsID == "" {
		return ValidationError{Field: "gate.details_id", Message: "required field is empty"}
	}
	if cfg.Gate.OverlayID == "" {
		return ValidationError{Field: "gate.overlay_id", Message: "required field is empty"}
	}
	if cfg.Gate.DetailsID == cfg.Gate.OverlayID {
		return ValidationError{Field: "gate.details_id", Message: "must differ from gate.overlay_id"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
