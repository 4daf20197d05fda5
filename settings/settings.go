// Package settings persists the editor preferences that survive restarts.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Keys in the settings file.
const (
	KeyZoom              = "zoom"
	KeySnapToGrid        = "snap_to_grid"
	KeyFastForward       = "fast_forward"
	KeyFitToScreenOnOpen = "fit_to_screen_on_open"
)

// EnvPrefix is prepended to upper-cased keys for environment overrides,
// e.g. NODEGRAPH_ZOOM=1.5.
const EnvPrefix = "NODEGRAPH"

// Settings are the typed editor preferences. One value is created at start-up
// and handed to the canvas, which reads and writes the fields directly.
type Settings struct {
	Zoom              float64 `mapstructure:"zoom"`
	SnapToGrid        bool    `mapstructure:"snap_to_grid"`
	FastForward       bool    `mapstructure:"fast_forward"`
	FitToScreenOnOpen bool    `mapstructure:"fit_to_screen_on_open"`

	v    *viper.Viper
	path string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyZoom, 1.0)
	v.SetDefault(KeySnapToGrid, true)
	v.SetDefault(KeyFastForward, false)
	v.SetDefault(KeyFitToScreenOnOpen, true)
}

// Defaults returns in-memory settings that are never written anywhere.
func Defaults() *Settings {
	return &Settings{
		Zoom:              1,
		SnapToGrid:        true,
		FitToScreenOnOpen: true,
	}
}

// DefaultPath is settings.yaml in the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "nodegraph", "settings.yaml")
}

// Load reads settings from path. A missing file is not an error: defaults
// are used and the file is created on the first Save.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	s := &Settings{v: v, path: path}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if !(s.Zoom > 0) || math.IsInf(s.Zoom, 1) {
		s.Zoom = 1
	}
	return s, nil
}

// Path returns the file the settings are saved to, or "" for in-memory
// settings.
func (s *Settings) Path() string {
	return s.path
}

// Save writes the current values back to the settings file. In-memory
// settings ignore Save.
func (s *Settings) Save() error {
	if s.v == nil || s.path == "" {
		return nil
	}
	s.v.Set(KeyZoom, s.Zoom)
	s.v.Set(KeySnapToGrid, s.SnapToGrid)
	s.v.Set(KeyFastForward, s.FastForward)
	s.v.Set(KeyFitToScreenOnOpen, s.FitToScreenOnOpen)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
