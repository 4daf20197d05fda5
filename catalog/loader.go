package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for declaration files that are neither
// YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported catalog file format")

// File is the on-disk shape of a declaration file:
//
//	[[node]]
//	kind = "shader"
//	type = "math.add"
//	path = "Math/Add"
type File struct {
	Nodes []Declaration `yaml:"nodes" toml:"node"`
}

// LoadFile reads declarations from a .yaml/.yml or .toml file.
func LoadFile(path string) ([]Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	for i, d := range f.Nodes {
		if d.Type == "" {
			return nil, fmt.Errorf("%s: declaration %d has no type", path, i+1)
		}
	}
	return f.Nodes, nil
}
