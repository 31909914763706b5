// Package config provides the settings loader for rez.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileLoader loads Settings from a yaml file with environment overrides.
type FileLoader struct {
	// Path of the settings file; empty uses $REZ_CONFIG_FILE, falling back
	// to ~/.rezconfig.yaml.
	Path string
}

// Load reads the settings file, applies defaults for absent fields and
// environment-variable overrides on top. A missing file yields defaults.
func (l *FileLoader) Load() (*Settings, error) {
	path := l.Path
	if path == "" {
		path = os.Getenv("REZ_CONFIG_FILE")
	}
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".rezconfig.yaml")
		}
	}

	s := &Settings{}
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, zerr.Wrap(err, "failed to read settings file")
		default:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, zerr.Wrap(err, "failed to parse settings file")
			}
		}
	}

	applyDefaults(s)
	applyEnvOverrides(s)
	return s, nil
}

func applyDefaults(s *Settings) {
	home, _ := os.UserHomeDir()
	if len(s.PackagesPath) == 0 && home != "" {
		s.PackagesPath = []string{filepath.Join(home, "packages")}
	}
	if s.LocalPackagesPath == "" && home != "" {
		s.LocalPackagesPath = filepath.Join(home, "packages")
	}
	if s.CacheDir == "" && home != "" {
		s.CacheDir = filepath.Join(home, ".rez", "cache")
	}
}

func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("REZ_PACKAGES_PATH"); v != "" {
		s.PackagesPath = filepath.SplitList(v)
	}
	if v := os.Getenv("REZ_LOCAL_PACKAGES_PATH"); v != "" {
		s.LocalPackagesPath = v
	}
	if v := os.Getenv("REZ_IMPLICIT_PACKAGES"); v != "" {
		s.ImplicitPackages = strings.Fields(v)
	}
}
