// Package project loads the project configuration file that describes a mod:
// its name, prefix, version and build options. The file is TOML, by
// convention named hemtt.toml at the project root.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the conventional project file name.
const DefaultFileName = "hemtt.toml"

// Config is the parsed project file. Unknown keys are tolerated so newer
// tools can share a project file with older ones.
type Config struct {
	// Name of the project, shown in logs and reports.
	Name string `toml:"name"`

	// Prefix is the addon prefix, e.g. "abe". Required.
	Prefix string `toml:"prefix"`

	// MainPrefix is the leading path component of addon prefixes,
	// conventionally "z".
	MainPrefix string `toml:"mainprefix"`

	Version VersionConfig `toml:"version"`
	Build   BuildConfig   `toml:"build"`
}

// VersionConfig controls where the project version is read from.
type VersionConfig struct {
	// Path to the script_version file, relative to the project root.
	Path string `toml:"path"`

	// Git enables deriving the build hash from git.
	Git bool `toml:"git"`
}

// BuildConfig holds options for the build commands.
type BuildConfig struct {
	// Optimize enables compiling scripts to bytecode during builds.
	Optimize bool `toml:"optimize"`

	// Exclude lists glob patterns for files to skip.
	Exclude []string `toml:"exclude"`
}

// Load reads and validates a project file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	return LoadFromString(string(data))
}

// LoadFromString parses and validates project file contents.
func LoadFromString(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse project file: %w", err)
	}
	if cfg.Prefix == "" {
		return nil, errors.New("project file is missing a prefix")
	}
	if cfg.MainPrefix == "" {
		cfg.MainPrefix = "z"
	}
	return &cfg, nil
}

// Find walks up from dir looking for a project file, returning its path.
func Find(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found", DefaultFileName)
		}
		dir = parent
	}
}
