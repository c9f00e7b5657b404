// Package config reads the optional YAML settings file. Command-line flags and
// environment variables take precedence over anything set here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File mirrors config.yaml.
type File struct {
	// Store is the database path; a .json suffix selects the JSON store.
	Store         string `yaml:"store,omitempty"`
	Timezone      string `yaml:"timezone,omitempty"`
	Debug         bool   `yaml:"debug,omitempty"`
	LogDir        string `yaml:"log_dir,omitempty"`
	BackupOnStart bool   `yaml:"backup_on_start,omitempty"`
}

// Load parses the file at path. A missing file is not an error and yields a zero File.
func Load(path string) (File, error) {
	var cfg File
	data, err := os.ReadFile(ExpandPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Store = ExpandPath(cfg.Store)
	cfg.LogDir = ExpandPath(cfg.LogDir)
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg File) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Merge overlays the non-zero fields of override onto base.
func Merge(base, override File) File {
	if override.Store != "" {
		base.Store = override.Store
	}
	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}
	if override.LogDir != "" {
		base.LogDir = override.LogDir
	}
	base.Debug = base.Debug || override.Debug
	base.BackupOnStart = base.BackupOnStart || override.BackupOnStart
	return base
}
