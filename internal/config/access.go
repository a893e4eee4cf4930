package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AccessConfig is the persisted filesystem access scope: where the
// agent may run commands.
type AccessConfig struct {
	Mode         string   `json:"mode"` // workdir, allowlist, free
	AllowedPaths []string `json:"allowedPaths"`
}

// ValidModes lists the accepted access modes.
var ValidModes = []string{"workdir", "allowlist", "free"}

// ValidMode reports whether mode is one of the accepted access modes.
func ValidMode(mode string) bool {
	for _, m := range ValidModes {
		if mode == m {
			return true
		}
	}
	return false
}

// AccessManager loads and saves the access configuration.
type AccessManager struct {
	configDir string
}

// NewAccessManager creates a manager storing under the user config dir.
func NewAccessManager() (*AccessManager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}
	return &AccessManager{configDir: filepath.Join(configDir, "vocapp")}, nil
}

// NewAccessManagerAt creates a manager storing under dir.
func NewAccessManagerAt(dir string) *AccessManager {
	return &AccessManager{configDir: dir}
}

// Path returns the absolute path to the access config file.
func (m *AccessManager) Path() string {
	return filepath.Join(m.configDir, "access.json")
}

// Defaults returns the built-in scope: workdir mode, with the home
// directory and its common folders allowed for allowlist mode.
func (m *AccessManager) Defaults() AccessConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		return AccessConfig{Mode: "workdir"}
	}
	paths := []string{home}
	for _, name := range []string{"Desktop", "Escritorio", "Documents", "Documentos"} {
		p := filepath.Join(home, name)
		if dirExists(p) {
			paths = append(paths, p)
		}
	}
	return AccessConfig{Mode: "workdir", AllowedPaths: paths}
}

// Load reads the access config, falling back to defaults when the file
// is missing or unreadable.
func (m *AccessManager) Load() AccessConfig {
	defaults := m.Defaults()

	data, err := os.ReadFile(m.Path())
	if err != nil {
		return defaults
	}

	var stored AccessConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return defaults
	}
	if ValidMode(stored.Mode) {
		defaults.Mode = stored.Mode
	}
	if len(stored.AllowedPaths) > 0 {
		defaults.AllowedPaths = stored.AllowedPaths
	}
	return defaults
}

// Save merges updates over the current config and persists it with
// owner-only permissions.
func (m *AccessManager) Save(updates AccessConfig) (AccessConfig, error) {
	next := m.Load()
	if updates.Mode != "" {
		if !ValidMode(updates.Mode) {
			return next, fmt.Errorf("invalid access mode: %s", updates.Mode)
		}
		next.Mode = updates.Mode
	}
	if updates.AllowedPaths != nil {
		next.AllowedPaths = updates.AllowedPaths
	}

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return next, fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return next, fmt.Errorf("failed to marshal access config: %w", err)
	}
	if err := os.WriteFile(m.Path(), data, 0600); err != nil {
		return next, fmt.Errorf("failed to write access config: %w", err)
	}
	return next, nil
}
