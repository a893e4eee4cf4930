package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "AGENT_PROVIDER", "OLLAMA_HOST", "OLLAMA_MODEL",
		"EXEC_TIMEOUT_MS", "STRICT_GROUNDED_FS", "AUTO_EXEC_READONLY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env := LoadEnv()
	if env.Port != 3187 {
		t.Errorf("Port = %d", env.Port)
	}
	if env.Provider != "ollama" {
		t.Errorf("Provider = %s", env.Provider)
	}
	if env.OllamaHost != "http://127.0.0.1:11434" {
		t.Errorf("OllamaHost = %s", env.OllamaHost)
	}
	if env.OllamaModel != "gpt-oss:20b" {
		t.Errorf("OllamaModel = %s", env.OllamaModel)
	}
	if env.ExecTimeout != 2*time.Minute {
		t.Errorf("ExecTimeout = %s", env.ExecTimeout)
	}
	if !env.StrictGroundedFS || !env.AutoExecReadOnly || !env.AutoSummarizeReads {
		t.Error("flags should default on")
	}
	if env.Workdir == "" {
		t.Error("Workdir should never be empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("EXEC_TIMEOUT_MS", "5000")
	t.Setenv("AGENT_WORKDIR", "/tmp/agente")
	t.Setenv("STRICT_GROUNDED_FS", "false")
	t.Setenv("AUTO_EXEC_READONLY", "true")

	env := LoadEnv()
	if env.Port != 9000 {
		t.Errorf("Port = %d", env.Port)
	}
	if env.ExecTimeout != 5*time.Second {
		t.Errorf("ExecTimeout = %s", env.ExecTimeout)
	}
	if env.Workdir != "/tmp/agente" {
		t.Errorf("Workdir = %s", env.Workdir)
	}
	if env.StrictGroundedFS {
		t.Error("STRICT_GROUNDED_FS=false should disable the flag")
	}
	if !env.AutoExecReadOnly {
		t.Error("AUTO_EXEC_READONLY=true should keep the flag on")
	}
}

func TestLoadEnvBadNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	env := LoadEnv()
	if env.Port != 3187 {
		t.Errorf("Port = %d", env.Port)
	}
}

func TestAccessManagerDefaultsWhenMissing(t *testing.T) {
	m := NewAccessManagerAt(t.TempDir())
	cfg := m.Load()
	if cfg.Mode != "workdir" {
		t.Errorf("Mode = %s", cfg.Mode)
	}
}

func TestAccessManagerSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	m := NewAccessManagerAt(dir)

	saved, err := m.Save(AccessConfig{Mode: "allowlist", AllowedPaths: []string{"/srv/data"}})
	if err != nil {
		t.Fatal(err)
	}
	if saved.Mode != "allowlist" {
		t.Errorf("Mode = %s", saved.Mode)
	}

	got := NewAccessManagerAt(dir).Load()
	if got.Mode != "allowlist" {
		t.Errorf("reloaded Mode = %s", got.Mode)
	}
	if len(got.AllowedPaths) != 1 || got.AllowedPaths[0] != "/srv/data" {
		t.Errorf("reloaded AllowedPaths = %v", got.AllowedPaths)
	}

	info, err := os.Stat(m.Path())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %v", info.Mode().Perm())
	}
}

func TestAccessManagerPartialUpdate(t *testing.T) {
	dir := t.TempDir()
	m := NewAccessManagerAt(dir)

	if _, err := m.Save(AccessConfig{Mode: "free"}); err != nil {
		t.Fatal(err)
	}
	got, err := m.Save(AccessConfig{AllowedPaths: []string{"/opt"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Mode != "free" {
		t.Errorf("Mode = %s, partial update should keep it", got.Mode)
	}
}

func TestAccessManagerRejectsInvalidMode(t *testing.T) {
	m := NewAccessManagerAt(t.TempDir())
	if _, err := m.Save(AccessConfig{Mode: "yolo"}); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestAccessManagerCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	m := NewAccessManagerAt(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "access.json"), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := m.Load(); got.Mode != "workdir" {
		t.Errorf("Mode = %s", got.Mode)
	}
}
