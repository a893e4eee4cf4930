// Package config centralizes environment settings and the persisted
// filesystem access scope.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Env holds the runtime settings read from the environment.
type Env struct {
	Port        int
	Provider    string // ollama, openai, anthropic
	Model       string
	APIKey      string
	BaseURL     string
	OllamaHost  string
	OllamaModel string
	ExecTimeout time.Duration
	Workdir     string
	DesktopDir  string

	StrictGroundedFS   bool
	AutoExecReadOnly   bool
	AutoSummarizeReads bool
}

// LoadEnv reads settings from the environment, filling defaults. The
// working directory defaults to the user's Documents folder when it
// exists, otherwise the home directory.
func LoadEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{
		Port:        envInt("PORT", 3187),
		Provider:    getenv("AGENT_PROVIDER", "ollama"),
		Model:       os.Getenv("AGENT_MODEL"),
		APIKey:      os.Getenv("AGENT_API_KEY"),
		BaseURL:     os.Getenv("AGENT_BASE_URL"),
		OllamaHost:  getenv("OLLAMA_HOST", "http://127.0.0.1:11434"),
		OllamaModel: getenv("OLLAMA_MODEL", "gpt-oss:20b"),
		ExecTimeout: time.Duration(envInt("EXEC_TIMEOUT_MS", 120000)) * time.Millisecond,
		Workdir:     getenv("AGENT_WORKDIR", defaultWorkdir(home)),
		DesktopDir:  defaultDesktop(home),

		StrictGroundedFS:   envFlag("STRICT_GROUNDED_FS"),
		AutoExecReadOnly:   envFlag("AUTO_EXEC_READONLY"),
		AutoSummarizeReads: envFlag("AUTO_SUMMARIZE_READS"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// envFlag is on unless the variable is explicitly "false".
func envFlag(key string) bool {
	return os.Getenv(key) != "false"
}

func defaultWorkdir(home string) string {
	candidates := []string{
		filepath.Join(home, "Documentos"),
		filepath.Join(home, "Documents"),
	}
	if runtime.GOOS == "windows" {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, p := range candidates {
		if dirExists(p) {
			return p
		}
	}
	return home
}

func defaultDesktop(home string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "Desktop")
	}
	for _, p := range []string{
		filepath.Join(home, "Escritorio"),
		filepath.Join(home, "Desktop"),
	} {
		if dirExists(p) {
			return p
		}
	}
	return filepath.Join(home, "Desktop")
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
