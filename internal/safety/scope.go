package safety

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode selects how far commands may reach into the filesystem.
type Mode string

const (
	// ModeWorkdir confines execution to the configured root via the
	// working directory; no per-token path check runs.
	ModeWorkdir Mode = "workdir"
	// ModeAllowlist rejects any path-like token outside the allowed
	// prefixes.
	ModeAllowlist Mode = "allowlist"
	// ModeFree executes from the home directory with no path check.
	// Highest-risk configuration; enabling it logs a warning at startup.
	ModeFree Mode = "free"
)

// Scope is the resolved access configuration one execution runs under.
type Scope struct {
	Mode         Mode
	AllowedPaths []string
	Workdir      string
	Home         string
}

// EffectiveRoot is the working directory commands execute from.
func (s Scope) EffectiveRoot() string {
	if s.Mode == ModeFree && s.Home != "" {
		return s.Home
	}
	return s.Workdir
}

// ExpandHome rewrites a leading ~ in each token to the home directory.
func (s Scope) ExpandHome(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = s.expandToken(tok)
	}
	return out
}

func (s Scope) expandToken(tok string) string {
	if s.Home == "" {
		return tok
	}
	if tok == "~" {
		return s.Home
	}
	if strings.HasPrefix(tok, "~/") {
		return filepath.Join(s.Home, tok[2:])
	}
	return tok
}

// CheckTokens enforces the allowlist: every path-like token (starting
// with / or ~) must resolve under one of the allowed prefixes. The other
// modes confine structurally through the working directory and pass.
func (s Scope) CheckTokens(tokens []string) error {
	if s.Mode != ModeAllowlist {
		return nil
	}
	for _, tok := range tokens {
		if !strings.HasPrefix(tok, "/") && !strings.HasPrefix(tok, "~") {
			continue
		}
		p := filepath.Clean(s.expandToken(tok))
		if !s.pathAllowed(p) {
			return fmt.Errorf("ruta fuera del ambito permitido: %s", p)
		}
	}
	return nil
}

func (s Scope) pathAllowed(p string) bool {
	for _, base := range s.AllowedPaths {
		base = filepath.Clean(base)
		if p == base || strings.HasPrefix(p, base+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
