package safety

import (
	"regexp"
	"strings"
)

// ReadOnlyClassifier decides whether a command may run without explicit
// user approval. Implementations trade convenience against strictness;
// the server picks one at startup.
type ReadOnlyClassifier interface {
	IsReadOnly(command string) bool
}

// mutatingPatterns mark a command as requiring approval. The deny-list
// classifier fails open: an unknown binary is treated as read-only so
// auto-execution stays useful on machines with uncommon tooling.
var mutatingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\brm\b`),
	regexp.MustCompile(`\bmv\b`),
	regexp.MustCompile(`\bcp\b`),
	regexp.MustCompile(`\bmkdir\b`),
	regexp.MustCompile(`\brmdir\b`),
	regexp.MustCompile(`\btouch\b`),
	regexp.MustCompile(`\btruncate\b`),
	regexp.MustCompile(`\bchmod\b`),
	regexp.MustCompile(`\bchown\b`),
	regexp.MustCompile(`\bchgrp\b`),
	regexp.MustCompile(`\bln\b`),
	regexp.MustCompile(`\bsed\s+-i\b`),
	regexp.MustCompile(`\bperl\s+-i\b`),
	regexp.MustCompile(`\bgit\s+(add|commit|push|pull|reset|checkout|merge|rebase|clean)\b`),
	regexp.MustCompile(`\bnpm\s+(install|uninstall|update)\b`),
	regexp.MustCompile(`\bpip\s+install\b`),
	regexp.MustCompile(`\bapt\b`),
	regexp.MustCompile(`\bdnf\b`),
	regexp.MustCompile(`\bpacman\b`),
	regexp.MustCompile(`\bbrew\b`),
	regexp.MustCompile(`\bsystemctl\b`),
	regexp.MustCompile(`\bservice\b`),
	regexp.MustCompile(`\bkill\b`),
}

// DenyListClassifier is the default: read-only unless a mutating pattern
// matches the lowercased command.
type DenyListClassifier struct{}

func (DenyListClassifier) IsReadOnly(command string) bool {
	normalized := strings.ToLower(command)
	for _, p := range mutatingPatterns {
		if p.MatchString(normalized) {
			return false
		}
	}
	return true
}

// readOnlyCommands is the closed set the allowlist classifier accepts.
var readOnlyCommands = []string{
	"ls", "dir", "tree", "find",
	"cat", "head", "tail", "less", "file", "stat",
	"wc", "grep", "sort", "uniq", "diff",
	"pwd", "whoami", "date", "uname", "which", "echo",
	"du", "df", "ps", "tasklist",
}

// AllowlistClassifier fails closed: only commands whose binary is in the
// read-only set auto-execute; everything else waits for approval.
type AllowlistClassifier struct{}

func (AllowlistClassifier) IsReadOnly(command string) bool {
	tokens := Tokenize(command)
	if len(tokens) == 0 {
		return false
	}
	bin := strings.ToLower(tokens[0])
	for _, allowed := range readOnlyCommands {
		if bin == allowed {
			return true
		}
	}
	return false
}
