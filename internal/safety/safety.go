// Package safety classifies commands before anything reaches the host:
// hard blocklist, read-only detection, shell-operator rejection, and the
// filesystem access scope.
package safety

import (
	"regexp"
	"strings"
	"unicode"
)

// blockedPatterns match commands that are never executed, regardless of
// approval. Matched against the raw command and against the re-joined
// token form, so quoting cannot hide them.
var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|\s)rm\s+-rf\s+/`),
	regexp.MustCompile(`(?i)(^|\s)mkfs(\.|\s)`),
	regexp.MustCompile(`(?i)(^|\s)dd\s+if=`),
	regexp.MustCompile(`(?i)(^|\s)shutdown(\s|$)`),
	regexp.MustCompile(`(?i)(^|\s)reboot(\s|$)`),
	regexp.MustCompile(`(?i)(^|\s)init\s+0`),
	regexp.MustCompile(`(?i)(^|\s)poweroff(\s|$)`),
	regexp.MustCompile(`:\(\)\s*\{\s*:\|:&\s*\};:`),
}

// IsBlocked reports whether the command matches the hard blocklist.
func IsBlocked(command string) bool {
	for _, p := range blockedPatterns {
		if p.MatchString(command) {
			return true
		}
	}
	return false
}

// shellOperators are rejected outright: commands run via execve, not a
// shell, so operators would reach the binary as literal arguments and
// surprise the user.
var shellOperators = []string{"|", ">", "&&", ";"}

// HasShellOperators reports whether the command contains shell syntax
// that simple execution cannot honor.
func HasShellOperators(command string) bool {
	for _, op := range shellOperators {
		if strings.Contains(command, op) {
			return true
		}
	}
	return false
}

// Tokenize splits a command into argv tokens, honoring single and double
// quotes. Returns nil for an empty command or an unterminated quote.
func Tokenize(command string) []string {
	var tokens []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, ch := range command {
		switch {
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case unicode.IsSpace(ch) && !inSingle && !inDouble:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	if inSingle || inDouble {
		return nil
	}
	return tokens
}
