package orchestrator

import (
	"fmt"
	"strings"

	"github.com/vocapp/vocapp/internal/providers"
)

const (
	historyWindow    = 14
	historyClampLen  = 1400
	evidenceWindow   = 6
	promptTrimMaxLen = 12000
)

// LastUserMessage returns the newest user message in the history,
// trimmed. Empty when there is none.
func LastUserMessage(history []providers.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == providers.RoleUser {
			return strings.TrimSpace(history[i].Content)
		}
	}
	return ""
}

// HasRecentExecutionEvidence reports whether any of the last few
// assistant turns carried command output. Grounding checks use this to
// decide whether the model may answer filesystem questions directly.
func HasRecentExecutionEvidence(history []providers.ChatMessage) bool {
	start := len(history) - evidenceWindow
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		if msg.Role != providers.RoleAssistant {
			continue
		}
		if strings.Contains(msg.Content, "STDOUT:") || strings.Contains(msg.Content, "Comando:") {
			return true
		}
	}
	return false
}

// CompactHistory trims the history for the model: only the last
// historyWindow messages survive, assistant messages carrying raw
// command output are elided to their command line, and every message is
// clamped to historyClampLen runes.
func CompactHistory(history []providers.ChatMessage) []providers.ChatMessage {
	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}

	var compact []providers.ChatMessage
	for _, msg := range history[start:] {
		switch msg.Role {
		case providers.RoleUser, providers.RoleAssistant, providers.RoleSystem:
		default:
			continue
		}
		content := msg.Content

		if msg.Role == providers.RoleAssistant &&
			(strings.Contains(content, "STDOUT:") || strings.Contains(content, "Detalles tecnicos")) {
			commandLine := "Comando ejecutado."
			for _, line := range strings.Split(content, "\n") {
				if strings.HasPrefix(line, "Comando:") {
					commandLine = line
					break
				}
			}
			content = commandLine + " [salida tecnica omitida para mantener velocidad]"
		}

		if runes := []rune(content); len(runes) > historyClampLen {
			content = string(runes[:historyClampLen]) + "\n...[recortado]"
		}
		compact = append(compact, providers.ChatMessage{Role: msg.Role, Content: content})
	}
	return compact
}

// trimForPrompt clamps command output embedded in prompts.
func trimForPrompt(text string) string {
	runes := []rune(text)
	if len(runes) <= promptTrimMaxLen {
		return text
	}
	return fmt.Sprintf("%s\n...[truncado %d caracteres]", string(runes[:promptTrimMaxLen]), len(runes)-promptTrimMaxLen)
}
