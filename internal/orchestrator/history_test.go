package orchestrator

import (
	"strings"
	"testing"

	"github.com/vocapp/vocapp/internal/providers"
)

func TestLastUserMessage(t *testing.T) {
	history := []providers.ChatMessage{
		{Role: providers.RoleUser, Content: "primera"},
		{Role: providers.RoleAssistant, Content: "respuesta"},
		{Role: providers.RoleUser, Content: "  segunda  "},
	}
	if got := LastUserMessage(history); got != "segunda" {
		t.Errorf("got %q", got)
	}
	if got := LastUserMessage(nil); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestHasRecentExecutionEvidence(t *testing.T) {
	history := []providers.ChatMessage{
		{Role: providers.RoleAssistant, Content: "Comando: ls\nSTDOUT:\nhola"},
	}
	if !HasRecentExecutionEvidence(history) {
		t.Error("expected evidence")
	}

	// Evidence outside the window does not count.
	var old []providers.ChatMessage
	old = append(old, providers.ChatMessage{Role: providers.RoleAssistant, Content: "STDOUT:\nviejo"})
	for i := 0; i < 6; i++ {
		old = append(old, providers.ChatMessage{Role: providers.RoleUser, Content: "hola"})
	}
	if HasRecentExecutionEvidence(old) {
		t.Error("stale evidence should not count")
	}
}

func TestCompactHistoryElidesOutput(t *testing.T) {
	history := []providers.ChatMessage{
		{Role: providers.RoleAssistant, Content: "Comando: ls -la\nSTDOUT:\nmuchas lineas de salida"},
	}
	got := CompactHistory(history)
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	want := "Comando: ls -la [salida tecnica omitida para mantener velocidad]"
	if got[0].Content != want {
		t.Errorf("got %q", got[0].Content)
	}
}

func TestCompactHistoryWindow(t *testing.T) {
	var history []providers.ChatMessage
	for i := 0; i < 30; i++ {
		history = append(history, providers.ChatMessage{Role: providers.RoleUser, Content: "m"})
	}
	if got := CompactHistory(history); len(got) != 14 {
		t.Errorf("len = %d", len(got))
	}
}

func TestCompactHistoryClampsLongMessages(t *testing.T) {
	history := []providers.ChatMessage{
		{Role: providers.RoleUser, Content: strings.Repeat("a", 2000)},
	}
	got := CompactHistory(history)
	if !strings.HasSuffix(got[0].Content, "...[recortado]") {
		t.Errorf("missing clamp marker: %q", got[0].Content[len(got[0].Content)-30:])
	}
}

func TestCompactHistoryDropsUnknownRoles(t *testing.T) {
	history := []providers.ChatMessage{
		{Role: "tool", Content: "x"},
		{Role: providers.RoleUser, Content: "hola"},
	}
	if got := CompactHistory(history); len(got) != 1 {
		t.Errorf("len = %d", len(got))
	}
}

func TestTrimForPrompt(t *testing.T) {
	short := "salida corta"
	if got := trimForPrompt(short); got != short {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", 13000)
	got := trimForPrompt(long)
	if !strings.Contains(got, "...[truncado 1000 caracteres]") {
		t.Errorf("missing truncation marker")
	}
}
