package orchestrator

import (
	"fmt"
	"strings"

	"github.com/vocapp/vocapp/internal/intent"
)

// quoteForShell single-quotes a value so the tokenizer treats it as one
// argument even when it contains spaces.
func quoteForShell(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

// GroundingCommand builds the read-only command proposed when the model
// tries to answer a filesystem question without evidence.
func GroundingCommand(target string) string {
	if target != "" && target != "." {
		return "ls -la " + quoteForShell(target)
	}
	return "ls -la"
}

// ListingSummary renders a listing result as the text shown (and spoken)
// to the user.
func ListingSummary(kind intent.ListingKind, includeHidden bool, target, stdout, stderr string) string {
	displayTarget := target
	if displayTarget == "" {
		displayTarget = "."
	}
	if errText := strings.TrimSpace(stderr); errText != "" {
		return fmt.Sprintf("No pude listar correctamente %s. Error: %s", displayTarget, errText)
	}

	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > 0 && strings.HasPrefix(lines[0], "No existe directorio:") {
		return lines[0]
	}

	var label string
	switch kind {
	case intent.ListingDirs:
		label = "Carpetas"
	case intent.ListingFiles:
		label = "Archivos"
	default:
		label = "Elementos"
	}
	hiddenLabel := "sin ocultos"
	if includeHidden {
		hiddenLabel = "incluyendo ocultos"
	}

	if len(lines) == 0 {
		return fmt.Sprintf("%s en %s (%s): no se encontraron resultados.", label, displayTarget, hiddenLabel)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s en %s (%s):", label, displayTarget, hiddenLabel)
	for _, name := range lines {
		b.WriteString("\n- ")
		b.WriteString(name)
	}
	return b.String()
}

// DeterministicInspectionSummary counts the top-level entries of an
// inspection output. Used when the model summary contradicts the
// evidence it was given.
func DeterministicInspectionSummary(target, stdout string) string {
	marker := "INSPECCION: " + target
	if !strings.Contains(stdout, marker) {
		return ""
	}

	lines := strings.Split(stdout, "\n")
	count := 0
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "---DETALLE") {
			break
		}
		if trimmed != "" {
			count++
		}
	}
	return fmt.Sprintf("La carpeta %s contiene %d elementos de primer nivel.", target, count)
}
