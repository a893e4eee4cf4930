package orchestrator

import (
	"strings"
	"testing"

	"github.com/vocapp/vocapp/internal/intent"
)

func TestGroundingCommand(t *testing.T) {
	if got := GroundingCommand(""); got != "ls -la" {
		t.Errorf("got %q", got)
	}
	if got := GroundingCommand("."); got != "ls -la" {
		t.Errorf("got %q", got)
	}
	if got := GroundingCommand("FutbolDB"); got != "ls -la 'FutbolDB'" {
		t.Errorf("got %q", got)
	}
	if got := GroundingCommand("mi carpeta"); got != "ls -la 'mi carpeta'" {
		t.Errorf("got %q", got)
	}
}

func TestListingSummary(t *testing.T) {
	got := ListingSummary(intent.ListingDirs, false, "FutbolDB", "equipos\njugadores\n", "")
	want := "Carpetas en FutbolDB (sin ocultos):\n- equipos\n- jugadores"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListingSummaryHidden(t *testing.T) {
	got := ListingSummary(intent.ListingEntries, true, ".", ".env\nnotas.txt\n", "")
	if !strings.Contains(got, "(incluyendo ocultos)") {
		t.Errorf("got %q", got)
	}
	if !strings.HasPrefix(got, "Elementos en .") {
		t.Errorf("got %q", got)
	}
}

func TestListingSummaryEmpty(t *testing.T) {
	got := ListingSummary(intent.ListingFiles, false, "Unity", "", "")
	want := "Archivos en Unity (sin ocultos): no se encontraron resultados."
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestListingSummaryMissingDir(t *testing.T) {
	got := ListingSummary(intent.ListingDirs, false, "Nada", "No existe directorio: Nada\n", "")
	if got != "No existe directorio: Nada" {
		t.Errorf("got %q", got)
	}
}

func TestListingSummaryStderr(t *testing.T) {
	got := ListingSummary(intent.ListingDirs, false, "X", "", "permiso denegado")
	if got != "No pude listar correctamente X. Error: permiso denegado" {
		t.Errorf("got %q", got)
	}
}

func TestDeterministicInspectionSummary(t *testing.T) {
	stdout := "INSPECCION: FutbolDB\nequipos/\njugadores/\nnotas.txt\n---DETALLE (max 200)---\nFutbolDB/equipos\n"
	got := DeterministicInspectionSummary("FutbolDB", stdout)
	if got != "La carpeta FutbolDB contiene 3 elementos de primer nivel." {
		t.Errorf("got %q", got)
	}
}

func TestDeterministicInspectionSummaryNoMarker(t *testing.T) {
	if got := DeterministicInspectionSummary("X", "salida cualquiera"); got != "" {
		t.Errorf("got %q", got)
	}
}
