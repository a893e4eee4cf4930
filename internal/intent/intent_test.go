package intent

import "testing"

func TestIsFilesystem(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"lista las carpetas", true},
		{"mueve recetas-mama a archivo/", true},
		{"qué hay en FutbolDB", true},
		{"abre ~/Documentos/notas.txt", true},
		{"hola qué tal", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsFilesystem(c.in); got != c.want {
			t.Errorf("IsFilesystem(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestListing(t *testing.T) {
	cases := []struct {
		in   string
		want ListingKind
	}{
		{"lista las carpetas", ListingDirs},
		{"lista los archivos", ListingFiles},
		{"lista los archivos y carpetas", ListingEntries},
		{"qué hay en el directorio actual", ListingDirs},
		{"que hay ahi", ListingEntries},
		{"buenos días", ListingNone},
		// Summary wins over listing even with folder vocabulary present.
		{"resumen de la carpeta FutbolDB", ListingNone},
	}
	for _, c := range cases {
		if got := Listing(c.in); got != c.want {
			t.Errorf("Listing(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsSummary(t *testing.T) {
	if !IsSummary("resúmeme el proyecto") {
		t.Error("expected summary intent for 'resúmeme el proyecto'")
	}
	if !IsSummary("¿qué es FutbolDB?") {
		t.Error("expected summary intent for 'qué es'")
	}
	if IsSummary("hola qué tal") {
		t.Error("did not expect summary intent for greeting")
	}
}

func TestWantsLongSummary(t *testing.T) {
	if !WantsLongSummary("dame un resumen muy detallado") {
		t.Error("expected long-summary modifier")
	}
	if WantsLongSummary("dame un resumen") {
		t.Error("did not expect long-summary modifier")
	}
}

func TestWantsHidden(t *testing.T) {
	if !WantsHidden("lista también los ocultos") {
		t.Error("expected hidden modifier for 'ocultos'")
	}
	if !WantsHidden("include hidden files") {
		t.Error("expected hidden modifier for 'hidden'")
	}
	if WantsHidden("lista las carpetas") {
		t.Error("did not expect hidden modifier")
	}
}

func TestIsTargetDeclaration(t *testing.T) {
	if !IsTargetDeclaration("la carpeta se llama FutbolDB") {
		t.Error("expected declaration intent")
	}
	if IsTargetDeclaration("se llama Pedro") {
		t.Error("declaration requires folder vocabulary")
	}
}

func TestIsCorrection(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"no era esa carpeta sino Documents", true},
		{"me refiero a FutbolDB", true},
		{"es FutbolDB", true},
		{"corrijo, Unity", true},
		{"continúa", false},
	}
	for _, c := range cases {
		if got := IsCorrection(c.in); got != c.want {
			t.Errorf("IsCorrection(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestReferencesPrevious(t *testing.T) {
	if !ReferencesPrevious("abre esa carpeta") {
		t.Error("expected anaphora for 'esa carpeta'")
	}
	if !ReferencesPrevious("qué hay ahí") {
		t.Error("expected anaphora for 'ahí'")
	}
	if ReferencesPrevious("abre FutbolDB") {
		t.Error("did not expect anaphora")
	}
}
