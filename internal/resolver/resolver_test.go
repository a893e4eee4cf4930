package resolver

import (
	"reflect"
	"testing"
)

type fakeWorkdir struct {
	entries []string
	dirs    []string
}

func (f *fakeWorkdir) Entries() []string     { return f.entries }
func (f *fakeWorkdir) Directories() []string { return f.dirs }
func (f *fakeWorkdir) Exists(name string) bool {
	for _, e := range f.entries {
		if e == name {
			return true
		}
	}
	return false
}

func testWorkdir() *fakeWorkdir {
	return &fakeWorkdir{
		entries: []string{"FutbolDB", "AndroidDevelpment", "Unity", "notes.txt"},
		dirs:    []string{"FutbolDB", "AndroidDevelpment", "Unity"},
	}
}

func TestExtractCandidate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"la carpeta se llama FutbolDB", "FutbolDB"},
		{`abre "mi proyecto"`, "mi proyecto"},
		{"deletrear v o c app", "vocapp"},
		{"resumen de la carpeta Unity", "Unity"},
		{"abre src/main", "src/main"},
		{"hola", ""},
		{"es la carpeta", ""},
	}
	for _, c := range cases {
		if got := ExtractCandidate(c.in); got != c.want {
			t.Errorf("ExtractCandidate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveInWorkdir(t *testing.T) {
	wd := testWorkdir()

	if got := ResolveInWorkdir(wd, "FutbolDB", "abre FutbolDB"); got != "FutbolDB" {
		t.Errorf("verbatim entry: got %q", got)
	}
	if got := ResolveInWorkdir(wd, "FutbolDB/", "abre FutbolDB/"); got != "FutbolDB" {
		t.Errorf("trailing slash: got %q", got)
	}
	if got := ResolveInWorkdir(wd, "futbol db", "resumen de futbol db"); got != "FutbolDB" {
		t.Errorf("fuzzy: got %q", got)
	}
	if got := ResolveInWorkdir(wd, "xyzw", "xyzw"); got != "" {
		t.Errorf("no plausible match: got %q, want empty", got)
	}
}

func TestResolveInWorkdirEmptyListing(t *testing.T) {
	wd := &fakeWorkdir{}
	if got := ResolveInWorkdir(wd, "FutbolDB", "abre FutbolDB"); got != "FutbolDB" {
		t.Errorf("unlistable workdir should pass the candidate through, got %q", got)
	}
}

func TestChooseClosest(t *testing.T) {
	candidates := []string{"AndroidDevelpment", "Unity", "FutbolDB"}

	if got := ChooseClosest("android", candidates); got != "AndroidDevelpment" {
		t.Errorf("containment match: got %q", got)
	}
	if got := ChooseClosest("la carpeta futboldv", candidates); got != "FutbolDB" {
		t.Errorf("phonetic match: got %q", got)
	}
	if got := ChooseClosest("hola que tal", candidates); got != "" {
		t.Errorf("no match expected, got %q", got)
	}
}

func TestResolveFromContext(t *testing.T) {
	wd := testWorkdir()

	got := ResolveFromContext(wd, Context{
		Text:       "abre esa carpeta",
		LastTarget: "FutbolDB",
	}, true)
	if got != "FutbolDB" {
		t.Errorf("anaphora should win: got %q", got)
	}

	got = ResolveFromContext(wd, Context{
		Text:      "abre Unity",
		Candidate: "Unity",
	}, false)
	if got != "Unity" {
		t.Errorf("direct verified: got %q", got)
	}

	empty := &fakeWorkdir{entries: []string{"notes.txt"}}
	got = ResolveFromContext(empty, Context{
		Text:        "la de android",
		Candidate:   "android",
		LastListing: []string{"AndroidDevelpment", "Unity"},
	}, false)
	if got != "AndroidDevelpment" {
		t.Errorf("last-listing fallback: got %q", got)
	}
}

func TestSuggestTargets(t *testing.T) {
	wd := &fakeWorkdir{dirs: []string{"AndroidDevelpment", "Unity", "FutbolDB", "Misc"}}

	got := SuggestTargets(wd, "la carpeta futbol", nil)
	if len(got) != 3 {
		t.Fatalf("want 3 suggestions, got %v", got)
	}
	if got[0] != "FutbolDB" {
		t.Errorf("best suggestion = %q, want FutbolDB", got[0])
	}
}

func TestOrdinalIndex(t *testing.T) {
	cases := []struct {
		in     string
		length int
		want   int
		ok     bool
	}{
		{"la segunda de la lista", 3, 1, true},
		{"la primera", 3, 0, true},
		{"3", 3, 2, true},
		{"la ultima", 4, 3, true},
		{"la segunda", 1, 0, true}, // clamps to last entry
		{"la 5 de la lista", 3, 0, false},
		{"dame un resumen", 3, 0, false},
		{"la primera", 0, 0, false},
	}
	for _, c := range cases {
		got, ok := OrdinalIndex(c.in, c.length)
		if got != c.want || ok != c.ok {
			t.Errorf("OrdinalIndex(%q, %d) = (%d, %v), want (%d, %v)", c.in, c.length, got, ok, c.want, c.ok)
		}
	}
}

func TestIsOrdinalSelection(t *testing.T) {
	if !IsOrdinalSelection("la segunda") {
		t.Error("expected ordinal selection for 'la segunda'")
	}
	if !IsOrdinalSelection("2") {
		t.Error("expected ordinal selection for bare digit")
	}
	if IsOrdinalSelection("dame un resumen") {
		t.Error("did not expect ordinal selection")
	}
}

func TestSuggestionOrdinalIndex(t *testing.T) {
	if got, ok := SuggestionOrdinalIndex("opcion 2", 3); !ok || got != 1 {
		t.Errorf("opcion 2 = (%d, %v), want (1, true)", got, ok)
	}
	if got, ok := SuggestionOrdinalIndex("la primera de esas", 3); !ok || got != 0 {
		t.Errorf("la primera de esas = (%d, %v), want (0, true)", got, ok)
	}
	if _, ok := SuggestionOrdinalIndex("2", 3); ok {
		t.Error("bare digit without option phrasing should not select a suggestion")
	}
}

func TestFillSlots(t *testing.T) {
	text, subs := FillSlots("abre esa carpeta", "FutbolDB", "", nil)
	if text != "abre esa carpeta (target: FutbolDB)" {
		t.Errorf("target annotation: got %q", text)
	}
	if !reflect.DeepEqual(subs, []string{"target -> FutbolDB"}) {
		t.Errorf("subs = %v", subs)
	}

	text, subs = FillSlots("abre esa, la de FutbolDB", "Unity", "", []string{"FutbolDB"})
	if text != "abre esa, la de FutbolDB" || len(subs) != 0 {
		t.Errorf("explicit target should suppress substitution: got %q, subs %v", text, subs)
	}

	text, _ = FillSlots("hazlo de nuevo", "", "ls -la", nil)
	if text != "hazlo de nuevo (repetir comando: ls -la)" {
		t.Errorf("command annotation: got %q", text)
	}
}
