package prompts

import (
	"strings"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewPromptRegistry()
	r.Register(&Prompt{ID: "greeting", Version: PromptV1, Content: "hola"})

	p, err := r.Get("greeting", PromptV1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Content != "hola" {
		t.Errorf("content = %q", p.Content)
	}

	if _, err := r.Get("missing", PromptV1); err == nil {
		t.Error("expected error for missing prompt")
	}
	if _, err := r.Get("greeting", "2.0.0"); err == nil {
		t.Error("expected error for missing version")
	}
}

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	r := DefaultRegistry()
	for _, id := range []string{"chat-system", "summarize-system"} {
		if _, err := r.Get(id, PromptV1); err != nil {
			t.Errorf("builtin %s: %v", id, err)
		}
	}
}

func TestBuilderSubstitution(t *testing.T) {
	r := NewPromptRegistry()
	r.Register(&Prompt{ID: "tmpl", Version: PromptV1, Content: "Directorio: {{workdir}}"})

	b, err := NewPromptBuilder(r, "tmpl", PromptV1)
	if err != nil {
		t.Fatal(err)
	}
	got := b.AddFragment("OS: {{os}}").
		SetVariable("workdir", "/home/ana").
		SetVariable("os", "linux").
		Build()
	want := "Directorio: /home/ana\nOS: linux"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestChatSystemLinux(t *testing.T) {
	got := ChatSystem(ChatContext{
		Workdir:       "/home/ana/Documentos",
		Desktop:       "/home/ana/Escritorio",
		OS:            "linux",
		AvailableDirs: []string{"FutbolDB", "Unity"},
		LastTarget:    "FutbolDB",
	})

	for _, want := range []string{
		`{"type":"command"`,
		"xdg-open AndroidDevelpment",
		"Carpetas disponibles: FutbolDB, Unity",
		"Último target usado: FutbolDB",
		"Última acción: ninguna",
		"Sistema operativo: linux",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(got, "explorer AndroidDevelpment") {
		t.Error("windows examples leaked into linux prompt")
	}
	if strings.Contains(got, "{{") {
		t.Error("unsubstituted variable in prompt")
	}
}

func TestChatSystemWindows(t *testing.T) {
	got := ChatSystem(ChatContext{Workdir: `C:\Users\ana`, OS: "windows"})
	if !strings.Contains(got, "explorer AndroidDevelpment") {
		t.Error("missing windows examples")
	}
	if !strings.Contains(got, "Carpetas disponibles: ninguna") {
		t.Error("missing empty-dirs placeholder")
	}
}

func TestChatSystemMemoryTrimmed(t *testing.T) {
	notes := []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7"}
	got := ChatSystem(ChatContext{OS: "linux", Memory: strings.Join(notes, "\n")})
	if strings.Contains(got, "n1\n") || strings.Contains(got, "n2\n") {
		t.Error("old notes should be trimmed")
	}
	for _, n := range notes[2:] {
		if !strings.Contains(got, n) {
			t.Errorf("missing note %q", n)
		}
	}
}

func TestSummarizeSystem(t *testing.T) {
	got := SummarizeSystem()
	if !strings.Contains(got, "SOLO usando la evidencia dada") {
		t.Errorf("unexpected summarize prompt: %q", got)
	}
}
