package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaChatStreams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s", r.URL.Path)
		}
		chunks := []string{
			`{"message":{"content":"Hola"},"done":false}`,
			`not json at all`,
			`{"message":{"content":" mundo"},"done":false}`,
			`{"message":{"content":""},"done":true}`,
		}
		for _, c := range chunks {
			w.Write([]byte(c + "\n"))
		}
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "test-model")
	var deltas []string
	got, err := c.Chat(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hola"}}, Options{Temperature: 0.2}, func(d string) {
		deltas = append(deltas, d)
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hola mundo" {
		t.Errorf("content = %q", got)
	}
	if len(deltas) != 2 {
		t.Errorf("deltas = %v", deltas)
	}
}

func TestOllamaChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "missing")
	_, err := c.Chat(context.Background(), nil, Options{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v", err)
	}
}

func TestFactory(t *testing.T) {
	c, err := New(Config{Provider: "", OllamaHost: "http://127.0.0.1:11434", Model: "m"})
	if err != nil || c.Name() != "ollama" {
		t.Errorf("default provider = %v, %v", c, err)
	}

	if _, err := New(Config{Provider: "openai"}); err == nil {
		t.Error("openai without key should fail")
	}
	if _, err := New(Config{Provider: "anthropic"}); err == nil {
		t.Error("anthropic without key should fail")
	}
	if _, err := New(Config{Provider: "cohere"}); err == nil {
		t.Error("unknown provider should fail")
	}

	c, err = New(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil || c.Name() != "openai" {
		t.Errorf("openai = %v, %v", c, err)
	}
	c, err = New(Config{Provider: "anthropic", APIKey: "sk-test"})
	if err != nil || c.Name() != "anthropic" {
		t.Errorf("anthropic = %v, %v", c, err)
	}
}
