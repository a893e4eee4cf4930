package orchestrator

import "testing"

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ModelAnswer
	}{
		{
			name: "plain reply",
			raw:  `{"type":"reply","message":"Hola"}`,
			want: ModelAnswer{Type: "reply", Message: "Hola"},
		},
		{
			name: "plain command",
			raw:  `{"type":"command","message":"Listando.","command":"ls -la"}`,
			want: ModelAnswer{Type: "command", Message: "Listando.", Command: "ls -la"},
		},
		{
			name: "code fenced",
			raw:  "```json\n{\"type\":\"reply\",\"message\":\"Hola\"}\n```",
			want: ModelAnswer{Type: "reply", Message: "Hola"},
		},
		{
			name: "prose around json",
			raw:  `Claro, aquí tienes: {"type":"reply","message":"Hola"} espero que sirva`,
			want: ModelAnswer{Type: "reply", Message: "Hola"},
		},
		{
			name: "string wrapped json",
			raw:  `"{\"type\":\"reply\",\"message\":\"Hola\"}"`,
			want: ModelAnswer{Type: "reply", Message: "Hola"},
		},
		{
			name: "missing type with command",
			raw:  `{"message":"Listando.","command":"ls"}`,
			want: ModelAnswer{Type: "command", Message: "Listando.", Command: "ls"},
		},
		{
			name: "message only",
			raw:  `{"message":"Hola"}`,
			want: ModelAnswer{Type: "reply", Message: "Hola"},
		},
		{
			name: "raw prose falls back to reply",
			raw:  "Hola, ¿en qué te ayudo?",
			want: ModelAnswer{Type: "reply", Message: "Hola, ¿en qué te ayudo?"},
		},
		{
			name: "empty output",
			raw:  "",
			want: ModelAnswer{Type: "reply", Message: "No te entendi bien."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseAnswer(tc.raw); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseAnswerRejectsWrongTypes(t *testing.T) {
	// A numeric message fails schema validation, so the raw text is
	// returned as a reply instead of a half-decoded envelope.
	raw := `{"type":"reply","message":42}`
	got := ParseAnswer(raw)
	if got.Type != "reply" || got.Message != raw {
		t.Errorf("got %+v", got)
	}
}
