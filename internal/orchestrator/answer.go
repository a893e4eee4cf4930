package orchestrator

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ModelAnswer is the decoded envelope the model is instructed to emit.
type ModelAnswer struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Command string `json:"command,omitempty"`
}

const answerSchemaJSON = `{
	"type": "object",
	"properties": {
		"type": {"type": "string", "enum": ["reply", "command", "executed"]},
		"message": {"type": "string"},
		"command": {"type": "string"}
	},
	"required": ["message"]
}`

var answerSchema = gojsonschema.NewStringLoader(answerSchemaJSON)

// ParseAnswer decodes the raw model output into a ModelAnswer. Models
// wrap the JSON in code fences, prose, or an extra layer of string
// quoting; all of that is peeled off before giving up. A completely
// unparseable non-empty output becomes a plain reply with the raw text;
// an empty output becomes the canonical not-understood reply.
func ParseAnswer(raw string) ModelAnswer {
	content := strings.TrimSpace(raw)

	parsed := parseModelJSON(content)
	if s, ok := parsed.(string); ok {
		parsed = parseModelJSON(s)
	}

	if obj, ok := parsed.(map[string]any); ok {
		if answer, ok := answerFromObject(obj); ok {
			return answer
		}
	}

	if content != "" {
		return ModelAnswer{Type: "reply", Message: content}
	}
	return ModelAnswer{Type: "reply", Message: "No te entendi bien."}
}

// answerFromObject maps a decoded object onto the envelope, filling the
// gaps the model commonly leaves.
func answerFromObject(obj map[string]any) (ModelAnswer, bool) {
	if result, err := gojsonschema.Validate(answerSchema, gojsonschema.NewGoLoader(obj)); err != nil || !result.Valid() {
		return ModelAnswer{}, false
	}

	typ, _ := obj["type"].(string)
	message, _ := obj["message"].(string)
	command, _ := obj["command"].(string)

	switch {
	case typ != "" && message != "":
		return ModelAnswer{Type: typ, Message: message, Command: command}, true
	case message != "" && command != "":
		return ModelAnswer{Type: "command", Message: message, Command: command}, true
	case message != "":
		return ModelAnswer{Type: "reply", Message: message}, true
	case command != "":
		return ModelAnswer{Type: "command", Message: "Ejecutar comando propuesto.", Command: command}, true
	}
	return ModelAnswer{}, false
}

// parseModelJSON decodes raw JSON after stripping code fences; when the
// whole text fails, the outermost brace-delimited slice is retried.
func parseModelJSON(raw string) any {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err == nil {
		return value
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &value); err == nil {
			return value
		}
	}
	return nil
}
