// Package prompts holds the versioned prompt texts sent to the model
// and the builder that assembles them from fragments and variables.
package prompts

// PromptVersion identifies a prompt revision.
type PromptVersion string

// PromptV1 is the current prompt revision.
const PromptV1 PromptVersion = "1.0.0"

// Prompt is a versioned prompt with metadata.
type Prompt struct {
	ID          string
	Version     PromptVersion
	Content     string
	Description string
}
