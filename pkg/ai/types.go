package ai

import "context"

// Generation is the text produced by a generation backend together with
// provenance about where it came from.
type Generation struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// TextGenerator describes a model capable of turning a prompt into prose.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (Generation, error)
}
