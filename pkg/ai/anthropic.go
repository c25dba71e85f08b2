package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicGenerator is a stub implementation that can be expanded once the SDK is available.
type AnthropicGenerator struct{}

// NewAnthropicGenerator constructs a new stub generator.
func NewAnthropicGenerator(cfg AnthropicConfig) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicGenerator{}, nil
}

// GenerateText is not yet implemented for Anthropic models.
func (a *AnthropicGenerator) GenerateText(ctx context.Context, prompt string) (Generation, error) {
	return Generation{}, fmt.Errorf("anthropic generator not implemented")
}
