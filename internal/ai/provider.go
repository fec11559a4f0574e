package ai

import (
	"context"
	"fmt"

	"tourplan/internal/config"
)

// Provider is a TextModel that owns client resources.
type Provider interface {
	TextModel
	Close() error
}

// NewProvider selects the backend named by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBase, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
