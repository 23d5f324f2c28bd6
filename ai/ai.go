// Package ai holds the language-model clients used to answer free-form
// financial questions.
package ai

import (
	"context"
	"fmt"

	"assistente-financeiro/config"
)

// TextCompletion turns a prompt into generated text.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New builds the client for the configured provider. The returned closer
// releases provider resources and may be a no-op.
func New(ctx context.Context, cfg config.AIConfig) (TextCompletion, func() error, error) {
	switch cfg.Provider {
	case "gemini":
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	case "openai":
		o := NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.OpenAIModel, cfg.Timeout)
		return o, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("provedor de IA desconhecido: %q", cfg.Provider)
	}
}
