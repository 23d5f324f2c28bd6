package ai

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistente-financeiro/config"
)

func TestNew_SelectsProvider(t *testing.T) {
	client, closeFn, err := New(context.Background(), config.AIConfig{Provider: "openai", OpenAIModel: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, client)
	assert.NoError(t, closeFn())

	_, _, err = New(context.Background(), config.AIConfig{Provider: "claude"})
	assert.Error(t, err)

	_, _, err = New(context.Background(), config.AIConfig{Provider: "gemini"})
	assert.Error(t, err, "gemini without key must fail")
}

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Olá, "), genai.Text("tudo bem?")}},
		}},
	}
	assert.Equal(t, "Olá, tudo bem?", candidateText(resp))
	assert.Empty(t, candidateText(&genai.GenerateContentResponse{}))
	assert.Empty(t, candidateText(nil))
}
