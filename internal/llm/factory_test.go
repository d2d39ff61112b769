package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-ai/jobscout/internal/config"
)

func TestNewClientOpenAI(t *testing.T) {
	gen, emb, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "openai",
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.NotNil(t, gen)
	assert.NotNil(t, emb)
}

func TestNewClientOllama(t *testing.T) {
	gen, emb, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "ollama",
		Model:    "llama3",
		BaseURL:  "http://localhost:11434",
	})
	require.NoError(t, err)
	assert.NotNil(t, gen)
	assert.NotNil(t, emb)
}

func TestNewClientClaudeHasNoEmbedder(t *testing.T) {
	gen, emb, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "claude",
		APIKey:   "test",
	})
	require.NoError(t, err)
	assert.NotNil(t, gen)
	assert.Nil(t, emb)
}

func TestNewClientCaseInsensitive(t *testing.T) {
	_, _, err := NewClient(context.Background(), config.LLMConfig{Provider: "OpenAI", APIKey: "k"})
	assert.NoError(t, err)
}

func TestNewClientUnsupported(t *testing.T) {
	_, _, err := NewClient(context.Background(), config.LLMConfig{Provider: "bard"})
	assert.Error(t, err)
}
