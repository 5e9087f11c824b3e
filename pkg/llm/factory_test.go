package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateLLM(t *testing.T) {
	f := NewFactory()

	l, err := f.CreateLLM(Config{Provider: ProviderClaude, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, l.Provider())
	assert.Equal(t, defaultClaudeModel, l.GetModel())

	l, err = f.CreateLLM(Config{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, l.Provider())
	assert.Equal(t, "gpt-4o-mini", l.GetModel())

	_, err = f.CreateLLM(Config{Provider: ProviderOpenAI})
	assert.Error(t, err)

	_, err = f.CreateLLM(Config{Provider: "gemini", APIKey: "k"})
	assert.Error(t, err)
}

func TestCreateFromEnv(t *testing.T) {
	t.Run("defaults to openai", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("OPENAI_MODEL", "gpt-4.1")

		l, err := CreateFromEnv(Config{})
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, l.Provider())
		assert.Equal(t, "gpt-4.1", l.GetModel())
	})

	t.Run("explicit model beats env", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "ak")
		t.Setenv("CLAUDE_MODEL", "env-model")

		l, err := CreateFromEnv(Config{Provider: "Claude", Model: "flag-model"})
		require.NoError(t, err)
		assert.Equal(t, ProviderClaude, l.Provider())
		assert.Equal(t, "flag-model", l.GetModel())
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "claude")
		t.Setenv("ANTHROPIC_API_KEY", "")

		_, err := CreateFromEnv(Config{})
		assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := CreateFromEnv(Config{Provider: "bard", APIKey: "x"})
		assert.ErrorContains(t, err, "supported: claude, openai")
	})
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "cfg", resolveModel("", "cfg"))
	assert.Equal(t, "cfg", resolveModel("default", "cfg"))
	assert.Equal(t, "o3", resolveModel(" o3 ", "cfg"))
}
