package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("REUP_LLM_PROVIDER", "anthropic")
	t.Setenv("REUP_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("REUP_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	require.Equal(t, "anthropic", cfg.Provider)
	require.Equal(t, "sk-test", cfg.Anthropic.APIKey)
	require.Equal(t, "claude-sonnet", cfg.Anthropic.Model)

	// Unset vars keep defaults.
	require.Equal(t, "gemini-flash", cfg.Gemini.Model)
	require.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	require.Equal(t, "gemini", cfg.Provider)
	require.Equal(t, "g-key", cfg.Gemini.APIKey)
}

func TestDiscoverConfigNothingSet(t *testing.T) {
	for _, v := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(v, "")
	}
	_, ok := DiscoverConfig()
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate(), "gemini without key must fail")

	cfg.Gemini.APIKey = "g-key"
	require.NoError(t, cfg.Validate())

	cfg.Provider = "mock"
	require.NoError(t, cfg.Validate())

	cfg.Provider = "frontier"
	require.Error(t, cfg.Validate())
}
