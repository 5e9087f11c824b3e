package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/interview-ai/pkg/capture"
	"github.com/helmcode/interview-ai/pkg/config"
	"github.com/helmcode/interview-ai/pkg/llm"
)

func withConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	prev := appConfig
	appConfig = cfg
	t.Cleanup(func() { appConfig = prev })
}

func TestResolveProvider(t *testing.T) {
	withConfig(t, nil)
	t.Setenv("LLM_PROVIDER", "")
	assert.Equal(t, llm.ProviderOpenAI, resolveProvider(""))

	t.Setenv("LLM_PROVIDER", "Claude")
	assert.Equal(t, llm.ProviderClaude, resolveProvider(""))
	assert.Equal(t, llm.ProviderOpenAI, resolveProvider("openai"))

	cfg := &config.Config{}
	cfg.LLM.Provider = "openai"
	withConfig(t, cfg)
	assert.Equal(t, llm.ProviderOpenAI, resolveProvider(""))
}

func TestNewAnalyzer_MissingKey(t *testing.T) {
	withConfig(t, nil)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := newAnalyzer("openai")
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestNewAnalyzer_UsesConfigKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.AnthropicAPIKey = "sk-ant"
	withConfig(t, cfg)
	t.Setenv("ANTHROPIC_API_KEY", "")

	a, err := newAnalyzer("claude")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderClaude, a.LLM().Provider())
}

func TestLoadConfig_BindsLogFlags(t *testing.T) {
	prevCfg, prevMgr := appConfig, configManager
	t.Cleanup(func() { appConfig, configManager = prevCfg, prevMgr })

	c := &cobra.Command{Use: "test"}
	c.Flags().String("log-level", "info", "")
	c.Flags().String("log-format", "console", "")
	require.NoError(t, c.Flags().Set("log-level", "debug"))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, LoadConfig(c, path))
	assert.Equal(t, "debug", appConfig.Logging.Level)
	assert.Equal(t, "console", appConfig.Logging.Format)
	assert.Equal(t, path, configManager.Path())
}

func TestLoadConfig_InvalidLevel(t *testing.T) {
	prevCfg, prevMgr := appConfig, configManager
	t.Cleanup(func() { appConfig, configManager = prevCfg, prevMgr })

	c := &cobra.Command{Use: "test"}
	c.Flags().String("log-level", "info", "")
	require.NoError(t, c.Flags().Set("log-level", "loud"))

	assert.Error(t, LoadConfig(c, filepath.Join(t.TempDir(), "config.yaml")))
}

func TestNewAnalyzer_UnknownProvider(t *testing.T) {
	withConfig(t, nil)
	t.Setenv("LLM_PROVIDER", "")

	_, err := newAnalyzer("bard")
	assert.ErrorContains(t, err, `unknown provider "bard", available: claude, openai`)
	assert.Equal(t, "LLM provider (claude, openai)", providerUsage())
}

func TestVoiceParams(t *testing.T) {
	s := config.DefaultSettings()
	s.SilenceThresholdMS = 900
	s.Voice.Sensitivity = 0.7
	s.Voice.MinSpeechMS = 250
	s.Voice.NoiseSuppression = false

	assert.Equal(t, &capture.VoiceParams{
		Sensitivity: 0.7,
		MinSpeechMS: 250,
		SilenceMS:   900,
	}, voiceParams(s))
}

func TestRecordFile_NoSpeech(t *testing.T) {
	withConfig(t, nil)

	// 1s of 16 kHz mono silence.
	header := []byte("RIFF\x24\x7d\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x80\x3e\x00\x00\x00\x7d\x00\x00\x02\x00\x10\x00data\x00\x7d\x00\x00")
	path := filepath.Join(t.TempDir(), "silent.wav")
	require.NoError(t, os.WriteFile(path, append(header, make([]byte, 32000)...), 0o600))

	_, err := recordFile(context.Background(), path)
	assert.ErrorIs(t, err, capture.ErrNoSpeech)
	assert.ErrorContains(t, err, "voice.sensitivity")
}
