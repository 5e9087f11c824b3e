package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/interview-ai/pkg/analyzer"
	"github.com/helmcode/interview-ai/pkg/capture"
	"github.com/helmcode/interview-ai/pkg/config"
	"github.com/helmcode/interview-ai/pkg/llm"
	"github.com/helmcode/interview-ai/pkg/logging"
	"github.com/helmcode/interview-ai/pkg/model"
)

var (
	configManager *config.Manager
	appConfig     *config.Config
)

// statusOut receives progress and status lines so stdout stays clean for
// -o json|yaml|html.
var statusOut io.Writer = os.Stderr

// LoadConfig reads the config file, applies --log-level / --log-format and
// installs the logger. It runs before every subcommand.
func LoadConfig(cmd *cobra.Command, path string) error {
	m, err := config.NewManager(path)
	if err != nil {
		return err
	}

	v := m.Viper()
	if f := cmd.Flags().Lookup("log-level"); f != nil {
		if err := v.BindPFlag("logging.level", f); err != nil {
			return fmt.Errorf("binding log-level flag: %w", err)
		}
	}
	if f := cmd.Flags().Lookup("log-format"); f != nil {
		if err := v.BindPFlag("logging.format", f); err != nil {
			return fmt.Errorf("binding log-format flag: %w", err)
		}
	}

	cfg, err := m.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	configManager, appConfig = m, cfg
	return nil
}

func currentConfig() *config.Config {
	if appConfig == nil {
		settings := config.DefaultSettings()
		return &config.Config{AppMode: config.ModeStandard, AppSettings: settings}
	}
	return appConfig
}

// resolveProvider picks the provider from the flag, then the config file,
// then LLM_PROVIDER, defaulting to openai.
func resolveProvider(flag string) llm.Provider {
	for _, p := range []string{flag, currentConfig().LLM.Provider, os.Getenv("LLM_PROVIDER")} {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			return llm.Provider(p)
		}
	}
	return llm.ProviderOpenAI
}

func providerUsage() string {
	return fmt.Sprintf("LLM provider (%s)", llm.NewFactory().ProviderNames())
}

func checkProvider(p llm.Provider) error {
	factory := llm.NewFactory()
	if slices.Contains(factory.GetAvailableProviders(), p) {
		return nil
	}
	return fmt.Errorf("unknown provider %q, available: %s", p, factory.ProviderNames())
}

func newAnalyzer(providerFlag string) (*analyzer.Analyzer, error) {
	provider := resolveProvider(providerFlag)
	if err := checkProvider(provider); err != nil {
		return nil, err
	}

	current := currentConfig()
	c := current.LLM
	cfg := llm.Config{
		Provider:  provider,
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
		RateLimit: c.RateLimit,
		Language:  current.AppSettings.Language,
	}
	switch cfg.Provider {
	case llm.ProviderClaude:
		cfg.APIKey = c.AnthropicAPIKey
	case llm.ProviderOpenAI:
		cfg.APIKey = c.OpenAIAPIKey
	}

	a, err := analyzer.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return a, nil
}

// voiceParams maps the persisted voice settings onto the speech filter.
func voiceParams(s config.AppSettings) *capture.VoiceParams {
	return &capture.VoiceParams{
		Sensitivity:      s.Voice.Sensitivity,
		MinSpeechMS:      s.Voice.MinSpeechMS,
		SilenceMS:        s.SilenceThresholdMS,
		NoiseSuppression: s.Voice.NoiseSuppression,
	}
}

// recordFile runs a recording cycle over a pre-recorded file.
func recordFile(ctx context.Context, path string) (model.Attachment, error) {
	source := &capture.FileSource{Path: path, Voice: voiceParams(currentConfig().AppSettings)}
	rec := capture.NewRecorder(source)
	if err := rec.Start(ctx); err != nil {
		return model.Attachment{}, deviceMessage(err)
	}
	clip, err := rec.Stop()
	if err != nil {
		return model.Attachment{}, deviceMessage(err)
	}
	return clip, nil
}

func deviceMessage(err error) error {
	switch {
	case errors.Is(err, capture.ErrPermissionDenied):
		return fmt.Errorf("permission denied, check access to the audio file: %w", err)
	case errors.Is(err, capture.ErrDeviceUnavailable):
		return fmt.Errorf("audio source unavailable: %w", err)
	case errors.Is(err, capture.ErrNoSpeech):
		return fmt.Errorf("no speech detected, check the recording or raise app_settings.voice.sensitivity: %w", err)
	default:
		return err
	}
}

// transcribeFile records path and transcribes it, reporting progress on
// statusOut.
func transcribeFile(ctx context.Context, a *analyzer.Analyzer, path string) (string, error) {
	clip, err := recordFile(ctx, path)
	if err != nil {
		return "", err
	}

	s := newSpinner("Transcribing audio...")
	s.Start()
	text, err := a.Transcribe(ctx, clip)
	s.Stop()
	if err != nil {
		return "", err
	}

	if currentConfig().AppSettings.ShowTranscription {
		printInfo(fmt.Sprintf("Transcription: %s", text))
	}
	return text, nil
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(statusOut))
	s.Suffix = " " + suffix
	return s
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(statusOut, "✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(statusOut, "✗ %s\n", msg)
}

func printWarning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(statusOut, "! %s\n", msg)
}

func printInfo(msg string) {
	fmt.Fprintf(statusOut, "%s %s\n", color.CyanString("›"), msg)
}
