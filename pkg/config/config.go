package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix  = "INTERVIEW_AI"
	configName = "config"
	configType = "yaml"
)

// Mode mirrors the persisted appMode slot.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeMeeting  Mode = "meeting"
)

var ErrInvalidMode = errors.New("invalid app mode")

// ParseMode accepts "standard" or "meeting" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStandard:
		return ModeStandard, nil
	case ModeMeeting:
		return ModeMeeting, nil
	default:
		return "", fmt.Errorf("%q: %w (standard, meeting)", s, ErrInvalidMode)
	}
}

// Config holds all configuration for interview-ai
type Config struct {
	LLM struct {
		Provider        string        `mapstructure:"provider" yaml:"provider"`
		Model           string        `mapstructure:"model" yaml:"model"`
		BaseURL         string        `mapstructure:"base_url" yaml:"base_url"`
		OpenAIAPIKey    string        `mapstructure:"openai_api_key" yaml:"-"`
		AnthropicAPIKey string        `mapstructure:"anthropic_api_key" yaml:"-"`
		Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
		MaxTokens       int           `mapstructure:"max_tokens" yaml:"max_tokens"`
		RateLimit       int           `mapstructure:"rate_limit" yaml:"rate_limit"`
	} `mapstructure:"llm" yaml:"llm"`

	Logging struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"logging" yaml:"logging"`

	AppMode     Mode        `mapstructure:"app_mode" yaml:"app_mode"`
	AppSettings AppSettings `mapstructure:"app_settings" yaml:"app_settings"`
}

// AppSettings is the persisted appSettings blob.
type AppSettings struct {
	Language           string          `mapstructure:"language" yaml:"language"`
	Streaming          bool            `mapstructure:"streaming" yaml:"streaming"`
	ShowTranscription  bool            `mapstructure:"show_transcription" yaml:"show_transcription"`
	AutoSubmit         bool            `mapstructure:"auto_submit" yaml:"auto_submit"`
	MaxImages          int             `mapstructure:"max_images" yaml:"max_images"`
	SilenceThresholdMS int             `mapstructure:"silence_threshold_ms" yaml:"silence_threshold_ms"`
	Meeting            MeetingSettings `mapstructure:"meeting" yaml:"meeting"`
	Voice              VoiceSettings   `mapstructure:"voice" yaml:"voice"`
}

type MeetingSettings struct {
	AutoAnswer       bool `mapstructure:"auto_answer" yaml:"auto_answer"`
	ContextMessages  int  `mapstructure:"context_messages" yaml:"context_messages"`
	SummaryIntervalS int  `mapstructure:"summary_interval_s" yaml:"summary_interval_s"`
}

type VoiceSettings struct {
	Sensitivity      float64 `mapstructure:"sensitivity" yaml:"sensitivity"`
	MinSpeechMS      int     `mapstructure:"min_speech_ms" yaml:"min_speech_ms"`
	NoiseSuppression bool    `mapstructure:"noise_suppression" yaml:"noise_suppression"`
}

// Manager handles loading and saving configuration
type Manager struct {
	v    *viper.Viper
	path string
}

// DefaultPath returns $HOME/.config/interview-ai/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home dir: %w", err)
	}
	return filepath.Join(home, ".config", "interview-ai", configName+"."+configType), nil
}

// NewManager reads the config file at path, or the default location when
// path is empty. A missing file is not an error; defaults apply until the
// user saves.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return &Manager{v: v, path: path}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.rate_limit", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("app_mode", string(ModeStandard))

	d := DefaultSettings()
	v.SetDefault("app_settings.language", d.Language)
	v.SetDefault("app_settings.streaming", d.Streaming)
	v.SetDefault("app_settings.show_transcription", d.ShowTranscription)
	v.SetDefault("app_settings.auto_submit", d.AutoSubmit)
	v.SetDefault("app_settings.max_images", d.MaxImages)
	v.SetDefault("app_settings.silence_threshold_ms", d.SilenceThresholdMS)
	v.SetDefault("app_settings.meeting.auto_answer", d.Meeting.AutoAnswer)
	v.SetDefault("app_settings.meeting.context_messages", d.Meeting.ContextMessages)
	v.SetDefault("app_settings.meeting.summary_interval_s", d.Meeting.SummaryIntervalS)
	v.SetDefault("app_settings.voice.sensitivity", d.Voice.Sensitivity)
	v.SetDefault("app_settings.voice.min_speech_ms", d.Voice.MinSpeechMS)
	v.SetDefault("app_settings.voice.noise_suppression", d.Voice.NoiseSuppression)
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() AppSettings {
	return AppSettings{
		Language:           "en-US",
		Streaming:          true,
		ShowTranscription:  true,
		MaxImages:          7,
		SilenceThresholdMS: 1500,
		Meeting: MeetingSettings{
			ContextMessages:  10,
			SummaryIntervalS: 300,
		},
		Voice: VoiceSettings{
			Sensitivity:      0.5,
			MinSpeechMS:      300,
			NoiseSuppression: true,
		},
	}
}

// Viper exposes the underlying instance so commands can bind flags.
func (m *Manager) Viper() *viper.Viper {
	return m.v
}

func (m *Manager) Path() string {
	return m.path
}

// Load returns the effective configuration.
func (m *Manager) Load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	mode, err := ParseMode(string(cfg.AppMode))
	if err != nil {
		return nil, err
	}
	cfg.AppMode = mode
	return &cfg, nil
}

// SaveSettings persists appMode and appSettings. Nothing is written until
// the user asks for it. Values that came from the environment or defaults
// for other keys are not copied into the file.
func (m *Manager) SaveSettings(mode Mode, s AppSettings) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	out := viper.New()
	out.SetConfigType(configType)
	data, err := os.ReadFile(m.path)
	switch {
	case err == nil:
		if err := out.ReadConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading config: %w", err)
	}

	for key, value := range settingsValues(mode, s) {
		m.v.Set(key, value)
		out.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := out.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func settingsValues(mode Mode, s AppSettings) map[string]any {
	return map[string]any{
		"app_mode":                                string(mode),
		"app_settings.language":                   s.Language,
		"app_settings.streaming":                  s.Streaming,
		"app_settings.show_transcription":         s.ShowTranscription,
		"app_settings.auto_submit":                s.AutoSubmit,
		"app_settings.max_images":                 s.MaxImages,
		"app_settings.silence_threshold_ms":       s.SilenceThresholdMS,
		"app_settings.meeting.auto_answer":        s.Meeting.AutoAnswer,
		"app_settings.meeting.context_messages":   s.Meeting.ContextMessages,
		"app_settings.meeting.summary_interval_s": s.Meeting.SummaryIntervalS,
		"app_settings.voice.sensitivity":          s.Voice.Sensitivity,
		"app_settings.voice.min_speech_ms":        s.Voice.MinSpeechMS,
		"app_settings.voice.noise_suppression":    s.Voice.NoiseSuppression,
	}
}

// Set assigns one app_settings or app_mode key from its string form and
// persists the result.
func (m *Manager) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key != "app_mode" && !strings.HasPrefix(key, "app_settings.") {
		return fmt.Errorf("only app_mode and app_settings.* can be set, got %q", key)
	}
	if key == "app_mode" {
		if _, err := ParseMode(value); err != nil {
			return err
		}
	}
	if !m.v.IsSet(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if m.isGroup(key) {
		return fmt.Errorf("%q is a group of settings, set one of its keys instead", key)
	}

	m.v.Set(key, value)
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	return m.SaveSettings(cfg.AppMode, cfg.AppSettings)
}

// isGroup reports whether key holds nested settings rather than a value.
func (m *Manager) isGroup(key string) bool {
	if _, ok := m.v.Get(key).(map[string]any); ok {
		return true
	}
	prefix := key + "."
	for _, k := range m.v.AllKeys() {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}
