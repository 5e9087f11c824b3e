package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helmcode/interview-ai/pkg/config"
	"github.com/helmcode/interview-ai/pkg/llm"
	"github.com/helmcode/interview-ai/pkg/model"
	"github.com/helmcode/interview-ai/pkg/parser"
	"github.com/helmcode/interview-ai/pkg/prompts"
	"github.com/helmcode/interview-ai/pkg/session"
)

var (
	ErrNoImages            = errors.New("at least one image is required")
	ErrNoQuestion          = errors.New("a question is required")
	ErrTranscriptionFailed = errors.New("failed to transcribe audio")
)

// OutcomeKind tells a real answer apart from the substituted one.
type OutcomeKind int

const (
	Live OutcomeKind = iota
	Fallback
)

func (k OutcomeKind) String() string {
	if k == Fallback {
		return "fallback"
	}
	return "live"
}

// Outcome is the result of a gateway round trip. A Fallback carries the
// simulated text in Text and the last gateway error in Err.
type Outcome struct {
	Kind OutcomeKind
	Text string
	Err  error
}

func (o Outcome) IsFallback() bool {
	return o.Kind == Fallback
}

// Options controls a single request.
type Options struct {
	// Model overrides the configured model; "" or "default" keeps it.
	Model string
	// Stream tries the streaming call first.
	Stream bool
	// OnProgress receives the accumulated text while streaming.
	OnProgress func(partial string)
}

type Analyzer struct {
	llm    llm.LLM
	logger *slog.Logger
}

// NewFromConfig builds the gateway with the llm factory.
func NewFromConfig(cfg llm.Config) (*Analyzer, error) {
	l, err := llm.CreateFromEnv(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithLLM(l), nil
}

func NewWithLLM(l llm.LLM) *Analyzer {
	return &Analyzer{llm: l, logger: slog.Default()}
}

// WithLogger replaces the logger used for degrade warnings.
func (a *Analyzer) WithLogger(logger *slog.Logger) *Analyzer {
	a.logger = logger
	return a
}

func (a *Analyzer) LLM() llm.LLM {
	return a.llm
}

// Complete runs the chat fallback chain: stream, then a plain call, then the
// simulated chat reply.
func (a *Analyzer) Complete(ctx context.Context, req llm.Request, opts Options) Outcome {
	return a.complete(ctx, req, opts, MockChatResponse)
}

func (a *Analyzer) complete(ctx context.Context, req llm.Request, opts Options, mock string) Outcome {
	req.Model = opts.Model
	log := a.logger.With("provider", a.llm.Provider(), "model", a.llm.GetModel())

	if opts.Stream {
		text, err := a.stream(ctx, req, opts.OnProgress)
		if err == nil {
			return Outcome{Kind: Live, Text: text}
		}
		log.Warn("streaming request failed, retrying without streaming", "error", err)
	}

	text, err := a.llm.Chat(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err == nil {
		return Outcome{Kind: Live, Text: text}
	}

	log.Warn("request failed, substituting simulated response", "error", err)
	return Outcome{Kind: Fallback, Text: mock, Err: err}
}

func (a *Analyzer) stream(ctx context.Context, req llm.Request, onProgress func(string)) (string, error) {
	chunks, err := a.llm.Stream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("opening stream: %w", err)
	}
	text, err := llm.Collect(ctx, chunks, onProgress)
	if err != nil {
		return "", fmt.Errorf("reading stream: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

// AnalysisResult pairs the gateway outcome with the parsed analysis of its
// text. Fallback results are parsed as well, so they render the same way.
type AnalysisResult struct {
	Outcome  Outcome
	Analysis model.ParsedAnalysis
}

// AnalyzeImages asks for a solution to the code shown in images.
func (a *Analyzer) AnalyzeImages(ctx context.Context, question string, images []model.Attachment, opts Options) (*AnalysisResult, error) {
	question = strings.TrimSpace(question)
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if question == "" {
		return nil, ErrNoQuestion
	}

	prompt, err := prompts.BuildAnalysisPrompt(question, len(images))
	if err != nil {
		return nil, err
	}

	out := a.complete(ctx, llm.Request{Prompt: prompt, Attachments: images}, opts, MockAnalysisResponse)
	return &AnalysisResult{
		Outcome:  out,
		Analysis: parser.ParseAnalysis(out.Text),
	}, nil
}

// AnalyzeSession analyzes the images held in the session slots and caches
// the response text.
func (a *Analyzer) AnalyzeSession(ctx context.Context, sess *session.Session, question string, opts Options) (*AnalysisResult, error) {
	res, err := a.AnalyzeImages(ctx, question, sess.Images.Filled(), opts)
	if err != nil {
		return nil, err
	}
	if !res.Outcome.IsFallback() {
		sess.Remember(session.CacheAnalysis, res.Outcome.Text)
	}
	return res, nil
}

// Chat sends one message. In standard mode only the message itself goes to
// the gateway; meeting mode prefixes the last Meeting.ContextMessages
// history entries. Live replies are appended to the session history
// together with the message; a Fallback leaves the history as it was. An
// empty message returns a zero Outcome and false.
func (a *Analyzer) Chat(ctx context.Context, sess *session.Session, message string, opts Options) (Outcome, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Outcome{}, false
	}

	prompt := message
	if n := sess.Settings.Meeting.ContextMessages; sess.Mode == config.ModeMeeting && n > 0 {
		prompt = prompts.BuildMeetingPrompt(sess.RecentHistory(n), message)
	}

	out := a.Complete(ctx, llm.Request{Prompt: prompt}, opts)
	if out.IsFallback() {
		return out, true
	}

	sess.AppendMessage(model.RoleUser, message)
	sess.AppendMessage(model.RoleAssistant, out.Text)
	sess.Remember(session.CacheResponse, out.Text)
	return out, true
}

// Summarize recaps the session history. The summary is not added to the
// history. Fallback outcomes carry the mock chat reply.
func (a *Analyzer) Summarize(ctx context.Context, sess *session.Session, opts Options) (Outcome, error) {
	prompt, err := prompts.BuildSummaryPrompt(sess.History())
	if err != nil {
		return Outcome{}, err
	}
	return a.Complete(ctx, llm.Request{Prompt: prompt}, opts), nil
}

// Transcribe makes a primary attempt and one looser retry. The retry is
// accepted only when the reply talks about the transcription itself, in
// which case the normalized text is used.
func (a *Analyzer) Transcribe(ctx context.Context, audio model.Attachment) (string, error) {
	if !audio.IsAudio() {
		return "", fmt.Errorf("%s: unsupported media type %q", audio.Name, audio.MIMEType)
	}

	text, err := a.llm.Transcribe(ctx, audio, prompts.TranscribeHint)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if err == nil {
		err = errors.New("no speech detected in the recording")
	}
	a.logger.Warn("transcription failed, trying fallback prompt", "file", audio.Name, "error", err)

	text, err = a.llm.Transcribe(ctx, audio, prompts.TranscribeFallback)
	if err != nil {
		a.logger.Warn("fallback transcription failed", "file", audio.Name, "error", err)
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}
	if strings.TrimSpace(text) != "" {
		if clean, meta := parser.NormalizeTranscript(text); meta {
			return clean, nil
		}
	}
	a.logger.Warn("fallback transcription unusable", "file", audio.Name)
	return "", ErrTranscriptionFailed
}
