package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/interview-ai/pkg/analyzer"
	"github.com/helmcode/interview-ai/pkg/config"
	"github.com/helmcode/interview-ai/pkg/formatter"
	"github.com/helmcode/interview-ai/pkg/model"
	"github.com/helmcode/interview-ai/pkg/session"
)

const chatErrorMessage = "Sorry, there was an error processing your request."

type chatOptions struct {
	stream   bool
	model    string
	provider string
	width    int
	style    string
}

func NewChatCmd() *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the AI interview assistant",
		Long: `Start an interactive chat. Each line you type is sent as one message.

Commands:
  /audio FILE         transcribe FILE and send it (or keep it for /send)
  /send               send the last transcription
  /history            show the conversation so far
  /summary            summarize the conversation
  /export FILE.html   save the conversation as a HTML page
  /clear              clear the conversation and cached answers
  /mode standard|meeting
  /quit               leave the chat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stream, "stream", true, "Stream responses (defaults to the streaming setting)")
	cmd.Flags().StringVar(&opts.model, "model", "default", "Model to use; \"default\" keeps the configured one")
	cmd.Flags().StringVar(&opts.provider, "provider", "", providerUsage())
	cmd.Flags().IntVar(&opts.width, "width", 100, "Terminal width used for chat bubbles")
	cmd.Flags().StringVar(&opts.style, "style", "", "Markdown style (dark, light, notty); empty detects the terminal")

	return cmd
}

func runChat(cmd *cobra.Command, opts *chatOptions) error {
	cfg := currentConfig()
	if !cmd.Flags().Changed("stream") {
		opts.stream = cfg.AppSettings.Streaming
	}

	aiAnalyzer, err := newAnalyzer(opts.provider)
	if err != nil {
		return err
	}
	renderer, err := formatter.NewChatRenderer(opts.width, opts.style)
	if err != nil {
		return err
	}

	loop := &chatLoop{
		in:       cmd.InOrStdin(),
		out:      cmd.OutOrStdout(),
		analyzer: aiAnalyzer,
		session:  session.New(cfg.AppMode, cfg.AppSettings),
		renderer: renderer,
		options:  analyzer.Options{Model: opts.model, Stream: opts.stream},
	}
	return loop.run(cmd.Context())
}

// chatLoop owns one interactive session. Every turn finishes before the
// next line is read.
type chatLoop struct {
	in       io.Reader
	out      io.Writer
	analyzer *analyzer.Analyzer
	session  *session.Session
	renderer *formatter.ChatRenderer
	options  analyzer.Options

	pendingTranscript string
	lastSummary       time.Time
	now               func() time.Time
}

func (c *chatLoop) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *chatLoop) run(ctx context.Context) error {
	log := slog.With("session", c.session.ID)
	log.Debug("chat session started", "mode", c.session.Mode)
	c.lastSummary = c.clock()
	defer func() {
		c.session.End()
		log.Debug("chat session ended")
	}()

	color.New(color.FgCyan, color.Bold).Fprintf(c.out, "💬 Interview AI chat (%s mode). Type /quit to leave.\n\n", c.session.Mode)

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(c.out, color.CyanString("> "))
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		if quit := c.handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// handle processes one input line and reports whether the loop should end.
func (c *chatLoop) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		c.send(ctx, line)
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "/quit", "/exit":
		return true
	case "/audio":
		c.audio(ctx, arg)
	case "/send":
		if c.pendingTranscript == "" {
			c.system("Nothing to send. Record with /audio FILE first.")
			return false
		}
		text := c.pendingTranscript
		c.pendingTranscript = ""
		c.send(ctx, text)
	case "/history":
		history := c.session.History()
		if len(history) == 0 {
			c.system("No messages yet.")
		}
		for _, msg := range history {
			fmt.Fprintln(c.out, c.renderer.Render(msg))
		}
	case "/summary":
		c.summarize(ctx)
	case "/export":
		c.export(arg)
	case "/clear":
		c.session.ClearHistory()
		c.session.ClearAll()
		c.pendingTranscript = ""
		c.system("Conversation cleared.")
	case "/mode":
		mode, err := config.ParseMode(arg)
		if err != nil {
			c.system(err.Error())
			return false
		}
		c.session.SetMode(mode)
		c.system(fmt.Sprintf("Switched to %s mode.", mode))
	default:
		c.system(fmt.Sprintf("Unknown command %s", command))
	}
	return false
}

func (c *chatLoop) send(ctx context.Context, message string) {
	fmt.Fprintln(c.out, c.renderer.Render(model.ChatMessage{Role: model.RoleUser, Content: message}))

	s := newSpinner("Thinking...")
	s.Start()
	out, _ := c.analyzer.Chat(ctx, c.session, message, c.options)
	s.Stop()

	if out.IsFallback() {
		c.system(chatErrorMessage + " Showing a simulated reply.")
	}
	fmt.Fprintln(c.out, c.renderer.Render(model.ChatMessage{Role: model.RoleAssistant, Content: out.Text}))

	if !out.IsFallback() && c.summaryDue() {
		c.summarize(ctx)
	}
}

// summaryDue reports whether meeting mode has gone Meeting.SummaryIntervalS
// without a summary.
func (c *chatLoop) summaryDue() bool {
	interval := time.Duration(c.session.Settings.Meeting.SummaryIntervalS) * time.Second
	if c.session.Mode != config.ModeMeeting || interval <= 0 {
		return false
	}
	if c.lastSummary.IsZero() {
		c.lastSummary = c.clock()
		return false
	}
	return c.clock().Sub(c.lastSummary) >= interval
}

func (c *chatLoop) summarize(ctx context.Context) {
	s := newSpinner("Summarizing...")
	s.Start()
	out, err := c.analyzer.Summarize(ctx, c.session, c.options)
	s.Stop()
	if err != nil {
		c.system("Nothing to summarize yet.")
		return
	}

	c.lastSummary = c.clock()
	if out.IsFallback() {
		c.system(chatErrorMessage)
		return
	}
	fmt.Fprintln(c.out, c.renderer.Render(model.ChatMessage{Role: model.RoleAssistant, Content: "**Meeting summary**\n\n" + out.Text}))
}

// audio transcribes a file. The text is sent right away when auto submit
// is on, or in meeting mode with auto answer; otherwise it waits for /send.
func (c *chatLoop) audio(ctx context.Context, path string) {
	if path == "" {
		c.system("Usage: /audio FILE")
		return
	}
	text, err := transcribeFile(ctx, c.analyzer, path)
	if err != nil {
		slog.Warn("chat transcription failed", "file", path, "error", err)
		c.system("Failed to transcribe audio. Please try again or type your message.")
		return
	}

	settings := c.session.Settings
	if settings.AutoSubmit || (c.session.Mode == config.ModeMeeting && settings.Meeting.AutoAnswer) {
		c.send(ctx, text)
		return
	}
	c.pendingTranscript = text
	c.system(fmt.Sprintf("Transcribed: %q. Type /send to submit it.", text))
}

func (c *chatLoop) export(path string) {
	if path == "" {
		c.system("Usage: /export FILE.html")
		return
	}
	page := formatter.RenderPage("Interview AI chat", formatter.RenderChatHTML(c.session.History()))
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		c.system(fmt.Sprintf("Export failed: %v", err))
		return
	}
	c.system(fmt.Sprintf("Saved conversation to %s", path))
}

func (c *chatLoop) system(msg string) {
	fmt.Fprintln(c.out, c.renderer.Render(model.ChatMessage{Role: model.RoleSystem, Content: msg}))
}
