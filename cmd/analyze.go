package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/interview-ai/pkg/analyzer"
	"github.com/helmcode/interview-ai/pkg/capture"
	"github.com/helmcode/interview-ai/pkg/formatter"
	"github.com/helmcode/interview-ai/pkg/session"
)

type analyzeOptions struct {
	images       []string
	stream       bool
	model        string
	provider     string
	outputFormat string
	tab          string
	htmlOut      string
	audio        string
}

func NewAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [QUESTION]",
		Short: "Solve the coding problem shown in screenshots",
		Long: `Send up to seven screenshots and a question to the AI and print a
tabbed solution: approach, Python and C++ code, complexity and an
explanation to walk an interviewer through.

Examples:
  # Analyze one screenshot
  interview-ai analyze "solve this in O(n)" -i problem.png

  # Several screenshots, C++ tab only
  interview-ai analyze "what is the optimal approach?" -i p1.png -i p2.png --tab cpp

  # Ask the question out loud instead of typing it
  interview-ai analyze -i problem.png --audio question.wav

  # Save a standalone HTML page
  interview-ai analyze "explain" -i problem.png --html-out answer.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.images, "image", "i", []string{}, "Screenshot to analyze (repeatable, up to 7)")
	cmd.Flags().BoolVar(&opts.stream, "stream", true, "Stream the response (defaults to the streaming setting)")
	cmd.Flags().StringVar(&opts.model, "model", "default", "Model to use; \"default\" keeps the configured one")
	cmd.Flags().StringVar(&opts.provider, "provider", "", providerUsage())
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "human", "Output format (human, json, yaml, html)")
	cmd.Flags().StringVar(&opts.tab, "tab", "all", "Section to print in human output (python, cpp, explanation, all)")
	cmd.Flags().StringVar(&opts.htmlOut, "html-out", "", "Also write the analysis as an HTML page to this file")
	cmd.Flags().StringVar(&opts.audio, "audio", "", "Audio file whose transcription is used as the question")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, args []string) error {
	ctx := cmd.Context()
	cfg := currentConfig()

	format, err := formatter.ParseFormat(opts.outputFormat)
	if err != nil {
		return err
	}
	tab, err := formatter.ParseTab(opts.tab)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("stream") {
		opts.stream = cfg.AppSettings.Streaming
	}

	question := ""
	if len(args) == 1 {
		question = strings.TrimSpace(args[0])
	}
	if question == "" && opts.audio == "" {
		return analyzer.ErrNoQuestion
	}
	if len(opts.images) == 0 {
		return analyzer.ErrNoImages
	}

	sess := session.New(cfg.AppMode, cfg.AppSettings)
	for _, path := range opts.images {
		img, err := capture.LoadImage(path)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
		slot, err := sess.Images.Add(img)
		if errors.Is(err, capture.ErrSlotsFull) {
			return fmt.Errorf("%s: %w (max %d)", path, err, sess.Images.Cap())
		}
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Loaded %s into slot %d", filepath.Base(path), slot))
	}

	aiAnalyzer, err := newAnalyzer(opts.provider)
	if err != nil {
		return err
	}

	if question == "" {
		question, err = transcribeFile(ctx, aiAnalyzer, opts.audio)
		if err != nil {
			printError("Failed to transcribe audio. Please try again or type your question.")
			return err
		}
	}

	printHeader(question, sess.Images.Len())

	s := newSpinner("Analyzing code...")
	s.Start()
	res, err := aiAnalyzer.AnalyzeSession(ctx, sess, question, analyzer.Options{
		Model:  opts.model,
		Stream: opts.stream,
		OnProgress: func(partial string) {
			s.Lock()
			s.Suffix = fmt.Sprintf(" Generating response... %d chars", len(partial))
			s.Unlock()
		},
	})
	s.Stop()
	if err != nil {
		return fmt.Errorf("AI analysis failed: %w", err)
	}

	if res.Outcome.IsFallback() {
		printWarning(fmt.Sprintf("AI service unavailable (%v), showing a simulated answer", res.Outcome.Err))
	} else {
		printSuccess("Analysis complete")
	}

	if opts.htmlOut != "" {
		page := formatter.RenderPage(res.Analysis.HeadingText(), formatter.RenderHTML(res.Analysis))
		if err := os.WriteFile(opts.htmlOut, []byte(page), 0o644); err != nil {
			return fmt.Errorf("writing HTML: %w", err)
		}
		printSuccess(fmt.Sprintf("Wrote %s", opts.htmlOut))
	}

	return formatter.DisplayAnalysis(cmd.OutOrStdout(), res.Analysis, format, tab)
}

func printHeader(question string, images int) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(statusOut)
	cyan.Fprintln(statusOut, "🔍 Interview AI")
	fmt.Fprintf(statusOut, "📝 Question: %s\n", question)
	fmt.Fprintf(statusOut, "🖼  Images: %d\n", images)
	fmt.Fprintln(statusOut)
}
