package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewTranscribeCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "transcribe FILE",
		Short: "Transcribe a recorded question",
		Long: `Transcribe an audio recording (wav, mp3, m4a, ogg, webm) and print the text.

Example:
  interview-ai transcribe question.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aiAnalyzer, err := newAnalyzer(provider)
			if err != nil {
				return err
			}

			text, err := transcribeFile(cmd.Context(), aiAnalyzer, args[0])
			if err != nil {
				printError("Failed to transcribe audio. Please try again or type your question manually.")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", providerUsage())
	return cmd
}
