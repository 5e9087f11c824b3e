package prompts

import (
	"fmt"
	"strings"

	"github.com/helmcode/interview-ai/pkg/model"
)

// BuildMeetingPrompt prefixes message with the conversation so far. With no
// history the message is returned unchanged.
func BuildMeetingPrompt(history []model.ChatMessage, message string) string {
	message = strings.TrimSpace(message)
	if len(history) == 0 {
		return message
	}

	var b strings.Builder
	b.WriteString("You are helping me during a live interview. Conversation so far:\n\n")
	writeTranscript(&b, history)
	fmt.Fprintf(&b, "\nReply to the latest message, keeping the conversation above in mind:\n%s", message)
	return b.String()
}

// BuildSummaryPrompt asks for a short recap of a meeting. It errors when
// there is nothing to summarize.
func BuildSummaryPrompt(history []model.ChatMessage) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("nothing to summarize")
	}

	var b strings.Builder
	b.WriteString("Summarize this interview conversation in at most 5 bullet points. ")
	b.WriteString("List the questions asked and the key points of each answer.\n\n")
	writeTranscript(&b, history)
	return b.String(), nil
}

func writeTranscript(b *strings.Builder, history []model.ChatMessage) {
	for _, m := range history {
		if m.Role == model.RoleSystem {
			continue
		}
		speaker := "Me"
		if m.Role == model.RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(b, "%s: %s\n", speaker, strings.TrimSpace(m.Content))
	}
}
