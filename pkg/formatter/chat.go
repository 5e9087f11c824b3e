package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/helmcode/interview-ai/pkg/model"
)

var (
	colorUser      = lipgloss.Color("#3B82F6")
	colorAssistant = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")

	bubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	roleStyle   = lipgloss.NewStyle().Bold(true)
	systemStyle = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
)

// ChatRenderer draws chat messages as terminal bubbles. Assistant replies
// are rendered as markdown.
type ChatRenderer struct {
	width int
	md    *glamour.TermRenderer
}

// NewChatRenderer creates a renderer for a terminal of the given width.
// style is a glamour standard style name; empty picks one from the
// terminal background.
func NewChatRenderer(width int, style string) (*ChatRenderer, error) {
	if width < 40 {
		width = 80
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(bubbleWidth(width) - 4)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &ChatRenderer{width: width, md: md}, nil
}

func bubbleWidth(width int) int {
	return width * 3 / 4
}

// Render returns msg as a bubble: user on the right, assistant on the left,
// system messages as a muted line.
func (r *ChatRenderer) Render(msg model.ChatMessage) string {
	switch msg.Role {
	case model.RoleSystem:
		return systemStyle.Width(r.width).Render("· " + msg.Content)
	case model.RoleAssistant:
		body := r.markdown(msg.Content)
		bubble := bubbleStyle.BorderForeground(colorAssistant).
			Render(roleStyle.Foreground(colorAssistant).Render("AI") + "\n" + body)
		return lipgloss.PlaceHorizontal(r.width, lipgloss.Left, bubble)
	default:
		body := lipgloss.NewStyle().Width(bubbleWidth(r.width) - 4).Render(msg.Content)
		bubble := bubbleStyle.BorderForeground(colorUser).
			Render(roleStyle.Foreground(colorUser).Render("You") + "\n" + body)
		return lipgloss.PlaceHorizontal(r.width, lipgloss.Right, bubble)
	}
}

func (r *ChatRenderer) markdown(content string) string {
	out, err := r.md.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
