package formatter

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/helmcode/interview-ai/pkg/model"
	"github.com/helmcode/interview-ai/pkg/parser"
	"github.com/helmcode/interview-ai/pkg/prompts"
)

// RenderHTML builds the analysis container: tab buttons, one tab per
// language with approach, code and complexity, and the explanation tab.
// Response text is escaped before any highlighting markup is added.
func RenderHTML(a model.ParsedAnalysis) string {
	var b strings.Builder
	b.WriteString(`<div class="analysis-container">`)

	if a.Heading != nil {
		fmt.Fprintf(&b, `<div class="analysis-header"><h2>%s</h2></div>`, html.EscapeString(*a.Heading))
	}

	b.WriteString(`<div class="tab-controls">`)
	b.WriteString(`<div class="tab-button active" data-tab="python">Python</div>`)
	b.WriteString(`<div class="tab-button" data-tab="cpp">C++</div>`)
	b.WriteString(`<div class="tab-button" data-tab="explanation">Explanation</div>`)
	b.WriteString(`</div>`)

	writeCodeTab(&b, a, "python", "Python Solution", "language-python", a.PythonCode, true)
	writeCodeTab(&b, a, "cpp", "C++ Solution", "language-cpp", a.CppCode, false)

	b.WriteString(`<div class="tab-content" id="explanationTab"><div class="explanation-section">`)
	b.WriteString(`<h3>For Interviewers: Solution Explanation</h3>`)
	b.WriteString(renderExplanationHTML(a.Explanation.Layout()))
	b.WriteString(`<div class="interviewer-tip"><h4>Interview Communication Tips</h4>`)
	b.WriteString(`<p>When explaining this solution to an interviewer, emphasize the following points:</p>`)
	b.WriteString(`<ul class="explanation-points">`)
	for _, tip := range prompts.InterviewTips {
		fmt.Fprintf(&b, `<li>%s</li>`, html.EscapeString(tip))
	}
	b.WriteString(`</ul></div></div></div>`)

	b.WriteString(`</div>`)
	return b.String()
}

func writeCodeTab(b *strings.Builder, a model.ParsedAnalysis, id, title, class, code string, active bool) {
	state := ""
	if active {
		state = " active"
	}
	fmt.Fprintf(b, `<div class="tab-content%s" id="%sTab">`, state, id)

	b.WriteString(`<div class="approach-section"><ul class="approach-points">`)
	for _, bullet := range a.ApproachBullets {
		if bullet.Important {
			fmt.Fprintf(b, `<li class="important">%s</li>`, html.EscapeString(bullet.Text))
		} else {
			fmt.Fprintf(b, `<li>%s</li>`, html.EscapeString(bullet.Text))
		}
	}
	b.WriteString(`</ul></div>`)

	fmt.Fprintf(b, `<div class="code-block"><div class="code-header"><span class="code-header-title">%s</span></div>`, title)
	fmt.Fprintf(b, `<div class="code-content"><pre><code class="%s">%s</code></pre></div></div>`, class, html.EscapeString(code))

	b.WriteString(`<div class="complexity-box">`)
	fmt.Fprintf(b, `<p>Time Complexity: <span class="complexity-value">%s</span></p>`, html.EscapeString(a.TimeComplexity))
	fmt.Fprintf(b, `<p>Space Complexity: <span class="complexity-value">%s</span></p>`, html.EscapeString(a.SpaceComplexity))
	b.WriteString(`</div></div>`)
}

func renderExplanationHTML(layout model.ExplanationLayout) string {
	highlight := func(s string) string {
		return parser.HighlightTerms(html.EscapeString(s), parser.HTMLHighlighter)
	}

	var b strings.Builder
	b.WriteString(`<div class="plain-text-content">`)
	if layout.Intro != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, highlight(layout.Intro))
	}
	if len(layout.Bullets) > 0 {
		b.WriteString(`<ul class="explanation-points">`)
		for _, bullet := range layout.Bullets {
			fmt.Fprintf(&b, `<li>%s</li>`, highlight(bullet))
		}
		b.WriteString(`</ul>`)
	}
	for _, p := range layout.Paragraphs {
		fmt.Fprintf(&b, `<p>%s</p>`, highlight(p))
	}
	b.WriteString(`</div>`)
	return b.String()
}

var (
	chatFenceRe  = regexp.MustCompile("(?s)```(.*?)\n(.*?)```")
	chatInlineRe = regexp.MustCompile("`([^`]+)`")
	chatBoldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// FormatChatHTML renders one chat message body: fenced code becomes a
// titled code block, then inline code, bold text and blank-line paragraphs.
func FormatChatHTML(content string) string {
	text := html.EscapeString(content)

	text = chatFenceRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := chatFenceRe.FindStringSubmatch(m)
		lang := strings.TrimSpace(sub[1])
		title := lang
		if title == "" {
			title = "Code"
		}
		return fmt.Sprintf(`<div class="code-block"><div class="code-header"><span class="code-header-title">%s</span></div>`+
			`<div class="code-content"><pre><code class="%s">%s</code></pre></div></div>`, title, lang, sub[2])
	})
	text = chatInlineRe.ReplaceAllString(text, "<code>$1</code>")
	text = chatBoldRe.ReplaceAllString(text, `<span class="bold">$1</span>`)

	var b strings.Builder
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	return b.String()
}

// chatRoleClass maps roles to the CSS classes of the chat page.
func chatRoleClass(role model.Role) string {
	switch role {
	case model.RoleAssistant:
		return "ai"
	case model.RoleSystem:
		return "system"
	default:
		return "user"
	}
}

// RenderChatHTML renders a chat transcript as message divs.
func RenderChatHTML(history []model.ChatMessage) string {
	var b strings.Builder
	b.WriteString(`<div class="chat-messages">`)
	for _, msg := range history {
		fmt.Fprintf(&b, `<div class="chat-message %s"><div class="message-content">%s</div></div>`,
			chatRoleClass(msg.Role), FormatChatHTML(msg.Content))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderPage wraps body in a standalone HTML document.
func RenderPage(title, body string) string {
	if title == "" {
		title = "Interview AI"
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { background: #1e1e1e; color: #e0e0e0; font-family: system-ui, sans-serif; margin: 2rem; }
.tab-controls { display: flex; gap: .5rem; margin-bottom: 1rem; }
.tab-button { padding: .4rem .9rem; border-radius: 4px; background: #333; }
.tab-button.active { background: #4a6cf7; }
.code-block { margin: 1rem 0; border: 1px solid #333; border-radius: 6px; }
.code-header { background: #2d2d2d; padding: .4rem .8rem; font-weight: 600; }
.code-content pre { margin: 0; padding: .8rem; overflow-x: auto; }
.complexity-box { background: #252525; padding: .6rem 1rem; border-radius: 6px; }
.complexity-value { color: #4ec9b0; font-weight: 600; }
.approach-points li.important { color: #f7c948; font-weight: 600; }
.highlight { color: #f7c948; }
.bold { font-weight: 700; }
.chat-message { margin: .6rem 0; padding: .6rem .9rem; border-radius: 8px; max-width: 80%%; }
.chat-message.user { background: #264f78; margin-left: auto; }
.chat-message.ai { background: #2d2d2d; }
.chat-message.system { color: #999; font-style: italic; }
</style>
</head>
<body>
%s
</body>
</html>
`
