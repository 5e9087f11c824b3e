package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcode/interview-ai/pkg/model"
)

func TestRenderHTML(t *testing.T) {
	heading := "Two <Sum>"
	a := model.ParsedAnalysis{
		Heading: &heading,
		ApproachBullets: []model.ApproachBullet{
			{Text: "use a map"},
			{Text: "important: check first", Important: true},
		},
		PythonCode:      "if a < b:\n    pass\n",
		CppCode:         "",
		TimeComplexity:  "O(n)",
		SpaceComplexity: "O(1)",
		Explanation: model.ParsedExplanation{
			BulletPoints: []string{"the optimal idea", "b", "c"},
			Paragraphs:   []string{"Intro uses `seen` & more", "Rest"},
		},
	}

	out := RenderHTML(a)
	assert.Contains(t, out, `<h2>Two &lt;Sum&gt;</h2>`)
	assert.Contains(t, out, `<div class="tab-button active" data-tab="python">Python</div>`)
	assert.Contains(t, out, `<li class="important">important: check first</li>`)
	assert.Contains(t, out, `<code class="language-python">if a &lt; b:`)
	assert.Contains(t, out, `<code class="language-cpp"></code>`)
	assert.Contains(t, out, `<span class="complexity-value">O(1)</span>`)
	assert.Contains(t, out, `<p>Intro uses <code>seen</code> &amp; more</p>`)
	assert.Contains(t, out, `<li>the <span class="highlight">optimal</span> idea</li>`)
	assert.Contains(t, out, `<p>Rest</p>`)
	assert.Equal(t, 3, strings.Count(out, `class="tab-content`))
}

func TestRenderHTML_ParagraphsOnly(t *testing.T) {
	a := model.ParsedAnalysis{
		TimeComplexity:  "O(n)",
		SpaceComplexity: "O(n)",
		Explanation: model.ParsedExplanation{
			BulletPoints: []string{"a", "b"},
			Paragraphs:   []string{"- a\n- b"},
		},
	}
	out := RenderHTML(a)
	assert.NotContains(t, out, `<div class="analysis-header">`)
	assert.Contains(t, out, `<div class="plain-text-content"><p>- a`)
	assert.Equal(t, 1, strings.Count(out, `<ul class="explanation-points">`), "only the tips list")
}

func TestFormatChatHTML(t *testing.T) {
	in := "Here:\n\n```python\nprint(1 < 2)\n```\n\nUse `x` and **bold**"
	out := FormatChatHTML(in)

	assert.True(t, strings.HasPrefix(out, "<p>Here:</p>"))
	assert.Contains(t, out, `<span class="code-header-title">python</span>`)
	assert.Contains(t, out, "<code class=\"python\">print(1 &lt; 2)\n</code>")
	assert.Contains(t, out, "<p>Use <code>x</code> and <span class=\"bold\">bold</span></p>")
}

func TestFormatChatHTML_UntaggedFence(t *testing.T) {
	out := FormatChatHTML("```\nls\n```")
	assert.Contains(t, out, `<span class="code-header-title">Code</span>`)
	assert.Contains(t, out, `<code class="">ls`)
}

func TestFormatChatHTML_Empty(t *testing.T) {
	assert.Equal(t, "", FormatChatHTML("\n\n"))
}

func TestRenderChatHTML(t *testing.T) {
	out := RenderChatHTML([]model.ChatMessage{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
		{Role: model.RoleSystem, Content: "error"},
	})
	assert.Contains(t, out, `<div class="chat-message user"><div class="message-content"><p>hi</p></div></div>`)
	assert.Contains(t, out, `<div class="chat-message ai">`)
	assert.Contains(t, out, `<div class="chat-message system">`)
}

func TestRenderPage(t *testing.T) {
	out := RenderPage("", "<p>x</p>")
	assert.Contains(t, out, "<title>Interview AI</title>")
	assert.Contains(t, out, "<body>\n<p>x</p>\n</body>")
	assert.Contains(t, out, "max-width: 80%;")
}
