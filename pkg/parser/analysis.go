package parser

import (
	"regexp"
	"strings"

	"github.com/helmcode/interview-ai/pkg/model"
)

// Language is a fence tag the solution tabs look for.
type Language string

const (
	Python Language = "python"
	Cpp    Language = "cpp"
)

// ComplexityKind selects which complexity phrase ExtractComplexity searches for.
type ComplexityKind string

const (
	TimeComplexity  ComplexityKind = "time"
	SpaceComplexity ComplexityKind = "space"
)

var (
	headingRe        = regexp.MustCompile(`(?m)^#[ \t]+(.*)$`)
	approachBulletRe = regexp.MustCompile(`(?m)^- (.*)$`)
	fenceRe          = regexp.MustCompile("(?s)```.*?```")

	codeBlockRes = map[Language]*regexp.Regexp{
		Python: codeBlockPattern(Python),
		Cpp:    codeBlockPattern(Cpp),
	}
	complexityRes = map[ComplexityKind]*regexp.Regexp{
		TimeComplexity:  complexityPattern(TimeComplexity),
		SpaceComplexity: complexityPattern(SpaceComplexity),
	}
)

func codeBlockPattern(lang Language) *regexp.Regexp {
	return regexp.MustCompile("(?s)```" + regexp.QuoteMeta(string(lang)) + `\s*(.*?)` + "```")
}

func complexityPattern(kind ComplexityKind) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(string(kind)) + ` complexity.*?O\(([^)]*)\)`)
}

// ParseAnalysis extracts every field of a ParsedAnalysis from one raw
// response. It never fails: missing sections fall back to their defaults.
func ParseAnalysis(raw string) model.ParsedAnalysis {
	analysis := model.ParsedAnalysis{
		ApproachBullets: ExtractApproachBullets(raw),
		PythonCode:      ExtractCodeBlock(raw, Python),
		CppCode:         ExtractCodeBlock(raw, Cpp),
		TimeComplexity:  ExtractComplexity(raw, TimeComplexity),
		SpaceComplexity: ExtractComplexity(raw, SpaceComplexity),
		Explanation:     BuildExplanation(StripCodeBlocks(raw)),
	}
	if heading, ok := ExtractHeading(raw); ok {
		analysis.Heading = &heading
	}
	return analysis
}

// ExtractHeading returns the first level-1 markdown heading.
func ExtractHeading(text string) (string, bool) {
	m := headingRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ExtractApproachBullets returns up to three top-level "- " bullets in
// document order.
func ExtractApproachBullets(text string) []model.ApproachBullet {
	matches := approachBulletRe.FindAllStringSubmatch(text, model.MaxApproachBullets)
	bullets := make([]model.ApproachBullet, 0, len(matches))
	for _, m := range matches {
		content := strings.TrimSpace(m[1])
		bullets = append(bullets, model.ApproachBullet{
			Text:      content,
			Important: strings.Contains(strings.ToLower(content), "important"),
		})
	}
	return bullets
}

// ExtractCodeBlock returns the body of the first fence tagged with lang, or
// an empty string. Later blocks of the same language are ignored.
func ExtractCodeBlock(text string, lang Language) string {
	re, ok := codeBlockRes[lang]
	if !ok {
		re = codeBlockPattern(lang)
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractComplexity finds the first O(...) after "<kind> complexity" on the
// same line. Returns model.DefaultComplexity when there is none.
func ExtractComplexity(text string, kind ComplexityKind) string {
	re, ok := complexityRes[kind]
	if !ok {
		re = complexityPattern(kind)
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return model.DefaultComplexity
	}
	return "O(" + m[1] + ")"
}

// StripCodeBlocks removes every fenced block regardless of language tag.
func StripCodeBlocks(text string) string {
	// Removing a block can join stray backticks into a new fence pair.
	for fenceRe.MatchString(text) {
		text = fenceRe.ReplaceAllString(text, "")
	}
	return text
}

// HasCodeBlock reports whether any complete fenced block remains in text.
func HasCodeBlock(text string) bool {
	return fenceRe.MatchString(text)
}
