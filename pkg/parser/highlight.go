package parser

import (
	"regexp"
)

// HighlightVocabulary is applied in this order. Later terms may wrap text
// inside markup produced for earlier ones; nothing is escaped in between.
var HighlightVocabulary = []string{
	"time complexity",
	"space complexity",
	"O(",
	"optimal",
	"efficient",
	"important",
	"key insight",
	"crucial",
}

var (
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	termRes      = compileTerms(HighlightVocabulary)
)

func compileTerms(terms []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	}
	return res
}

// Highlighter supplies the markup wrapped around inline code spans and
// vocabulary terms.
type Highlighter struct {
	Code func(string) string
	Term func(string) string
}

// HTMLHighlighter emits the markup the HTML page styles.
var HTMLHighlighter = Highlighter{
	Code: func(s string) string { return "<code>" + s + "</code>" },
	Term: func(s string) string { return `<span class="highlight">` + s + "</span>" },
}

// HighlightTerms wraps inline code first, then each vocabulary term
// case-insensitively. The matched text keeps its original case.
func HighlightTerms(text string, h Highlighter) string {
	if h.Code != nil {
		text = inlineCodeRe.ReplaceAllStringFunc(text, func(m string) string {
			return h.Code(m[1 : len(m)-1])
		})
	}
	if h.Term == nil {
		return text
	}
	for _, re := range termRes {
		text = re.ReplaceAllStringFunc(text, h.Term)
	}
	return text
}
