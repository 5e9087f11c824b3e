package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightTerms_HTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline code",
			input: "call `twoSum` once",
			want:  "call <code>twoSum</code> once",
		},
		{
			name:  "keeps original case",
			input: "This is Optimal and EFFICIENT",
			want:  `This is <span class="highlight">Optimal</span> and <span class="highlight">EFFICIENT</span>`,
		},
		{
			name:  "big o",
			input: "runs in O(n)",
			want:  `runs in <span class="highlight">O(</span>n)`,
		},
		{
			name:  "every occurrence",
			input: "crucial, really crucial",
			want:  `<span class="highlight">crucial</span>, really <span class="highlight">crucial</span>`,
		},
		{
			name:  "no terms",
			input: "nothing to see",
			want:  "nothing to see",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightTerms(tt.input, HTMLHighlighter))
		})
	}
}

func TestHighlightTerms_OrderAllowsNesting(t *testing.T) {
	// "O(" is applied after "time complexity", so it wraps text that sits
	// beside an earlier span rather than being escaped.
	got := HighlightTerms("Time complexity O(1) is optimal", HTMLHighlighter)
	want := `<span class="highlight">Time complexity</span> <span class="highlight">O(</span>1) is <span class="highlight">optimal</span>`
	assert.Equal(t, want, got)

	bracket := Highlighter{
		Term: func(s string) string { return "[" + s + "]" },
	}
	assert.Equal(t, "[key insight]: [important]", HighlightTerms("key insight: important", bracket))
	assert.Equal(t, "`kept`", HighlightTerms("`kept`", bracket))
}
