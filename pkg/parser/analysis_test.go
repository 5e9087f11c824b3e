package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/interview-ai/pkg/model"
)

const twoSumResponse = "# Two Sum\n- use a hash map\n- important: O(n) time\n- handle duplicates\n```python\ndef f(): pass\n```\ntime complexity is O(n)."

func TestParseAnalysis_TwoSum(t *testing.T) {
	a := ParseAnalysis(twoSumResponse)

	require.NotNil(t, a.Heading)
	assert.Equal(t, "Two Sum", *a.Heading)

	require.Len(t, a.ApproachBullets, 3)
	assert.Equal(t, model.ApproachBullet{Text: "use a hash map"}, a.ApproachBullets[0])
	assert.Equal(t, model.ApproachBullet{Text: "important: O(n) time", Important: true}, a.ApproachBullets[1])
	assert.Equal(t, model.ApproachBullet{Text: "handle duplicates"}, a.ApproachBullets[2])

	assert.Equal(t, "def f(): pass\n", a.PythonCode)
	assert.Equal(t, "", a.CppCode)
	assert.Equal(t, "O(n)", a.TimeComplexity)
	assert.Equal(t, model.DefaultComplexity, a.SpaceComplexity)

	assert.Equal(t, []string{"use a hash map", "important: O(n) time", "handle duplicates"}, a.Explanation.BulletPoints)
	assert.Equal(t, []string{"Two Sum", "time complexity is O(n)."}, a.Explanation.Paragraphs)
}

func TestParseAnalysis_Empty(t *testing.T) {
	a := ParseAnalysis("")

	assert.Nil(t, a.Heading)
	assert.Empty(t, a.ApproachBullets)
	assert.Empty(t, a.PythonCode)
	assert.Empty(t, a.CppCode)
	assert.Equal(t, model.DefaultComplexity, a.TimeComplexity)
	assert.Equal(t, model.DefaultComplexity, a.SpaceComplexity)
	assert.Empty(t, a.Explanation.BulletPoints)
	assert.Empty(t, a.Explanation.Paragraphs)
}

func TestExtractHeading(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"first line", "# Binary Search\nbody", "Binary Search", true},
		{"later line", "intro\n#   Merge Intervals  \nmore", "Merge Intervals", true},
		{"first of many", "# One\n# Two", "One", true},
		{"level two ignored", "## Details\ntext", "", false},
		{"no space after hash", "#hashtag", "", false},
		{"bare hash before a bullet", "#\n- first bullet\nbody", "", false},
		{"bare hash then a heading", "#\n# Two Sum", "Two Sum", true},
		{"tab separator", "#\tLRU Cache", "LRU Cache", true},
		{"crlf line ending", "# Valid Anagram\r\nbody", "Valid Anagram", true},
		{"indented ignored", "  # Not a heading", "", false},
		{"none", "plain text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractHeading(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractApproachBullets(t *testing.T) {
	t.Run("caps at three in document order", func(t *testing.T) {
		text := "- one\n- two\n- three\n- four"
		bullets := ExtractApproachBullets(text)
		require.Len(t, bullets, 3)
		assert.Equal(t, "one", bullets[0].Text)
		assert.Equal(t, "three", bullets[2].Text)
	})

	t.Run("skips double dash, nested and star bullets", func(t *testing.T) {
		text := "-- flag\n  - nested\n* star\n- real"
		bullets := ExtractApproachBullets(text)
		require.Len(t, bullets, 1)
		assert.Equal(t, "real", bullets[0].Text)
	})

	t.Run("important is case insensitive", func(t *testing.T) {
		bullets := ExtractApproachBullets("- IMPORTANT: sort first\n- Not so Important\n- plain")
		require.Len(t, bullets, 3)
		assert.True(t, bullets[0].Important)
		assert.True(t, bullets[1].Important)
		assert.False(t, bullets[2].Important)
	})

	t.Run("trims whitespace and carriage returns", func(t *testing.T) {
		bullets := ExtractApproachBullets("-   padded   \r\n")
		require.Len(t, bullets, 1)
		assert.Equal(t, "padded", bullets[0].Text)
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, ExtractApproachBullets("no bullets here"))
	})
}

func TestExtractCodeBlock(t *testing.T) {
	text := "```cpp\nint main() {}\n```\n```python\nprint(1)\n```\n```python\nprint(2)\n```"

	assert.Equal(t, "print(1)\n", ExtractCodeBlock(text, Python))
	assert.Equal(t, "int main() {}\n", ExtractCodeBlock(text, Cpp))

	inputs := []string{
		"",
		"```\nuntagged\n```",
		"```java\nclass A {}\n```",
		"```python\nunterminated",
		"just words",
	}
	for _, in := range inputs {
		assert.Equal(t, "", ExtractCodeBlock(in, Cpp), "input %q", in)
	}
	assert.Equal(t, "", ExtractCodeBlock(inputs[3], Python))
}

func TestExtractComplexity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ComplexityKind
		want  string
	}{
		{"time", "Time Complexity: O(log n)", TimeComplexity, "O(log n)"},
		{"time upper", "TIME COMPLEXITY: O(log n)", TimeComplexity, "O(log n)"},
		{"time lower o", "time complexity: o(log n)", TimeComplexity, "O(log n)"},
		{"space", "The space complexity here is O(1) since...", SpaceComplexity, "O(1)"},
		{"lazy first match", "time complexity is O(n) not O(n^2)", TimeComplexity, "O(n)"},
		{"phrase before bound only", "O(n^2) time complexity", TimeComplexity, model.DefaultComplexity},
		{"must share a line", "time complexity\nO(n)", TimeComplexity, model.DefaultComplexity},
		{"absent", "nothing here", SpaceComplexity, model.DefaultComplexity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractComplexity(tt.input, tt.kind))
		})
	}
}

func TestStripCodeBlocks(t *testing.T) {
	inputs := []string{
		twoSumResponse,
		"a ```x``` b ```y``` c",
		"```python\nx\n```\nprose\n```\nopen fence",
		"``````",
		"`` ```inner``` `",
		"```` nested ```` fences ```",
	}

	for _, in := range inputs {
		out := StripCodeBlocks(in)
		assert.False(t, HasCodeBlock(out), "fences left in %q -> %q", in, out)
	}

	assert.Equal(t, "a  b  c", StripCodeBlocks("a ```x``` b ```y``` c"))
	assert.False(t, strings.Contains(StripCodeBlocks(twoSumResponse), "def f"))
}
