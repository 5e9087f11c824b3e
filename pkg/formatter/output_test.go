package formatter

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/interview-ai/pkg/model"
	"github.com/helmcode/interview-ai/pkg/parser"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const twoSum = "# Two Sum\n- use a hash map\n- important: O(n) time\n- handle duplicates\n```python\ndef f(): pass\n```\n```cpp\nint f() { return 0; }\n```\ntime complexity is O(n).\n\n* one\n* two\n* three\n"

func sampleAnalysis() model.ParsedAnalysis {
	return parser.ParseAnalysis(twoSum)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatHuman},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: " html ", want: FormatHTML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseTab(t *testing.T) {
	got, err := ParseTab("C++")
	require.NoError(t, err)
	assert.Equal(t, TabCpp, got)

	got, err = ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAll, got)

	_, err = ParseTab("java")
	assert.Error(t, err)
}

func TestDisplayAnalysis_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sampleAnalysis(), FormatJSON, TabAll))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Two Sum", out["heading"])
	assert.Equal(t, "O(n)", out["time_complexity"])
	assert.Len(t, out["approach_bullets"], 3)
}

func TestDisplayAnalysis_JSONNullHeading(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, parser.ParseAnalysis(""), FormatJSON, TabAll))
	assert.Contains(t, buf.String(), `"heading": null`)
}

func TestDisplayAnalysis_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sampleAnalysis(), FormatYAML, TabAll))

	var out model.ParsedAnalysis
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Two Sum", out.HeadingText())
	assert.Equal(t, "def f(): pass\n", out.PythonCode)
}

func TestDisplayAnalysis_Human(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sampleAnalysis(), FormatHuman, TabAll))
	out := buf.String()

	assert.Contains(t, out, "Two Sum")
	assert.Contains(t, out, "APPROACH:")
	assert.Contains(t, out, "⚡ important: O(n) time")
	assert.Contains(t, out, "PYTHON SOLUTION:")
	assert.Contains(t, out, "   def f(): pass")
	assert.Contains(t, out, "C++ SOLUTION:")
	assert.Contains(t, out, "Time Complexity:  O(n)")
	assert.Contains(t, out, "• one")
	assert.Contains(t, out, "INTERVIEW COMMUNICATION TIPS:")
	assert.Contains(t, out, "Start with the brute force approach")
}

func TestDisplayAnalysis_HumanSingleTab(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sampleAnalysis(), FormatHuman, TabCpp))
	out := buf.String()

	assert.Contains(t, out, "C++ SOLUTION:")
	assert.NotContains(t, out, "PYTHON SOLUTION:")
	assert.NotContains(t, out, "INTERVIEW COMMUNICATION TIPS:")
}

func TestDisplayAnalysis_HumanMissingCode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, parser.ParseAnalysis(""), FormatHuman, TabPython))
	assert.Contains(t, buf.String(), "(no code found in the response)")
	assert.NotContains(t, buf.String(), "APPROACH:")
}

func TestDisplayAnalysis_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sampleAnalysis(), FormatHTML, TabAll))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Two Sum</title>")
	assert.Contains(t, out, `<div class="analysis-container">`)
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 12, "  ")
	assert.Equal(t, "  one two\n  three four", got)

	assert.Equal(t, "  a\n\n  b", wrapText("a\n\nb", 80, "  "))
}

func TestIndentCode(t *testing.T) {
	assert.Equal(t, "  a\n    b", indentCode("a\n  b\n", "  "))
}
