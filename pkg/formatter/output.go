package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/interview-ai/pkg/model"
	"github.com/helmcode/interview-ai/pkg/parser"
	"github.com/helmcode/interview-ai/pkg/prompts"
)

type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHTML  Format = "html"
)

// ParseFormat accepts human, json, yaml or html. Empty means human.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHuman, nil
	case FormatHuman, FormatJSON, FormatYAML, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (human, json, yaml, html)", s)
	}
}

// Tab selects which part of an analysis the human format prints.
type Tab string

const (
	TabPython      Tab = "python"
	TabCpp         Tab = "cpp"
	TabExplanation Tab = "explanation"
	TabAll         Tab = "all"
)

func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TabAll, nil
	case "c++":
		return TabCpp, nil
	case TabPython, TabCpp, TabExplanation, TabAll:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tab %q (python, cpp, explanation, all)", s)
	}
}

// DisplayAnalysis formats and writes the analysis
func DisplayAnalysis(w io.Writer, analysis model.ParsedAnalysis, format Format, tab Tab) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, analysis)
	case FormatYAML:
		return displayYAML(w, analysis)
	case FormatHTML:
		_, err := io.WriteString(w, RenderPage(analysis.HeadingText(), RenderHTML(analysis)))
		return err
	case FormatHuman:
		fallthrough
	default:
		displayHuman(w, analysis, tab)
	}
	return nil
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// ANSIHighlighter marks inline code and vocabulary terms for the terminal.
var ANSIHighlighter = parser.Highlighter{
	Code: func(s string) string { return color.CyanString(s) },
	Term: func(s string) string { return color.New(color.FgYellow, color.Bold).Sprint(s) },
}

func displayHuman(w io.Writer, analysis model.ParsedAnalysis, tab Tab) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)

	if analysis.Heading != nil {
		cyan.Fprintf(w, "📘 %s\n\n", *analysis.Heading)
	}

	showCode := func(title, code string) {
		displayApproach(w, analysis.ApproachBullets)
		green.Fprintf(w, "💻 %s:\n", strings.ToUpper(title))
		if strings.TrimSpace(code) == "" {
			fmt.Fprintf(w, "   %s\n", color.HiBlackString("(no code found in the response)"))
		} else {
			fmt.Fprintln(w, indentCode(code, "   "))
		}
		fmt.Fprintln(w)
		displayComplexity(w, analysis)
	}

	if tab == TabPython || tab == TabAll || tab == "" {
		showCode("Python Solution", analysis.PythonCode)
	}
	if tab == TabCpp || tab == TabAll || tab == "" {
		showCode("C++ Solution", analysis.CppCode)
	}

	if tab == TabExplanation || tab == TabAll || tab == "" {
		white.Fprintln(w, "🗣  FOR INTERVIEWERS: SOLUTION EXPLANATION")
		displayExplanation(w, analysis.Explanation.Layout())

		yellow.Fprintln(w, "💡 INTERVIEW COMMUNICATION TIPS:")
		for i, tip := range prompts.InterviewTips {
			fmt.Fprintf(w, "   %d. %s\n", i+1, tip)
		}
		fmt.Fprintln(w)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Use --tab to show one section, or -o json|yaml|html for other output"))
}

func displayApproach(w io.Writer, bullets []model.ApproachBullet) {
	if len(bullets) == 0 {
		return
	}
	color.New(color.FgCyan, color.Bold).Fprintln(w, "🧭 APPROACH:")
	for _, b := range bullets {
		if b.Important {
			fmt.Fprintf(w, "   %s %s\n", getImportanceIcon(true), color.New(color.FgYellow, color.Bold).Sprint(b.Text))
			continue
		}
		fmt.Fprintf(w, "   %s %s\n", getImportanceIcon(false), b.Text)
	}
	fmt.Fprintln(w)
}

func displayComplexity(w io.Writer, analysis model.ParsedAnalysis) {
	fmt.Fprintf(w, "   Time Complexity:  %s\n", getComplexityColor(analysis.TimeComplexity).Sprint(analysis.TimeComplexity))
	fmt.Fprintf(w, "   Space Complexity: %s\n\n", getComplexityColor(analysis.SpaceComplexity).Sprint(analysis.SpaceComplexity))
}

func displayExplanation(w io.Writer, layout model.ExplanationLayout) {
	if layout.Intro != "" {
		fmt.Fprintln(w, wrapText(parser.HighlightTerms(layout.Intro, ANSIHighlighter), 80, "   "))
		fmt.Fprintln(w)
	}
	for _, b := range layout.Bullets {
		fmt.Fprintln(w, wrapText("• "+parser.HighlightTerms(b, ANSIHighlighter), 80, "   "))
	}
	if len(layout.Bullets) > 0 {
		fmt.Fprintln(w)
	}
	for _, p := range layout.Paragraphs {
		fmt.Fprintln(w, wrapText(parser.HighlightTerms(p, ANSIHighlighter), 80, "   "))
		fmt.Fprintln(w)
	}
}

// getComplexityColor grades a Big-O bound from green to red.
func getComplexityColor(complexity string) *color.Color {
	switch c := strings.ToLower(strings.ReplaceAll(complexity, " ", "")); c {
	case "o(1)", "o(logn)":
		return color.New(color.FgGreen, color.Bold)
	case "o(n)", "o(nlogn)", "o(n+m)", "o(m+n)":
		return color.New(color.FgYellow, color.Bold)
	default:
		if strings.ContainsAny(c, "^!") || strings.Contains(c, "n*n") {
			return color.New(color.FgRed, color.Bold)
		}
		return color.New(color.FgWhite, color.Bold)
	}
}

func getImportanceIcon(important bool) string {
	if important {
		return "⚡"
	}
	return "•"
}

func indentCode(code, indent string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
