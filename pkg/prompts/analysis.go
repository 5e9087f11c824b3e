package prompts

import (
	"fmt"
	"strings"
)

// BuildAnalysisPrompt asks for the response shape the parser expects: a
// heading, three approach bullets, Python and C++ fences, complexity lines
// and an explanation list.
func BuildAnalysisPrompt(question string, imageCount int) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}
	if imageCount < 1 {
		return "", fmt.Errorf("at least one image is required")
	}

	return fmt.Sprintf(`%s

Analyze the code from %d image(s) and provide a detailed solution with:
1. A clear heading explaining the problem
2. 3 bullet points about the approach (mark important ones)
3. Python and C++ implementations with line-by-line comments
4. Time and space complexity analysis
5. Detailed explanation in 6 bullet points that I can discuss with an interviewer

Format the code properly for an interview setting.`, question, imageCount), nil
}

// InterviewTips are shown under every explanation.
var InterviewTips = []string{
	"Start with the brute force approach, then explain why your solution is more optimal",
	"Walk through a small example to demonstrate understanding of the algorithm",
	"Clearly state the time and space complexity and justify your analysis",
}
