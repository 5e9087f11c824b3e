package parser

import (
	"regexp"
	"strings"

	"github.com/helmcode/interview-ai/pkg/model"
)

var (
	headerMarkerRe    = regexp.MustCompile(`(?m)^#+ `)
	explanationBullet = regexp.MustCompile(`(?m)^[*-] (.*)$`)
	paragraphBreakRe  = regexp.MustCompile(`\n\n+`)
)

// BuildExplanation splits code-free text into bullet points and paragraphs.
// When the text carries enough bullets to render a list, bullet lines are
// dropped from the paragraphs so they are not shown twice.
func BuildExplanation(stripped string) model.ParsedExplanation {
	text := strings.ReplaceAll(stripped, "\r\n", "\n")
	text = strings.TrimSpace(headerMarkerRe.ReplaceAllString(text, ""))

	explanation := model.ParsedExplanation{
		BulletPoints: []string{},
		Paragraphs:   []string{},
	}
	if text == "" {
		return explanation
	}

	for _, m := range explanationBullet.FindAllStringSubmatch(text, -1) {
		explanation.BulletPoints = append(explanation.BulletPoints, strings.TrimSpace(m[1]))
	}
	dropBullets := explanation.HasBulletList()

	for _, block := range paragraphBreakRe.Split(text, -1) {
		if dropBullets {
			block = withoutBulletLines(block)
		}
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		explanation.Paragraphs = append(explanation.Paragraphs, block)
	}
	return explanation
}

func withoutBulletLines(block string) string {
	lines := strings.Split(block, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if explanationBullet.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
