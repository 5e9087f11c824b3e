package parser

import (
	"regexp"
	"strings"
)

var (
	quotedRe           = regexp.MustCompile(`"([^"]*)"`)
	transcriptPrefixRe = regexp.MustCompile(`(?i)^(transcription:|here's the transcription:|i heard:|audio transcription:)`)

	metaPhrases = []string{"transcription", "i cannot"}
)

// NormalizeTranscript is a best-effort cleanup of speech-to-text output.
// When the reply talks about itself ("transcription", "i cannot") the first
// quoted span is taken as the transcript; otherwise known boilerplate
// prefixes are stripped. The second return value reports whether such meta
// phrasing was seen. The result is a guess, not a guarantee.
func NormalizeTranscript(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)

	meta := false
	for _, phrase := range metaPhrases {
		if strings.Contains(lower, phrase) {
			meta = true
			break
		}
	}

	if meta {
		if m := quotedRe.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return strings.TrimSpace(transcriptPrefixRe.ReplaceAllString(text, "")), meta
}
