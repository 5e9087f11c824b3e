package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTranscript(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantMeta bool
	}{
		{
			name:     "quoted transcript after meta phrasing",
			input:    `Here is the transcription: "find the longest substring"`,
			want:     "find the longest substring",
			wantMeta: true,
		},
		{
			name:     "refusal with quote",
			input:    `I cannot be fully sure, but it sounds like "reverse a linked list".`,
			want:     "reverse a linked list",
			wantMeta: true,
		},
		{
			name:     "meta prefix without quotes",
			input:    "Transcription: merge two sorted arrays",
			want:     "merge two sorted arrays",
			wantMeta: true,
		},
		{
			name:     "heard prefix",
			input:    "I heard: explain dynamic programming",
			want:     "explain dynamic programming",
			wantMeta: false,
		},
		{
			name:     "clean text untouched",
			input:    "  what is a heap  ",
			want:     "what is a heap",
			wantMeta: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := NormalizeTranscript(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}
