package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExplanation(t *testing.T) {
	t.Run("few bullets stay inside paragraphs", func(t *testing.T) {
		text := "## Overview\nWe scan once.\n\n- keep a map\n- check complement\n\nDone."
		e := BuildExplanation(text)

		assert.Len(t, e.BulletPoints, 2)
		assert.False(t, e.HasBulletList())
		assert.Equal(t, []string{"Overview\nWe scan once.", "- keep a map\n- check complement", "Done."}, e.Paragraphs)

		layout := e.Layout()
		assert.Empty(t, layout.Intro)
		assert.Empty(t, layout.Bullets)
		assert.Equal(t, e.Paragraphs, layout.Paragraphs)
	})

	t.Run("enough bullets render as a list", func(t *testing.T) {
		text := "Intro line.\n\n- a\n* b\n- c\n\nMiddle.\n\nOutro."
		e := BuildExplanation(text)

		assert.Equal(t, []string{"a", "b", "c"}, e.BulletPoints)
		assert.Equal(t, []string{"Intro line.", "Middle.", "Outro."}, e.Paragraphs)

		layout := e.Layout()
		assert.Equal(t, "Intro line.", layout.Intro)
		assert.Equal(t, []string{"a", "b", "c"}, layout.Bullets)
		assert.Equal(t, []string{"Middle.", "Outro."}, layout.Paragraphs)
	})

	t.Run("list capped at six", func(t *testing.T) {
		text := "Intro\n\n- 1\n- 2\n- 3\n- 4\n- 5\n- 6\n- 7\n- 8"
		e := BuildExplanation(text)

		require.Len(t, e.BulletPoints, 8)
		assert.Len(t, e.Layout().Bullets, 6)
	})

	t.Run("bullets mixed into a paragraph", func(t *testing.T) {
		text := "Steps:\n- one\n- two\n- three\nThat is all."
		e := BuildExplanation(text)

		assert.Equal(t, []string{"Steps:\nThat is all."}, e.Paragraphs)
	})

	t.Run("empty", func(t *testing.T) {
		e := BuildExplanation("   \n\n ")
		assert.Empty(t, e.BulletPoints)
		assert.Empty(t, e.Paragraphs)
		assert.NotNil(t, e.Paragraphs)
	})

	t.Run("crlf paragraphs", func(t *testing.T) {
		e := BuildExplanation("first\r\n\r\nsecond")
		assert.Equal(t, []string{"first", "second"}, e.Paragraphs)
	})
}

func TestBuildExplanation_FewerThanThreeBulletsNeverLists(t *testing.T) {
	inputs := []string{
		"",
		"plain prose only",
		"- single",
		"- one\n\n* two",
		"text\n\n- one\n- two\n\nmore text",
	}
	for _, in := range inputs {
		layout := BuildExplanation(in).Layout()
		assert.Empty(t, layout.Bullets, "input %q", in)
		assert.Empty(t, layout.Intro, "input %q", in)
	}
}
