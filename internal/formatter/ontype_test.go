package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

func TestFormatOnType_SchedulesNextLineIndent(t *testing.T) {
	t.Parallel()
	src := []byte("RUN echo a \\\n  echo b\n")
	p := position.Position{Line: 0, Character: 12}
	edits := FormatOnType(src, p, '\\', settings.Formatter{InsertSpaces: false})

	if assert.Len(t, edits, 1) {
		assert.Equal(t, 1, edits[0].Range.Start.Line)
		assert.Equal(t, "\t", edits[0].NewText)
	}
}

func TestFormatOnType_IgnoresNonEscapeChar(t *testing.T) {
	t.Parallel()
	src := []byte("RUN echo a x\n  echo b\n")
	p := position.Position{Line: 0, Character: 12}
	edits := FormatOnType(src, p, 'x', settings.Formatter{InsertSpaces: false})
	assert.Empty(t, edits)
}

func TestFormatOnType_IgnoresWhenNotAtLineEnd(t *testing.T) {
	t.Parallel()
	src := []byte("RUN echo a \\ trailing\n  echo b\n")
	p := position.Position{Line: 0, Character: 12}
	edits := FormatOnType(src, p, '\\', settings.Formatter{InsertSpaces: false})
	assert.Empty(t, edits)
}

func TestFormatOnType_IgnoresInsideComment(t *testing.T) {
	t.Parallel()
	src := []byte("# a comment \\\nFROM scratch\n")
	p := position.Position{Line: 0, Character: 13}
	edits := FormatOnType(src, p, '\\', settings.Formatter{InsertSpaces: false})
	assert.Empty(t, edits)
}
