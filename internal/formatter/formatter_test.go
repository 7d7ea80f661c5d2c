package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

func TestFormat_TrimsBlankLine(t *testing.T) {
	t.Parallel()
	src := []byte("FROM scratch\n   \nRUN echo hi\n")
	edits := Format(src, settings.Formatter{InsertSpaces: true, TabSize: 4})

	var found bool
	for _, e := range edits {
		if e.Range.Start.Line == 1 && e.NewText == "" {
			found = true
		}
	}
	assert.True(t, found, "expected an edit trimming the blank line")
}

func TestFormat_NormalizesContinuationIndent(t *testing.T) {
	t.Parallel()
	src := []byte("RUN echo a && \\\n  echo b\n")
	edits := Format(src, settings.Formatter{InsertSpaces: false})

	var found *position.TextEdit
	for i := range edits {
		if edits[i].Range.Start.Line == 1 {
			found = &edits[i]
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, "\t", found.NewText)
	}
}

func TestFormat_StripsNonContinuationIndent(t *testing.T) {
	t.Parallel()
	src := []byte("FROM scratch\n  RUN echo hi\n")
	edits := Format(src, settings.Formatter{InsertSpaces: true, TabSize: 2})

	var found *position.TextEdit
	for i := range edits {
		if edits[i].Range.Start.Line == 1 {
			found = &edits[i]
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, "", found.NewText)
	}
}

func TestFormat_SkipsHeredocContent(t *testing.T) {
	t.Parallel()
	src := []byte("RUN <<EOF\n  keep this indent\nEOF\n")
	edits := Format(src, settings.Formatter{InsertSpaces: true, TabSize: 4})

	for _, e := range edits {
		assert.NotEqual(t, 1, e.Range.Start.Line, "heredoc body line must not be edited")
	}
}

func TestFormatRange_RestrictsToGivenLines(t *testing.T) {
	t.Parallel()
	src := []byte("FROM scratch\n  RUN a\n  RUN b\n")
	r := position.Range{
		Start: position.Position{Line: 1, Character: 0},
		End:   position.Position{Line: 1, Character: 0},
	}
	edits := FormatRange(src, r, settings.Formatter{InsertSpaces: true, TabSize: 2})

	for _, e := range edits {
		assert.Equal(t, 1, e.Range.Start.Line)
	}
}

func TestFormat_IgnoreMultilineInstructions(t *testing.T) {
	t.Parallel()
	src := []byte("RUN echo a && \\\n  echo b\n")
	edits := Format(src, settings.Formatter{InsertSpaces: true, TabSize: 4, IgnoreMultilineInstructions: true})

	for _, e := range edits {
		assert.NotEqual(t, 1, e.Range.Start.Line)
	}
}
