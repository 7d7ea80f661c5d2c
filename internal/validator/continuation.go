package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// checkEmptyContinuationLine implements spec.md §4.5 step 6: for a
// multi-line instruction, any maximal run of whitespace-only lines
// (heredoc content excluded) is reported once, spanning from the first
// blank line's start to the start of the line after the last blank.
// ONBUILD instructions are skipped, so lines of their triggered
// instruction are never checked.
func checkEmptyContinuationLine(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	if strings.EqualFold(inst.Keyword, "ONBUILD") {
		return
	}

	pos := c.doc.Pos()
	start := inst.Range.Start.Line
	end := inst.Range.End.Line
	if end >= pos.LineCount() {
		end = pos.LineCount() - 1
	}

	runStart := -1
	flush := func(lastBlank int) {
		if runStart < 0 {
			return
		}
		r := position.Range{
			Start: position.Position{Line: runStart, Character: 0},
			End:   position.Position{Line: lastBlank + 1, Character: 0},
		}
		emit(diagnostic.New(r,
			sevOrDefault(c, settings.EmptyContinuationLine, diagnostic.Warning),
			diagnostic.EmptyContinuationLine,
			"empty continuation line").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		runStart = -1
	}

	prev := -1
	for line := start; line <= end; line++ {
		if inHeredocContent(inst, line) {
			continue
		}
		blank := strings.TrimSpace(pos.LineText(line)) == ""
		if blank {
			if runStart < 0 {
				runStart = line
			}
		} else {
			flush(prev)
		}
		prev = line
	}
	flush(prev)
}

func inHeredocContent(inst *ast.Instruction, line int) bool {
	for _, h := range inst.Heredocs {
		if h.EndLine <= h.StartLine {
			continue
		}
		if line >= h.StartLine && line < h.EndLine {
			return true
		}
	}
	return false
}
