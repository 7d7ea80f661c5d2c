// Package formatter is the line-oriented indentation planner (spec.md
// §4.7): it consumes the same AST Adapter the validator does and emits
// minimal, non-overlapping whitespace-only TextEdits that normalize
// continuation-line indentation and trim blank lines, touching nothing
// else.
package formatter

import (
	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// classification is the once-per-document line index spec.md §4.7
// builds before walking any target line.
type classification struct {
	// indented[line] is true for continuation lines of a multi-line
	// instruction, false for every instruction's first line.
	indented map[int]bool
	// skipped[line] is true for every continuation line, used only to
	// honor ignoreMultilineInstructions.
	skipped map[int]bool
	// heredocLines holds every line belonging to a heredoc body or its
	// delimiter, which formatting must never touch.
	heredocLines map[int]bool
}

func classify(doc *ast.Document) *classification {
	cl := &classification{
		indented:     map[int]bool{},
		skipped:      map[int]bool{},
		heredocLines: map[int]bool{},
	}

	for _, inst := range doc.Instructions {
		classifyInstruction(cl, inst)
	}

	return cl
}

func classifyInstruction(cl *classification, inst *ast.Instruction) {
	first := inst.Range.Start.Line
	last := inst.Range.End.Line
	for line := first + 1; line <= last; line++ {
		cl.indented[line] = true
		cl.skipped[line] = true
	}
	for _, h := range inst.Heredocs {
		for line := h.StartLine; line <= h.EndLine; line++ {
			cl.heredocLines[line] = true
		}
	}
}

// Format computes text edits for the whole document.
func Format(source []byte, opts settings.Formatter) []position.TextEdit {
	doc := ast.Parse(source)
	cl := classify(doc)
	pos := doc.Pos()
	return genEdits(pos, cl, opts, 0, pos.LineCount()-1)
}

// FormatRange computes text edits restricted to the lines r spans.
func FormatRange(source []byte, r position.Range, opts settings.Formatter) []position.TextEdit {
	doc := ast.Parse(source)
	cl := classify(doc)
	pos := doc.Pos()
	return genEdits(pos, cl, opts, r.Start.Line, r.End.Line)
}

func genEdits(pos *position.Map, cl *classification, opts settings.Formatter, startLine, endLine int) []position.TextEdit {
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= pos.LineCount() {
		endLine = pos.LineCount() - 1
	}

	unit := opts.IndentUnit()
	var edits []position.TextEdit
	for line := startLine; line <= endLine; line++ {
		if opts.IgnoreMultilineInstructions && cl.skipped[line] {
			continue
		}
		if cl.heredocLines[line] {
			continue
		}
		if e := lineEdit(pos, line, cl.indented[line], unit); e != nil {
			edits = append(edits, *e)
		}
	}
	return edits
}

// lineEdit implements spec.md §4.7's per-line walk: trim a blank line
// entirely, normalize a continuation line's leading whitespace to
// exactly one indentation unit, or strip all leading whitespace from a
// non-continuation line.
func lineEdit(pos *position.Map, line int, indented bool, unit string) *position.TextEdit {
	text := pos.LineText(line)
	j := 0
	for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
		j++
	}

	if j >= len(text) {
		if j > 0 {
			return &position.TextEdit{Range: lineColRange(line, 0, j), NewText: ""}
		}
		return nil
	}

	indentText := text[:j]
	if indented {
		if indentText != unit {
			return &position.TextEdit{Range: lineColRange(line, 0, j), NewText: unit}
		}
		return nil
	}
	if j > 0 {
		return &position.TextEdit{Range: lineColRange(line, 0, j), NewText: ""}
	}
	return nil
}

// lineColRange builds a same-line Range. startCol/endCol count bytes,
// which is safe here because leading whitespace is always ASCII.
func lineColRange(line, startCol, endCol int) position.Range {
	return position.Range{
		Start: position.Position{Line: line, Character: startCol},
		End:   position.Position{Line: line, Character: endCol},
	}
}
