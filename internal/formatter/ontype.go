package formatter

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// FormatOnType implements spec.md §4.7's format-on-type behavior: typing
// the active escape character at the end of an instruction line (only
// whitespace follows to end-of-line, and the cursor is not inside a
// comment or parser directive) schedules exactly the next line for
// indentation as a continuation line.
func FormatOnType(source []byte, p position.Position, typedChar rune, opts settings.Formatter) []position.TextEdit {
	doc := ast.Parse(source)
	if typedChar != doc.Escape {
		return nil
	}
	if inCommentOrDirective(doc, p) {
		return nil
	}

	pos := doc.Pos()
	lineEnd := position.Position{Line: p.Line, Character: len(pos.Line(p.Line))}
	suffix := pos.Slice(position.Range{Start: p, End: lineEnd})
	if strings.TrimSpace(suffix) != "" {
		return nil
	}

	nextLine := p.Line + 1
	if nextLine >= pos.LineCount() {
		return nil
	}

	cl := classify(doc)
	if cl.heredocLines[nextLine] {
		return nil
	}

	if e := lineEdit(pos, nextLine, true, opts.IndentUnit()); e != nil {
		return []position.TextEdit{*e}
	}
	return nil
}

func inCommentOrDirective(doc *ast.Document, p position.Position) bool {
	for _, cm := range doc.Comments {
		if cm.Line == p.Line {
			return true
		}
	}
	for _, d := range doc.Directives {
		if d.NameRange.Start.Line == p.Line {
			return true
		}
	}
	return false
}
