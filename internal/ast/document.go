// Package ast is the AST Adapter: the minimal read-only view the validator
// and formatter require from a parsed Dockerfile. It is built on top of
// BuildKit's recipe parser (github.com/moby/buildkit/frontend/dockerfile/parser),
// the external "recipe parser" collaborator spec.md's non-goals name — this
// package never re-implements escape-continuation joining or directive
// resolution from scratch; it only derives the finer-grained sub-ranges
// (flag values, JSON string spans, variable occurrences, image tag/digest
// spans) that BuildKit's raw node tree does not carry, by re-scanning the
// relevant source span through internal/position.
package ast

import (
	"bytes"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"

	"github.com/wharflab/dockerfile-utils/internal/position"
)

// Document is the parsed, read-only view of one Dockerfile.
type Document struct {
	pos *position.Map

	// Escape is the active escape character: '\\' by default, '`' if a
	// parser directive overrides it.
	Escape rune

	Directives   []Directive
	Comments     []Comment
	Instructions []*Instruction
}

// Pos returns the coordinate/text facade backing this document.
func (d *Document) Pos() *position.Map {
	return d.pos
}

// Parse builds a Document from raw Dockerfile source text.
//
// A malformed document degrades gracefully rather than failing: if the
// underlying parser cannot make sense of the input, Parse returns a
// Document that keeps the leading directives and comments but has no
// instructions, so the validator reports NO_SOURCE_IMAGE and no
// instruction-level diagnostics.
func Parse(source []byte) *Document {
	pos := position.New(source)
	doc := &Document{pos: pos, Escape: '\\'}

	doc.Directives, doc.Comments = scanLeadingDirectivesAndComments(pos)
	for _, dir := range doc.Directives {
		if strings.EqualFold(dir.Name, "escape") {
			if r := []rune(dir.Value); len(r) == 1 {
				doc.Escape = r[0]
			}
		}
	}

	result, err := parser.Parse(bytes.NewReader(source))
	if err != nil || result == nil || result.AST == nil {
		return doc
	}
	if result.EscapeToken != 0 {
		doc.Escape = result.EscapeToken
	}

	doc.Comments = append(doc.Comments, scanStandaloneComments(pos, doc.Directives)...)

	builder := &instructionBuilder{pos: pos, escape: doc.Escape}
	for _, n := range result.AST.Children {
		doc.Instructions = append(doc.Instructions, builder.build(n))
	}

	return doc
}

// scanLeadingDirectivesAndComments scans the run of comment/blank lines at
// the very top of the document (parser directives only have effect there,
// per spec.md's GLOSSARY) and splits them into parser directives
// (`# key=value`) and plain comments.
func scanLeadingDirectivesAndComments(pos *position.Map) ([]Directive, []Comment) {
	var directives []Directive
	var comments []Comment

	for line := 0; line < pos.LineCount(); line++ {
		text := pos.LineText(line)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			break
		}
		if !strings.HasPrefix(trimmed, "#") {
			break
		}

		body := strings.TrimPrefix(trimmed, "#")
		name, value, ok := splitDirective(body)
		if !ok {
			comments = append(comments, newComment(pos, line, text))
			continue
		}

		nameStart := strings.Index(text, "#") + 1
		for nameStart < len(text) && (text[nameStart] == ' ' || text[nameStart] == '\t') {
			nameStart++
		}
		nameEnd := nameStart + len(name)
		eq := strings.Index(text[nameEnd:], "=")
		valueStart := nameEnd + eq + 1
		for valueStart < len(text) && (text[valueStart] == ' ' || text[valueStart] == '\t') {
			valueStart++
		}
		valueEnd := valueStart + len(strings.TrimSpace(value))

		directives = append(directives, Directive{
			Name:      name,
			Value:     value,
			NameRange: lineColRange(line, nameStart, nameEnd),
			ValueRange: lineColRange(line, valueStart, valueEnd),
		})
	}

	return directives, comments
}

// splitDirective parses the body of a comment (without the leading '#')
// as a `key=value` parser directive. The key must be a run of letters,
// digits or underscores (optionally surrounded by whitespace) followed
// by '='.
func splitDirective(body string) (name, value string, ok bool) {
	trimmed := strings.TrimLeft(body, " \t")
	i := 0
	for i < len(trimmed) && isDirectiveNameByte(trimmed[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	name = trimmed[:i]
	rest := strings.TrimLeft(trimmed[i:], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	value = strings.TrimSpace(strings.TrimSpace(rest[1:]))
	return name, value, true
}

func isDirectiveNameByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func lineColRange(line, startCol, endCol int) position.Range {
	return position.Range{
		Start: position.Position{Line: line, Character: startCol},
		End:   position.Position{Line: line, Character: endCol},
	}
}

func newComment(pos *position.Map, line int, text string) Comment {
	trimmed := strings.TrimSpace(text)
	startCol := strings.Index(text, "#")
	if startCol < 0 {
		startCol = 0
	}
	return Comment{
		Line:  line,
		Text:  trimmed,
		Range: lineColRange(line, startCol, startCol+len(trimmed)),
	}
}

// scanStandaloneComments finds every comment-only line that is not a
// leading parser directive, so that every '#' line in the document is
// visible to the ignore-comment suppression mechanism (spec.md §4.5
// step 8).
func scanStandaloneComments(pos *position.Map, leading []Directive) []Comment {
	consumed := map[int]bool{}
	for _, d := range leading {
		consumed[d.NameRange.Start.Line] = true
	}

	var comments []Comment
	for line := 0; line < pos.LineCount(); line++ {
		if consumed[line] {
			continue
		}
		trimmed := strings.TrimSpace(pos.LineText(line))
		if strings.HasPrefix(trimmed, "#") {
			comments = append(comments, newComment(pos, line, pos.LineText(line)))
		}
	}
	return comments
}

func walkComments(n *parser.Node, consumed map[int]bool) {
	if n == nil {
		return
	}
	if len(n.PrevComment) > 0 {
		first := n.StartLine - len(n.PrevComment)
		for i := range n.PrevComment {
			consumed[first+i] = true
		}
	}
	for _, c := range n.Children {
		walkComments(c, consumed)
	}
}

// Keyword returns the keyword text at a given zero-based line, scanning
// from the start of the line. Used by the instruction builder and by
// callers that need the raw (non-lowercased) keyword casing.
func keywordOnLine(pos *position.Map, line int) (text string, startCol, endCol int) {
	s := pos.LineText(line)
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	j := i
	for j < len(s) && s[j] != ' ' && s[j] != '\t' {
		j++
	}
	return s[i:j], i, j
}
