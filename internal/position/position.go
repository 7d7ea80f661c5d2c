// Package position provides the coordinate and text facade shared by the
// validator and the formatter: conversions between byte offsets and
// (line, character) positions, and range-based text slicing.
//
// Line endings are handled the way an editor would: "\n", "\r" and "\r\n"
// each count as exactly one line terminator, and the terminator itself is
// never part of the preceding line's content. Character offsets count
// UTF-16 code units, matching the LSP convention consumers (editor
// integrations) expect.
package position

import "unicode/utf16"

// Position is a zero-based line/character coordinate. Character is
// measured in UTF-16 code units.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// Range is a half-open-by-column, inclusive-by-line span: [Start, End).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Map is the coordinate and text facade over one document's source text.
// It precomputes each line's UTF-16 units and starting byte offset once,
// at construction; PositionAt finds its line by a linear scan over the
// line offsets.
type Map struct {
	source []byte

	// lines holds each line's content, decoded to UTF-16 once, with line
	// terminators stripped.
	lines [][]uint16

	// byteOffsets[i] is the byte offset in source where line i begins.
	byteOffsets []int
}

// New builds a Map from raw document bytes.
func New(source []byte) *Map {
	m := &Map{source: source}

	start := 0
	for i := 0; i <= len(source); i++ {
		if i == len(source) {
			m.appendLine(source[start:i], start)
			break
		}
		switch source[i] {
		case '\n':
			m.appendLine(source[start:i], start)
			start = i + 1
		case '\r':
			m.appendLine(source[start:i], start)
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}

	return m
}

func (m *Map) appendLine(b []byte, byteOffset int) {
	m.lines = append(m.lines, utf16.Encode([]rune(string(b))))
	m.byteOffsets = append(m.byteOffsets, byteOffset)
}

// LineCount returns the number of lines in the document.
func (m *Map) LineCount() int {
	return len(m.lines)
}

// Line returns the UTF-16 units of the given zero-based line, or nil if
// the line is out of range.
func (m *Map) Line(line int) []uint16 {
	if line < 0 || line >= len(m.lines) {
		return nil
	}
	return m.lines[line]
}

// LineText returns the given zero-based line's text (without terminator).
func (m *Map) LineText(line int) string {
	return string(utf16.Decode(m.Line(line)))
}

// PositionAt converts a byte offset into a Position.
func (m *Map) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	line := 0
	for line+1 < len(m.byteOffsets) && m.byteOffsets[line+1] <= offset {
		line++
	}
	lineBytes := offset - m.byteOffsets[line]
	if lineBytes < 0 {
		lineBytes = 0
	}
	// Re-decode the prefix of the line up to lineBytes to count UTF-16 units.
	lineStart := m.byteOffsets[line]
	end := lineStart + lineBytes
	if end > len(m.source) {
		end = len(m.source)
	}
	if end < lineStart {
		end = lineStart
	}
	prefix := utf16.Encode([]rune(string(m.source[lineStart:end])))
	return Position{Line: line, Character: len(prefix)}
}

// OffsetAt converts a Position into a byte offset into the source.
func (m *Map) OffsetAt(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(m.lines) {
		return len(m.source)
	}
	units := m.lines[p.Line]
	character := p.Character
	if character < 0 {
		character = 0
	}
	if character > len(units) {
		character = len(units)
	}
	byteLen := len(string(utf16.Decode(units[:character])))
	return m.byteOffsets[p.Line] + byteLen
}

// Slice returns the text covered by r.
func (m *Map) Slice(r Range) string {
	start := m.OffsetAt(r.Start)
	end := m.OffsetAt(r.End)
	if end < start {
		end = start
	}
	if start < 0 {
		start = 0
	}
	if end > len(m.source) {
		end = len(m.source)
	}
	return string(m.source[start:end])
}

// Source returns the raw document bytes.
func (m *Map) Source() []byte {
	return m.source
}

// TextEdit replaces the text covered by Range with NewText; an empty
// NewText denotes deletion.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}
