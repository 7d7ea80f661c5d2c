package ast

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"

	"github.com/wharflab/dockerfile-utils/internal/position"
)

// instructionBuilder converts BuildKit's raw parser.Node tree into the
// ast.Instruction view. It only relies on BuildKit for instruction
// boundaries (StartLine/EndLine) and the raw flag text list — heredoc
// markers and everything column-precise is derived locally by re-scanning the source through
// internal/position, the same layering the teacher's sourcemap/directive
// packages use for metadata the parser doesn't expose directly.
type instructionBuilder struct {
	pos    *position.Map
	escape rune
}

func (b *instructionBuilder) build(n *parser.Node) *Instruction {
	if n == nil {
		return nil
	}
	start0 := n.StartLine - 1
	end0 := n.EndLine - 1
	if start0 < 0 {
		start0 = 0
	}
	if end0 < start0 {
		end0 = start0
	}

	kwText, kwStartCol, kwEndCol := keywordOnLine(b.pos, start0)
	inst := &Instruction{
		Keyword:      kwText,
		KeywordRange: lineColRange(start0, kwStartCol, kwEndCol),
	}
	lastLineText := b.pos.LineText(end0)
	inst.Range = position.Range{
		Start: inst.KeywordRange.Start,
		End:   position.Position{Line: end0, Character: utf16Len(lastLineText)},
	}

	cursor := newLineCursor(b.pos, start0)
	cursor.byteCol = kwEndCol

	for _, raw := range n.Flags {
		r, ok := cursor.find(raw, end0)
		if !ok {
			continue
		}
		inst.Flags = append(inst.Flags, buildFlag(raw, r))
	}

	b.buildBody(inst, cursor, end0)

	if strings.EqualFold(kwText, "onbuild") {
		inst.Trigger = b.buildTrigger(inst, end0)
	}
	if strings.EqualFold(kwText, "from") {
		inst.From = buildFromRefs(inst)
	}

	return inst
}

// buildBody tokenizes everything after the keyword and flags: either a
// JSON-form argument array, or whitespace-separated raw arguments, with
// heredoc regions carved out of the latter.
func (b *instructionBuilder) buildBody(inst *Instruction, cursor *lineCursor, end0 int) {
	line, col := skipWhitespace(b.pos, cursor.line, cursor.byteCol, end0)
	if line < 0 {
		return
	}
	text := b.pos.LineText(line)
	if col < len(text) && text[col] == '[' {
		// Only a list that reaches its closing bracket is JSON form;
		// anything else (e.g. single-quoted elements) is tokenized as
		// raw arguments below.
		if form := buildJSONForm(b.pos, line, col, end0); form.CloseBracket != (position.Range{}) {
			inst.JSON = form
			return
		}
	}

	var heredocs []HeredocRegion
	words := tokenizeWords(b.pos, line, col, end0, func(w word) (string, bool, bool) {
		delim, chomp, ok := heredocMarkerName(w)
		if !ok {
			return "", false, false
		}
		region := HeredocRegion{
			Delimiter:      delim,
			DelimiterRange: w.rng,
			StartLine:      w.rng.Start.Line + 1,
		}
		endLine := region.StartLine
		for endLine <= end0 && endLine < b.pos.LineCount() {
			candidate := strings.TrimSpace(b.pos.LineText(endLine))
			trimmed := candidate
			if chomp {
				trimmed = strings.TrimLeft(b.pos.LineText(endLine), " \t")
				trimmed = strings.TrimRight(trimmed, " \t")
			}
			if trimmed == delim {
				break
			}
			endLine++
		}
		region.EndLine = endLine
		if region.EndLine > region.StartLine {
			region.ContentRange = position.Range{
				Start: position.Position{Line: region.StartLine, Character: 0},
				End:   position.Position{Line: region.EndLine - 1, Character: utf16Len(b.pos.LineText(region.EndLine - 1))},
			}
		}
		heredocs = append(heredocs, region)
		return delim, chomp, true
	})

	for _, w := range words {
		inst.Arguments = append(inst.Arguments, Argument{Value: w.text, Range: w.rng, Quote: w.quote})
	}
	inst.Heredocs = heredocs
}

// skipWhitespace advances (line, col) past whitespace and blank lines,
// returning line=-1 if it runs off the end of the instruction.
func skipWhitespace(pos *position.Map, line, col, end0 int) (int, int) {
	for line <= end0 && line < pos.LineCount() {
		text := pos.LineText(line)
		for col < len(text) && (text[col] == ' ' || text[col] == '\t') {
			col++
		}
		if col < len(text) {
			return line, col
		}
		line++
		col = 0
	}
	return -1, 0
}

func buildFlag(raw string, r position.Range) Flag {
	name, value, hasValue := strings.Cut(raw, "=")
	f := Flag{Name: strings.TrimPrefix(name, "--"), Range: r, HasValue: hasValue, Value: value}
	nameLen := utf16Len(name)
	f.NameRange = position.Range{Start: r.Start, End: position.Position{Line: r.Start.Line, Character: r.Start.Character + nameLen}}
	if hasValue {
		f.ValueRange = position.Range{Start: position.Position{Line: r.Start.Line, Character: r.Start.Character + nameLen + 1}, End: r.End}
	}
	return f
}

// buildJSONForm decomposes a bracketed, comma-separated list of
// double-quoted strings starting at (line, col), which must point at '['.
func buildJSONForm(pos *position.Map, line, col, end0 int) *JSONForm {
	text := pos.LineText(line)
	openStart := col
	form := &JSONForm{
		OpenBracket: position.Range{
			Start: position.Position{Line: line, Character: utf16Col(text, openStart)},
			End:   position.Position{Line: line, Character: utf16Col(text, openStart+1)},
		},
	}
	form.Raw.Start = form.OpenBracket.Start

	cursor := newLineCursor(pos, line)
	cursor.byteCol = openStart + 1

	for {
		sline, scol := skipWhitespace(pos, cursor.line, cursor.byteCol, end0)
		if sline < 0 {
			break
		}
		stext := pos.LineText(sline)
		if stext[scol] == ',' {
			cursor.line, cursor.byteCol = sline, scol+1
			continue
		}
		if stext[scol] == ']' {
			form.CloseBracket = position.Range{
				Start: position.Position{Line: sline, Character: utf16Col(stext, scol)},
				End:   position.Position{Line: sline, Character: utf16Col(stext, scol+1)},
			}
			form.Raw.End = form.CloseBracket.End
			cursor.line, cursor.byteCol = sline, scol+1
			break
		}
		if stext[scol] != '"' {
			// Malformed JSON form; stop decomposing gracefully.
			break
		}
		end := scol + 1
		for end < len(stext) && stext[end] != '"' {
			if stext[end] == '\\' && end+1 < len(stext) {
				end++
			}
			end++
		}
		if end < len(stext) {
			end++ // consume closing quote
		}
		raw := stext[scol:end]
		content := raw
		if len(raw) >= 2 && raw[len(raw)-1] == '"' {
			content = unescapeJSONString(raw[1 : len(raw)-1])
		}
		form.Strings = append(form.Strings, Argument{
			Value: content,
			Quote: '"',
			Range: position.Range{
				Start: position.Position{Line: sline, Character: utf16Col(stext, scol)},
				End:   position.Position{Line: sline, Character: utf16Col(stext, end)},
			},
		})
		cursor.line, cursor.byteCol = sline, end
	}

	return form
}

func unescapeJSONString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(s[i])
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// buildTrigger re-applies the same keyword/argument decomposition to the
// text following ONBUILD, exposing the triggered instruction as its own
// Instruction (spec.md §4.2: "ONBUILD triggers are exposed twice").
func (b *instructionBuilder) buildTrigger(outer *Instruction, end0 int) *Instruction {
	startLine, startCol := skipWhitespace(b.pos, outer.KeywordRange.End.Line, byteColOf(b.pos, outer.KeywordRange.End), end0)
	if startLine < 0 {
		return nil
	}
	kwText, kwStartCol, kwEndCol := wordAt(b.pos, startLine, startCol)
	inner := &Instruction{
		Keyword:      kwText,
		KeywordRange: lineColRange(startLine, kwStartCol, kwEndCol),
		Range:        position.Range{Start: lineColRange(startLine, kwStartCol, kwEndCol).Start, End: outer.Range.End},
	}
	cursor := newLineCursor(b.pos, startLine)
	cursor.byteCol = kwEndCol
	b.buildBody(inner, cursor, end0)
	if strings.EqualFold(kwText, "from") {
		inner.From = buildFromRefs(inner)
	}
	return inner
}

// byteColOf converts a Position's UTF-16 character column back to a byte
// offset within its line.
func byteColOf(pos *position.Map, p position.Position) int {
	line := pos.Line(p.Line)
	if line == nil || p.Character > len(line) {
		return len(pos.LineText(p.Line))
	}
	return len(decodeUTF16Prefix(line, p.Character))
}

func wordAt(pos *position.Map, line, col int) (text string, startCol, endCol int) {
	s := pos.LineText(line)
	i := col
	j := i
	for j < len(s) && s[j] != ' ' && s[j] != '\t' {
		j++
	}
	return s[i:j], i, j
}
