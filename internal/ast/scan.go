package ast

import (
	"strings"
	"unicode/utf16"

	"github.com/wharflab/dockerfile-utils/internal/position"
)

// utf16Col returns the UTF-16 column of byte offset byteIdx within line s.
func utf16Col(s string, byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx > len(s) {
		byteIdx = len(s)
	}
	return len(utf16.Encode([]rune(s[:byteIdx])))
}

func utf16Len(s string) int {
	return utf16Col(s, len(s))
}

// decodeUTF16Prefix decodes the first n UTF-16 units of units back into a
// UTF-8 string, clamping n to the slice length.
func decodeUTF16Prefix(units []uint16, n int) string {
	if n > len(units) {
		n = len(units)
	}
	if n < 0 {
		n = 0
	}
	return string(utf16.Decode(units[:n]))
}

// lineCursor walks forward through a document's lines, never moving
// backward, used to locate the source range of tokens whose text (but not
// position) is already known.
type lineCursor struct {
	pos     *position.Map
	line    int
	byteCol int
}

func newLineCursor(pos *position.Map, startLine int) *lineCursor {
	return &lineCursor{pos: pos, line: startLine}
}

// find locates the next occurrence of token on or after the cursor,
// without crossing endLine (inclusive, 0-based). On success the cursor
// advances to just past the match.
func (c *lineCursor) find(token string, endLine int) (position.Range, bool) {
	if token == "" {
		return position.Range{}, false
	}
	for c.line <= endLine && c.line < c.pos.LineCount() {
		text := c.pos.LineText(c.line)
		if c.byteCol <= len(text) {
			if idx := strings.Index(text[c.byteCol:], token); idx >= 0 {
				start := c.byteCol + idx
				end := start + len(token)
				r := position.Range{
					Start: position.Position{Line: c.line, Character: utf16Col(text, start)},
					End:   position.Position{Line: c.line, Character: utf16Col(text, end)},
				}
				c.byteCol = end
				return r, true
			}
		}
		c.line++
		c.byteCol = 0
	}
	return position.Range{}, false
}

// findQuoted tries value as-is, then wrapped in double quotes, then
// wrapped in single quotes, returning the variant that matched along with
// the quote byte used (0 if unquoted).
func (c *lineCursor) findQuoted(value string, endLine int) (position.Range, byte, bool) {
	save := *c
	if r, ok := c.find(value, endLine); ok {
		return r, 0, true
	}
	*c = save
	if r, ok := c.find(`"`+value+`"`, endLine); ok {
		return r, '"', true
	}
	*c = save
	if r, ok := c.find(`'`+value+`'`, endLine); ok {
		return r, '\'', true
	}
	*c = save
	return position.Range{}, 0, false
}

// word is one whitespace-delimited token produced by tokenizeWords,
// carrying its source range and the quote character (0 if unquoted) that
// wrapped it, if any.
type word struct {
	text  string // unquoted content
	raw   string // raw text including quotes
	rng   position.Range
	quote byte
}

// tokenizeWords splits the raw text spanning [startLine,endLine] into
// shell-like whitespace-separated words, honoring single/double quotes,
// starting the scan at (startLine, startByteCol). onHeredoc, if
// non-nil, is called with each word; when it reports a delimiter the
// scanner skips every line through the matching terminator line before
// resuming tokenization (spec.md §4.5 step 6, §4.7: heredoc bodies are
// never tokenized as arguments or continuation-blank lines).
func tokenizeWords(pos *position.Map, startLine, startByteCol, endLine int, onHeredoc func(w word) (delimiter string, chomp bool, ok bool)) []word {
	var words []word
	line := startLine
	col := startByteCol

	for line <= endLine && line < pos.LineCount() {
		text := pos.LineText(line)
		i := col
		for {
			for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
				i++
			}
			if i >= len(text) {
				break
			}
			wstart := i
			var quote byte
			if text[i] == '"' || text[i] == '\'' {
				quote = text[i]
				i++
				for i < len(text) && text[i] != quote {
					if text[i] == '\\' && i+1 < len(text) && quote == '"' {
						i++
					}
					i++
				}
				if i < len(text) {
					i++ // consume closing quote
				}
			} else {
				for i < len(text) && text[i] != ' ' && text[i] != '\t' {
					i++
				}
			}
			raw := text[wstart:i]
			content := raw
			if quote != 0 && len(raw) >= 2 && raw[len(raw)-1] == quote {
				content = raw[1 : len(raw)-1]
			}
			w := word{
				text:  content,
				raw:   raw,
				quote: quote,
				rng: position.Range{
					Start: position.Position{Line: line, Character: utf16Col(text, wstart)},
					End:   position.Position{Line: line, Character: utf16Col(text, i)},
				},
			}
			words = append(words, w)

			if onHeredoc != nil {
				if delim, chomp, ok := onHeredoc(w); ok {
					// Skip to the line that exactly matches the delimiter.
					line++
					for line <= endLine && line < pos.LineCount() {
						candidate := strings.TrimSpace(pos.LineText(line))
						if chomp {
							candidate = strings.TrimLeft(pos.LineText(line), " \t")
							candidate = strings.TrimRight(candidate, " \t")
						}
						if candidate == delim {
							break
						}
						line++
					}
					i = len(text) // force outer loop to advance past this line
					col = 0
					break
				}
			}
		}
		line++
		col = 0
	}

	return words
}

// heredocMarkerName returns the delimiter name and chomp flag if w looks
// like a `<<DELIM` or `<<-DELIM` heredoc marker (optionally quoted).
func heredocMarkerName(w word) (delim string, chomp bool, ok bool) {
	s := w.text
	if !strings.HasPrefix(s, "<<") {
		return "", false, false
	}
	s = strings.TrimPrefix(s, "<<")
	if strings.HasPrefix(s, "-") {
		chomp = true
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.Trim(s, `"'`)
	if s == "" {
		return "", false, false
	}
	return s, chomp, true
}
