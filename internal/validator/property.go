package validator

import (
	"strings"
	"unicode/utf16"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
)

// checkPropertyShape validates one argument token as a property,
// re-deriving the raw source text because quote-termination detection
// needs the unparsed text (spec.md §4.6 "property shape check"), which
// ast.Argument's already-unwrapped Value does not retain. isFirst and
// forEnv select the "missing value" message; valueOptional is false for
// ENV/LABEL (a value is required) and true for ARG.
func checkPropertyShape(c *ctx, arg ast.Argument, isFirst, forEnv, valueOptional bool, emit func(diagnostic.Diagnostic)) {
	raw := c.doc.Pos().Slice(arg.Range)
	argRange := arg.Range

	nameEnd, quoteErr := propertyNameEnd(raw)
	if quoteErr != 0 {
		code := diagnostic.SyntaxMissingDoubleQuote
		if quoteErr == '\'' {
			code = diagnostic.SyntaxMissingSingleQuote
		}
		emit(diagnostic.New(argRange, diagnostic.Error, code, "unterminated quoted name"))
		return
	}

	name := raw[:nameEnd]
	unquotedName := name
	if len(name) >= 2 && (name[0] == '"' || name[0] == '\'') && name[len(name)-1] == name[0] {
		unquotedName = name[1 : len(name)-1]
	}

	if unquotedName == "" {
		emit(diagnostic.New(subRangeLocal(argRange, raw, 0, nameEnd), diagnostic.Error, diagnostic.SyntaxMissingNames,
			"property is missing a name"))
		return
	}

	rest := raw[nameEnd:]
	if !strings.HasPrefix(rest, "=") {
		if valueOptional {
			return
		}
		if isFirst && forEnv {
			emit(diagnostic.New(argRange, diagnostic.Error, diagnostic.ArgumentRequiresTwo,
				"ENV must have two arguments"))
		} else {
			emit(diagnostic.New(argRange, diagnostic.Error, diagnostic.SyntaxMissingEquals,
				diagnostic.Format("syntax error - can't find = in \"${0}\"", raw)))
		}
		return
	}

	valueRaw := rest[1:]
	valueStart := nameEnd + 1
	if valueRaw == "" {
		return
	}

	switch valueRaw[0] {
	case '"':
		if !quoteTerminated(valueRaw, '"', c.escape) {
			emit(diagnostic.New(subRangeLocal(argRange, raw, valueStart, len(raw)), diagnostic.Error, diagnostic.SyntaxMissingDoubleQuote,
				"unterminated double-quoted value"))
		}
	case '\'':
		if !quoteTerminated(valueRaw, '\'', c.escape) {
			emit(diagnostic.New(subRangeLocal(argRange, raw, valueStart, len(raw)), diagnostic.Error, diagnostic.SyntaxMissingSingleQuote,
				"unterminated single-quoted value"))
		}
	}
}

// propertyNameEnd returns the byte offset where the name portion ends
// (i.e., the index of the unquoted '=' or len(raw) if there is none), or
// reports quoteErr as the quote byte that was opened but never closed
// before an '=' or end of string was reached.
func propertyNameEnd(raw string) (nameEnd int, quoteErr byte) {
	if raw == "" {
		return 0, 0
	}
	if raw[0] != '"' && raw[0] != '\'' {
		if idx := strings.IndexByte(raw, '='); idx >= 0 {
			return idx, 0
		}
		return len(raw), 0
	}

	quote := raw[0]
	for i := 1; i < len(raw); i++ {
		if raw[i] == quote {
			return i + 1, 0
		}
		if raw[i] == '=' {
			return 0, quote
		}
	}
	return 0, quote
}

// quoteTerminated reports whether s (which starts with quote) contains a
// matching, unescaped closing quote as its very last character.
func quoteTerminated(s string, quote byte, escape rune) bool {
	if len(s) < 2 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] == byte(escape) && quote == '"' && i+1 < len(s) {
			i++
			continue
		}
		if s[i] == quote {
			return i == len(s)-1
		}
	}
	return false
}

func subRangeLocal(base position.Range, raw string, start, end int) position.Range {
	if start < 0 {
		start = 0
	}
	if end > len(raw) {
		end = len(raw)
	}
	if end < start {
		end = start
	}
	return position.Range{
		Start: position.Position{Line: base.Start.Line, Character: base.Start.Character + utf16ColLocal(raw, start)},
		End:   position.Position{Line: base.Start.Line, Character: base.Start.Character + utf16ColLocal(raw, end)},
	}
}

func utf16ColLocal(s string, byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx > len(s) {
		byteIdx = len(s)
	}
	return len(utf16.Encode([]rune(s[:byteIdx])))
}
