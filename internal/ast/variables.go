package ast

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/position"
)

// Variables scans arg's raw text for `${name...}` and bare `$name`
// occurrences, anchoring their ranges to arg.Range (spec.md §4.2
// "variable occurrences with their modifier").
//
// arg is assumed to lie entirely on one source line, which holds for
// every instruction this engine validates variable modifiers against
// (ENV/LABEL/ARG/EXPOSE/WORKDIR/STOPSIGNAL/FROM values never legally
// span a continuation).
func Variables(arg Argument) []Variable {
	raw := arg.Value
	var out []Variable

	for i := 0; i < len(raw); i++ {
		if raw[i] != '$' {
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '{' {
			end := strings.IndexByte(raw[i+2:], '}')
			if end < 0 {
				continue
			}
			end += i + 2
			inner := raw[i+2 : end]
			name, modText, hasColon := cutModifier(inner)
			v := Variable{
				Name:   name,
				Braced: true,
				Range:  subRange(arg.Range, raw, i, end+1),
			}
			if hasColon {
				v.Modifier = VariableModifier{
					Text:    modText,
					Present: true,
					Range:   subRange(arg.Range, raw, end-len(modText), end),
				}
			}
			out = append(out, v)
			i = end
			continue
		}
		if i+1 < len(raw) && isVarNameStart(raw[i+1]) {
			j := i + 1
			for j < len(raw) && isVarNameByte(raw[j]) {
				j++
			}
			out = append(out, Variable{
				Name:  raw[i+1 : j],
				Range: subRange(arg.Range, raw, i, j),
			})
			i = j - 1
		}
	}

	return out
}

// cutModifier splits `${name:modifier}` inner text into name and modifier
// text, reporting whether a ':' was present at all.
func cutModifier(inner string) (name, modifier string, hasColon bool) {
	idx := strings.IndexByte(inner, ':')
	if idx < 0 {
		return inner, "", false
	}
	return inner[:idx], inner[idx+1:], true
}

func isVarNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isVarNameByte(b byte) bool {
	return isVarNameStart(b) || (b >= '0' && b <= '9')
}

// EmptyRangeAt returns a zero-width range at p, used when a diagnostic
// must report a value that expansion left empty.
func EmptyRangeAt(p position.Position) position.Range {
	return position.Range{Start: p, End: p}
}
