package validator

import (
	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// checkShell implements spec.md §4.6 SHELL: the argument list must be
// JSON form, and no double-quoted string in it may contain a backslash
// followed by a space.
func checkShell(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	if inst.JSON == nil {
		emit(diagnostic.New(inst.Range, diagnostic.Error, diagnostic.ShellJSONForm,
			"SHELL requires the array form with double-quoted strings").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	if len(inst.JSON.Strings) == 0 {
		emit(diagnostic.New(inst.JSON.Raw, diagnostic.Error, diagnostic.ShellRequiresOne,
			"SHELL requires at least one argument").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	for _, s := range inst.JSON.Strings {
		checkShellEscapes(c, inst, s, emit)
	}
}

// checkShellEscapes inspects each `\` inside a double-quoted SHELL
// string: `\"` and `\\` are skipped as escapes, a backslash followed by
// a space is flagged (`"a\ b"`), and a backslash followed by any other
// character is accepted (`"a\b"`).
func checkShellEscapes(c *ctx, inst *ast.Instruction, s ast.Argument, emit func(diagnostic.Diagnostic)) {
	raw := c.doc.Pos().Slice(s.Range)
	inner := raw
	if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
		inner = inner[1 : len(inner)-1]
	}

	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' {
			continue
		}
		if i+1 >= len(inner) {
			continue
		}
		next := inner[i+1]
		if next == '"' || next == '\\' {
			i++
			continue
		}
		if next == ' ' {
			emit(diagnostic.New(s.Range, diagnostic.Error, diagnostic.ShellJSONForm,
				"unescaped backslash in SHELL JSON string").
				WithInstructionLine(inst.KeywordRange.Start.Line))
			return
		}
	}
}
