package validator

import (
	"regexp"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// workdirRootedPattern matches a drive-letter path or a variable-rooted
// path (spec.md §4.6 WORKDIR).
var workdirRootedPattern = regexp.MustCompile(`^(\$|([a-zA-Z](\$|:(\$|\\|\/)))).*$`)

// checkWorkdir implements spec.md §4.6 WORKDIR.
func checkWorkdir(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	args := allArguments(inst)
	if len(args) == 0 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresAtLeastOne,
			"WORKDIR requires at least one argument").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	arg := args[0]
	path := stripOneQuoteLayer(arg.Value)

	if len(path) > 0 && (path[0] == '/' || path[0] == '\\') {
		return
	}
	if workdirRootedPattern.MatchString(path) {
		return
	}

	emit(diagnostic.New(arg.Range,
		sevOrDefault(c, settings.InstructionWorkdirRelative, diagnostic.Warning),
		diagnostic.WorkdirIsNotAbsolute,
		diagnostic.Format("relative path used in WORKDIR: ${0}", arg.Value)).
		WithInstructionLine(inst.KeywordRange.Start.Line))
}

func stripOneQuoteLayer(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
