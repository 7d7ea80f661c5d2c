package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// checkEnvOrLabel implements spec.md §4.6 ENV / LABEL: at least one
// property, each with a required value.
func checkEnvOrLabel(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic), isEnv bool) {
	args := allArguments(inst)
	if len(args) == 0 {
		code := diagnostic.ArgumentRequiresAtLeastOne
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, code,
			diagnostic.Format("${0} requires at least one argument", strings.ToUpper(inst.Keyword))).
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}
	for i, arg := range args {
		checkPropertyShape(c, arg, i == 0, isEnv, false, emit)
	}
}
