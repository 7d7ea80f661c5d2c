package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// checkArg implements spec.md §4.6 ARG: at least one argument, each
// validated as an optional-value property.
func checkArg(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	args := allArguments(inst)
	if len(args) == 0 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresAtLeastOne,
			diagnostic.Format("${0} requires at least one argument", strings.ToUpper(inst.Keyword))).
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}
	for i, arg := range args {
		checkPropertyShape(c, arg, i == 0, false, true, emit)
	}
}
