package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// checkStopsignal implements spec.md §4.6 STOPSIGNAL.
func checkStopsignal(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	args := allArguments(inst)
	if len(args) != 1 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresOne,
			"STOPSIGNAL requires exactly one argument").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	arg := args[0]
	value := arg.Value

	if strings.HasPrefix(value, "SIG") || strings.Contains(value, "$") || isAllDigits(value) {
		return
	}

	emit(diagnostic.New(arg.Range, diagnostic.Error, diagnostic.InvalidSignal,
		diagnostic.Format("invalid signal: ${0}", value)).
		WithInstructionLine(inst.KeywordRange.Start.Line))
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
