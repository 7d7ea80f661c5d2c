package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// checkOnbuild implements spec.md §4.6 ONBUILD: its trigger may not be
// FROM, MAINTAINER, or another ONBUILD; otherwise the trigger is
// validated recursively like any other instruction.
func checkOnbuild(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	trigger := inst.Trigger
	if trigger == nil {
		return
	}

	upper := strings.ToUpper(trigger.Keyword)
	switch upper {
	case "FROM", "MAINTAINER":
		emit(diagnostic.New(trigger.KeywordRange, diagnostic.Error, diagnostic.OnbuildTriggerDisallowed,
			diagnostic.Format("${0} is not allowed as an ONBUILD trigger", upper)).
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	case "ONBUILD":
		emit(diagnostic.New(trigger.KeywordRange, diagnostic.Error, diagnostic.OnbuildChainingDisallowed,
			"chaining ONBUILD instructions is not allowed").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	validateInstruction(c, trigger, emit)
}
