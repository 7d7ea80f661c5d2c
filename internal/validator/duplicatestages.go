package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// checkDuplicateStageNames implements spec.md §4.5 step 4: build-stage
// names introduced by `FROM ... AS <name>` must be unique, compared
// case-insensitively. A name occurring two or more times reports
// DUPLICATE_BUILD_STAGE_NAME on every occurrence, not just the repeats.
func checkDuplicateStageNames(c *ctx, emit func(diagnostic.Diagnostic)) {
	groups := map[string][]*ast.Instruction{}
	order := []string{}

	for _, inst := range c.doc.Instructions {
		if !strings.EqualFold(inst.Keyword, "FROM") {
			continue
		}
		if len(inst.Arguments) < 3 {
			continue
		}
		key := strings.ToLower(inst.Arguments[2].Value)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], inst)
	}

	for _, key := range order {
		insts := groups[key]
		if len(insts) < 2 {
			continue
		}
		for _, inst := range insts {
			name := inst.Arguments[2]
			emit(diagnostic.New(name.Range, diagnostic.Error, diagnostic.DuplicateBuildStageName,
				diagnostic.Format("duplicate build stage name '${0}'", name.Value)).
				WithInstructionLine(inst.KeywordRange.Start.Line))
		}
	}
}
