package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// multiplesRule names, for each bucketed keyword, the settings.Rule that
// governs its MULTIPLE_INSTRUCTIONS severity (spec.md §4.5 step 3).
var multiplesRule = map[string]settings.Rule{
	"CMD":         settings.InstructionCmdMultiple,
	"ENTRYPOINT":  settings.InstructionEntrypointMultiple,
	"HEALTHCHECK": settings.InstructionHealthcheckMultiple,
}

// checkMultipleInstructions implements spec.md §4.5 step 3: within a
// single build stage, every CMD, ENTRYPOINT or HEALTHCHECK except the
// last of its kind is unnecessary because only the last one takes effect. Buckets are flushed
// on every FROM (starting a new stage) and at end of document.
func checkMultipleInstructions(c *ctx, emit func(diagnostic.Diagnostic)) {
	buckets := map[string][]*ast.Instruction{
		"CMD": nil, "ENTRYPOINT": nil, "HEALTHCHECK": nil,
	}

	flush := func() {
		for keyword, insts := range buckets {
			if len(insts) < 2 {
				continue
			}
			for _, inst := range insts[:len(insts)-1] {
				emit(diagnostic.New(inst.KeywordRange,
					sevOrDefault(c, multiplesRule[keyword], diagnostic.Warning),
					diagnostic.MultipleInstructions,
					diagnostic.Format("${0} should only be specified once per build stage", keyword)).
					WithInstructionLine(inst.KeywordRange.Start.Line).
					WithTags(diagnostic.Unnecessary))
			}
		}
		buckets["CMD"] = nil
		buckets["ENTRYPOINT"] = nil
		buckets["HEALTHCHECK"] = nil
	}

	for _, inst := range c.doc.Instructions {
		upper := strings.ToUpper(inst.Keyword)
		if upper == "FROM" {
			flush()
			continue
		}
		if _, ok := buckets[upper]; ok {
			buckets[upper] = append(buckets[upper], inst)
		}
	}
	flush()
}
