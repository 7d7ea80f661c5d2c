package validator

import (
	"strconv"
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
)

var healthcheckDurationFlags = map[string]bool{
	"interval": true, "start-period": true, "timeout": true, "start-interval": true,
}

// checkHealthcheck implements spec.md §4.6 HEALTHCHECK.
func checkHealthcheck(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	checkHealthcheckFlags(c, inst, emit)

	args := allArguments(inst)
	if len(args) == 0 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresAtLeastOne,
			"HEALTHCHECK requires at least one argument").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	typ := args[0]
	upper := strings.ToUpper(typ.Value)
	switch upper {
	case "NONE":
		if len(args) > 1 {
			r := spanArgs(args[1:])
			emit(diagnostic.New(r, diagnostic.Error, diagnostic.ArgumentUnnecessary,
				"NONE healthcheck takes no arguments").
				WithInstructionLine(inst.KeywordRange.Start.Line).
				WithTags(diagnostic.Unnecessary))
		}
	case "CMD":
		if len(args) < 2 {
			emit(diagnostic.New(typ.Range, diagnostic.Error, diagnostic.HealthcheckCmdArgumentMissing,
				"HEALTHCHECK CMD requires at least one argument").
				WithInstructionLine(inst.KeywordRange.Start.Line))
		}
	default:
		emit(diagnostic.New(typ.Range, diagnostic.Error, diagnostic.UnknownType,
			diagnostic.Format("unknown type: ${0}", typ.Value)).
			WithInstructionLine(inst.KeywordRange.Start.Line))
	}
}

func checkHealthcheckFlags(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	seen := map[string][]ast.Flag{}

	for _, f := range inst.Flags {
		lower := strings.ToLower(f.Name)
		seen[lower] = append(seen[lower], f)

		switch lower {
		case "retries":
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				emit(diagnostic.New(f.ValueRange, diagnostic.Error, diagnostic.InvalidSyntax,
					diagnostic.Format("invalid retries value: ${0}", f.Value)))
			} else if n < 1 {
				emit(diagnostic.New(f.ValueRange, diagnostic.Error, diagnostic.FlagAtLeastOne,
					"retries must be at least 1"))
			}
		case "interval", "start-period", "timeout", "start-interval":
			checkDurationFlag(c, f, emit)
		default:
			emit(diagnostic.New(f.NameRange, diagnostic.Error, diagnostic.UnknownHealthcheckFlag,
				diagnostic.Format("unknown flag: --${0}", f.Name)))
		}
	}

	for _, occurrences := range seen {
		if len(occurrences) < 2 {
			continue
		}
		for _, f := range occurrences {
			emit(diagnostic.New(f.Range, diagnostic.Error, diagnostic.FlagDuplicate,
				diagnostic.Format("duplicate flag specified: ${0}", f.Name)))
		}
	}
}

// checkDurationFlag runs the duration sub-engine against one flag's
// value and emits the matching diagnostic for any non-OK outcome.
func checkDurationFlag(c *ctx, f ast.Flag, emit func(diagnostic.Diagnostic)) {
	outcome, badStart, badEnd := parseDuration(f.Value)
	if outcome == durationOK {
		return
	}

	r := f.ValueRange
	if badEnd > badStart {
		r = subArgRangeFlag(f, badStart, badEnd)
	}

	switch outcome {
	case durationMissing:
		emit(diagnostic.New(f.ValueRange, diagnostic.Error, diagnostic.FlagMissingDuration,
			diagnostic.Format("missing duration: ${0}", f.Value)))
	case durationInvalid:
		emit(diagnostic.New(r, diagnostic.Error, diagnostic.FlagInvalidDuration,
			diagnostic.Format("invalid duration: ${0}", f.Value)))
	case durationUnknownUnit:
		emit(diagnostic.New(r, diagnostic.Error, diagnostic.FlagUnknownUnit,
			diagnostic.Format("unknown duration unit in: ${0}", f.Value)))
	case durationLessThan1ms:
		emit(diagnostic.New(f.ValueRange, diagnostic.Error, diagnostic.FlagLessThan1ms,
			diagnostic.Format("duration is less than one millisecond: ${0}", f.Value)))
	}
}

// subArgRangeFlag computes the sub-range of f.Value[start:end] within
// f.ValueRange, assuming the value lies entirely on one line (true for
// every HEALTHCHECK flag).
func subArgRangeFlag(f ast.Flag, start, end int) position.Range {
	base := f.ValueRange
	return position.Range{
		Start: position.Position{Line: base.Start.Line, Character: base.Start.Character + utf16ColLocal(f.Value, start)},
		End:   position.Position{Line: base.Start.Line, Character: base.Start.Character + utf16ColLocal(f.Value, end)},
	}
}
