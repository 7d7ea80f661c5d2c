package validator

import (
	"regexp"
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/validator/imageref"
)

// spanArgs returns the range covering every argument in args, from the
// first's start to the last's end.
func spanArgs(args []ast.Argument) position.Range {
	return position.Range{Start: args[0].Range.Start, End: args[len(args)-1].Range.End}
}

var stageNamePattern = regexp.MustCompile(`^[a-z]([a-z0-9_\-.]*)*$`)

// checkFrom implements spec.md §4.6 FROM.
func checkFrom(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	n := len(inst.Arguments)
	if n != 1 && n != 3 {
		if n > 1 {
			r := spanArgs(inst.Arguments[1:])
			emit(diagnostic.New(r, diagnostic.Error, diagnostic.ArgumentRequiresOneOrThree,
				"FROM requires either one or three arguments"))
		}
		if n == 0 {
			return
		}
	}

	checkFromFlags(c, inst, emit)

	if n == 0 {
		return
	}
	arg0 := inst.Arguments[0]

	if isSoleUndefinedVariable(arg0) {
		emit(diagnostic.New(arg0.Range, diagnostic.Error, diagnostic.BaseNameEmpty,
			"base name is empty"))
	} else if inst.From != nil {
		if inst.From.TagRange != nil {
			tag := c.doc.Pos().Slice(*inst.From.TagRange)
			if !imageref.ValidTag(tag) {
				r := *inst.From.TagRange
				if r.Start == r.End {
					r = arg0.Range
				}
				emit(diagnostic.New(r, diagnostic.Error, diagnostic.InvalidReferenceFormat,
					diagnostic.Format("invalid reference format: ${0}", tag)))
			}
		}
		if inst.From.DigestRange != nil {
			digest := c.doc.Pos().Slice(*inst.From.DigestRange)
			if !imageref.ValidDigest(digest) {
				r := *inst.From.DigestRange
				if r.Start == r.End {
					r = arg0.Range
				}
				emit(diagnostic.New(r, diagnostic.Error, diagnostic.InvalidReferenceFormat,
					diagnostic.Format("invalid reference format: ${0}", digest)))
			}
		}
	}

	if n == 3 {
		as := inst.Arguments[1]
		if !strings.EqualFold(as.Value, "AS") {
			emit(diagnostic.New(as.Range, diagnostic.Error, diagnostic.InvalidAs,
				diagnostic.Format("expecting 'AS', found: ${0}", as.Value)))
		}

		name := inst.Arguments[2]
		if !stageNamePattern.MatchString(strings.ToLower(name.Value)) {
			emit(diagnostic.New(name.Range, diagnostic.Error, diagnostic.InvalidBuildStageName,
				diagnostic.Format("invalid name for build stage: \"${0}\"", name.Value)))
		}
	}
}

// checkFromFlags validates the `--platform` flag (the only one FROM
// recognizes); any other flag name is unknown.
func checkFromFlags(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	for _, f := range inst.Flags {
		if !strings.EqualFold(f.Name, "platform") {
			emit(diagnostic.New(f.NameRange, diagnostic.Error, diagnostic.UnknownFromFlag,
				diagnostic.Format("unknown flag: --${0}", f.Name)))
			continue
		}
		if !f.HasValue {
			emit(diagnostic.New(f.Range, diagnostic.Error, diagnostic.FlagMissingValue,
				diagnostic.Format("flag '--${0}' requires a value", f.Name)))
		}
	}
}

// isSoleUndefinedVariable reports whether arg's entire text is a single
// `${name}`/`$name` occurrence with nothing else around it. Since this
// engine never tracks ARG/ENV-defined build variables (spec.md's AST
// Adapter only exposes syntactic occurrences, not a build-time
// environment), every such sole occurrence is treated as undefined.
func isSoleUndefinedVariable(arg ast.Argument) bool {
	vars := ast.Variables(arg)
	if len(vars) != 1 {
		return false
	}
	return vars[0].Range == arg.Range
}
