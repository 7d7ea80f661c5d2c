package validator

import (
	"regexp"
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

var fromFlagValuePattern = regexp.MustCompile(`^[a-zA-Z0-9].*$`)

var addBooleanFlags = map[string]bool{"keep-git-dir": true, "link": true}
var copyBooleanFlags = map[string]bool{"link": true}

var addValueFlags = map[string]bool{"chmod": true, "chown": true, "checksum": true}
var copyValueFlags = map[string]bool{"chmod": true, "chown": true, "from": true}

// checkAddCopy implements spec.md §4.6 ADD / COPY.
func checkAddCopy(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic), isAdd bool) {
	checkJSONInSingleQuotes(c, inst, emit)
	checkAddCopyFlags(c, inst, emit, isAdd)

	args := allArguments(inst)
	if len(args) < 2 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresAtLeastTwo,
			diagnostic.Format("${0} requires at least two arguments", strings.ToUpper(inst.Keyword))).
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}
	if len(args) == 2 {
		return
	}

	dest := args[len(args)-1]
	if strings.HasSuffix(dest.Value, "/") || strings.HasSuffix(dest.Value, "\\") {
		return
	}
	if len(inst.Heredocs) > 0 {
		return
	}
	if destAbutsVariable(dest) {
		return
	}

	emit(diagnostic.New(dest.Range, diagnostic.Error, diagnostic.InvalidDestination,
		diagnostic.Format("invalid destination: ${0}", dest.Value)).
		WithInstructionLine(inst.KeywordRange.Start.Line))
}

// destAbutsVariable implements the Open Question 2 heuristic literally:
// the destination argument is tolerated when its end abuts a variable
// occurrence inside the same argument, since the variable may expand to
// include a trailing path separator.
func destAbutsVariable(dest ast.Argument) bool {
	vars := ast.Variables(dest)
	if len(vars) == 0 {
		return false
	}
	lastVarEnd := vars[len(vars)-1].Range.End
	destEnd := dest.Range.End
	if destEnd == lastVarEnd {
		return true
	}
	return destEnd.Line == lastVarEnd.Line && destEnd.Character-1 == lastVarEnd.Character
}

func checkAddCopyFlags(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic), isAdd bool) {
	boolFlags := copyBooleanFlags
	valueFlags := copyValueFlags
	unknownCode := diagnostic.UnknownCopyFlag
	if isAdd {
		boolFlags = addBooleanFlags
		valueFlags = addValueFlags
	}

	seen := map[string][]ast.Flag{}
	if isAdd {
		unknownCode = diagnostic.UnknownAddFlag
	}

	for _, f := range inst.Flags {
		lower := strings.ToLower(f.Name)
		seen[lower] = append(seen[lower], f)

		switch {
		case valueFlags[lower]:
			if lower == "from" {
				if !f.HasValue || !fromFlagValuePattern.MatchString(f.Value) {
					r := f.Range
					if f.HasValue {
						r = f.ValueRange
					}
					emit(diagnostic.New(r, diagnostic.Error, diagnostic.FlagInvalidFromValue,
						diagnostic.Format("invalid from value: ${0}", f.Value)))
				}
			}
		case boolFlags[lower]:
			if f.HasValue && !strings.EqualFold(f.Value, "true") && !strings.EqualFold(f.Value, "false") {
				emit(diagnostic.New(f.ValueRange, diagnostic.Error, diagnostic.FlagExpectedBooleanValue,
					diagnostic.Format("expecting boolean value for flag --${0}: ${1}", f.Name, f.Value)))
			}
		default:
			emit(diagnostic.New(f.NameRange, diagnostic.Error, unknownCode,
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
