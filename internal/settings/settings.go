// Package settings resolves user-supplied rule severities against
// spec.md §3's default table (the Severity Configuration component,
// spec.md §4.4).
package settings

import "github.com/wharflab/dockerfile-utils/internal/diagnostic"

// Rule identifies one of the settings-governed rule keys.
type Rule string

const (
	DeprecatedMaintainer          Rule = "deprecatedMaintainer"
	DirectiveCasing               Rule = "directiveCasing"
	EmptyContinuationLine         Rule = "emptyContinuationLine"
	InstructionCasing             Rule = "instructionCasing"
	InstructionCmdMultiple        Rule = "instructionCmdMultiple"
	InstructionEntrypointMultiple Rule = "instructionEntrypointMultiple"
	InstructionHealthcheckMultiple Rule = "instructionHealthcheckMultiple"
	InstructionJSONInSingleQuotes Rule = "instructionJSONInSingleQuotes"
	InstructionWorkdirRelative    Rule = "instructionWorkdirRelative"
)

// Validator is the user-supplied severity map plus the spec.md §3
// defaults for any rule key left unspecified.
type Validator struct {
	overrides map[Rule]diagnostic.Severity
}

// defaults mirrors spec.md §3's ValidatorSettings default table verbatim.
var defaults = map[Rule]diagnostic.Severity{
	DeprecatedMaintainer:           diagnostic.Warning,
	DirectiveCasing:                diagnostic.Warning,
	EmptyContinuationLine:          diagnostic.Warning,
	InstructionCasing:              diagnostic.Warning,
	InstructionCmdMultiple:         diagnostic.Warning,
	InstructionEntrypointMultiple:  diagnostic.Warning,
	InstructionHealthcheckMultiple: diagnostic.Warning,
	InstructionJSONInSingleQuotes:  diagnostic.Warning,
	InstructionWorkdirRelative:     diagnostic.Warning,
}

// NewValidator builds a Validator settings resolver. overrides may be nil
// or partial; unspecified keys use the spec.md §3 default.
func NewValidator(overrides map[Rule]diagnostic.Severity) *Validator {
	return &Validator{overrides: overrides}
}

// Severity returns the effective severity for rule.
func (v *Validator) Severity(rule Rule) diagnostic.Severity {
	if v != nil {
		if s, ok := v.overrides[rule]; ok {
			return s
		}
	}
	return defaults[rule]
}

// Formatter mirrors spec.md §3's FormatterSettings.
type Formatter struct {
	InsertSpaces                bool
	TabSize                     uint
	IgnoreMultilineInstructions bool
}

// IndentUnit returns the literal text one indentation level contributes,
// per spec.md §4.7.
func (f Formatter) IndentUnit() string {
	if f.InsertSpaces {
		n := f.TabSize
		if n == 0 {
			n = 4
		}
		out := make([]byte, n)
		for i := range out {
			out[i] = ' '
		}
		return string(out)
	}
	return "\t"
}
