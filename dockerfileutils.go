// Package dockerfileutils is the public entry point: a static analyzer
// and whitespace formatter for Dockerfile source text, built against an
// AST supplied by BuildKit's recipe parser.
//
// The package exposes four pure, synchronous operations — Validate,
// Format, FormatRange, FormatOnType — none of which retain state
// between calls or depend on anything beyond their arguments.
package dockerfileutils

import (
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/formatter"
	"github.com/wharflab/dockerfile-utils/internal/position"
	"github.com/wharflab/dockerfile-utils/internal/settings"
	"github.com/wharflab/dockerfile-utils/internal/validator"
)

// Re-exported data-model types, so callers never need to import the
// internal packages directly.
type (
	Position       = position.Position
	Range          = position.Range
	TextEdit       = position.TextEdit
	Severity       = diagnostic.Severity
	Code           = diagnostic.Code
	Tag            = diagnostic.Tag
	Diagnostic     = diagnostic.Diagnostic
	Rule           = settings.Rule
	ValidatorSettings = settings.Validator
	FormatterSettings = settings.Formatter
)

const (
	Ignore  = diagnostic.Ignore
	Warning = diagnostic.Warning
	Error   = diagnostic.Error
)

const (
	Unnecessary = diagnostic.Unnecessary
	Deprecated  = diagnostic.Deprecated
)

// Rule keys accepted by NewValidatorSettings.
const (
	RuleDeprecatedMaintainer          = settings.DeprecatedMaintainer
	RuleDirectiveCasing               = settings.DirectiveCasing
	RuleEmptyContinuationLine         = settings.EmptyContinuationLine
	RuleInstructionCasing             = settings.InstructionCasing
	RuleInstructionCmdMultiple        = settings.InstructionCmdMultiple
	RuleInstructionEntrypointMultiple = settings.InstructionEntrypointMultiple
	RuleInstructionHealthcheckMultiple = settings.InstructionHealthcheckMultiple
	RuleInstructionJSONInSingleQuotes = settings.InstructionJSONInSingleQuotes
	RuleInstructionWorkdirRelative    = settings.InstructionWorkdirRelative
)

// NewValidatorSettings builds a ValidatorSettings resolver from a
// partial rule-key → severity override map; unspecified keys fall back
// to spec.md §3's defaults.
func NewValidatorSettings(overrides map[Rule]Severity) *ValidatorSettings {
	return settings.NewValidator(overrides)
}

// Validate runs every diagnostic rule over source and returns the
// accumulated diagnostics in emission order. A nil settings value uses
// every rule's default severity.
func Validate(source []byte, vs *ValidatorSettings) []Diagnostic {
	return validator.Validate(source, vs)
}

// Format computes the whitespace edits that normalize the entire
// document's indentation and trim blank lines.
func Format(source []byte, opts FormatterSettings) []TextEdit {
	return formatter.Format(source, opts)
}

// FormatRange restricts Format's edits to the lines r spans.
func FormatRange(source []byte, r Range, opts FormatterSettings) []TextEdit {
	return formatter.FormatRange(source, r, opts)
}

// FormatOnType computes the (at most one) edit triggered by typing
// typedChar at position p.
func FormatOnType(source []byte, p Position, typedChar rune, opts FormatterSettings) []TextEdit {
	return formatter.FormatOnType(source, p, typedChar, opts)
}

// WireSeverity returns the editor-protocol severity (1=Error, 2=Warning)
// for the JSON wire shape spec.md §6 mandates.
func WireSeverity(s Severity) int {
	return s.WireSeverity()
}

// WireCode returns a diagnostic's stable code name, e.g. "NO_SOURCE_IMAGE".
func WireCode(c Code) string {
	return c.String()
}
