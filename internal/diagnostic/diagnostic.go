// Package diagnostic is the Diagnostic Model (spec.md §3, §4.3): severities,
// the stable error-code enumeration, message templates with positional
// parameters, and the Diagnostic record itself.
package diagnostic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/position"
)

// Severity mirrors spec.md §3: IGNORE suppresses emission entirely.
type Severity int

const (
	Ignore Severity = iota
	Warning
	Error
)

// String implements fmt.Stringer for debugging/logging contexts outside
// the wire format (the wire format uses the editor-protocol integers,
// see [Severity.WireSeverity]).
func (s Severity) String() string {
	switch s {
	case Ignore:
		return "ignore"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// WireSeverity returns the editor-protocol convention spec.md §6 mandates
// for the JSON wire shape: 1 = Error, 2 = Warning.
func (s Severity) WireSeverity() int {
	if s == Error {
		return 1
	}
	return 2
}

// Tag is an auxiliary diagnostic classification (spec.md §3).
type Tag int

const (
	Unnecessary Tag = 1
	Deprecated  Tag = 2
)

// Code is the stable, closed set of error codes from spec.md §6. Numeric
// values are implementation-defined but stable within this module's major
// version; the name is the part of the public contract consumers may
// depend on.
type Code int

const (
	CasingInstruction Code = iota + 1
	CasingDirective
	ArgumentMissing
	ArgumentExtra
	ArgumentRequiresOne
	ArgumentRequiresAtLeastOne
	ArgumentRequiresTwo
	ArgumentRequiresAtLeastTwo
	ArgumentRequiresOneOrThree
	ArgumentUnnecessary
	DuplicateBuildStageName
	EmptyContinuationLine
	InvalidBuildStageName
	FlagAtLeastOne
	FlagDuplicate
	FlagInvalidDuration
	FlagLessThan1ms
	FlagMissingDuration
	FlagMissingValue
	FlagUnknownUnit
	FlagExpectedBooleanValue
	FlagInvalidFromValue
	NoSourceImage
	InvalidEscapeDirective
	DuplicatedEscapeDirective
	InvalidAs
	InvalidDestination
	InvalidPort
	InvalidProto
	InvalidReferenceFormat
	InvalidSignal
	InvalidSyntax
	OnbuildChainingDisallowed
	OnbuildTriggerDisallowed
	ShellJSONForm
	ShellRequiresOne
	SyntaxMissingEquals
	SyntaxMissingNames
	SyntaxMissingSingleQuote
	SyntaxMissingDoubleQuote
	MultipleInstructions
	UnknownInstruction
	UnknownAddFlag
	UnknownCopyFlag
	UnknownFromFlag
	UnknownHealthcheckFlag
	UnknownType
	UnsupportedModifier
	DeprecatedMaintainer
	HealthcheckCmdArgumentMissing
	JSONInSingleQuotes
	WorkdirIsNotAbsolute
	BaseNameEmpty
)

var codeNames = map[Code]string{
	CasingInstruction:             "CASING_INSTRUCTION",
	CasingDirective:               "CASING_DIRECTIVE",
	ArgumentMissing:               "ARGUMENT_MISSING",
	ArgumentExtra:                 "ARGUMENT_EXTRA",
	ArgumentRequiresOne:           "ARGUMENT_REQUIRES_ONE",
	ArgumentRequiresAtLeastOne:    "ARGUMENT_REQUIRES_AT_LEAST_ONE",
	ArgumentRequiresTwo:           "ARGUMENT_REQUIRES_TWO",
	ArgumentRequiresAtLeastTwo:    "ARGUMENT_REQUIRES_AT_LEAST_TWO",
	ArgumentRequiresOneOrThree:    "ARGUMENT_REQUIRES_ONE_OR_THREE",
	ArgumentUnnecessary:           "ARGUMENT_UNNECESSARY",
	DuplicateBuildStageName:       "DUPLICATE_BUILD_STAGE_NAME",
	EmptyContinuationLine:         "EMPTY_CONTINUATION_LINE",
	InvalidBuildStageName:         "INVALID_BUILD_STAGE_NAME",
	FlagAtLeastOne:                "FLAG_AT_LEAST_ONE",
	FlagDuplicate:                 "FLAG_DUPLICATE",
	FlagInvalidDuration:           "FLAG_INVALID_DURATION",
	FlagLessThan1ms:               "FLAG_LESS_THAN_1MS",
	FlagMissingDuration:           "FLAG_MISSING_DURATION",
	FlagMissingValue:              "FLAG_MISSING_VALUE",
	FlagUnknownUnit:               "FLAG_UNKNOWN_UNIT",
	FlagExpectedBooleanValue:      "FLAG_EXPECTED_BOOLEAN_VALUE",
	FlagInvalidFromValue:          "FLAG_INVALID_FROM_VALUE",
	NoSourceImage:                 "NO_SOURCE_IMAGE",
	InvalidEscapeDirective:        "INVALID_ESCAPE_DIRECTIVE",
	DuplicatedEscapeDirective:     "DUPLICATED_ESCAPE_DIRECTIVE",
	InvalidAs:                     "INVALID_AS",
	InvalidDestination:            "INVALID_DESTINATION",
	InvalidPort:                   "INVALID_PORT",
	InvalidProto:                  "INVALID_PROTO",
	InvalidReferenceFormat:        "INVALID_REFERENCE_FORMAT",
	InvalidSignal:                 "INVALID_SIGNAL",
	InvalidSyntax:                 "INVALID_SYNTAX",
	OnbuildChainingDisallowed:     "ONBUILD_CHAINING_DISALLOWED",
	OnbuildTriggerDisallowed:      "ONBUILD_TRIGGER_DISALLOWED",
	ShellJSONForm:                 "SHELL_JSON_FORM",
	ShellRequiresOne:              "SHELL_REQUIRES_ONE",
	SyntaxMissingEquals:           "SYNTAX_MISSING_EQUALS",
	SyntaxMissingNames:            "SYNTAX_MISSING_NAMES",
	SyntaxMissingSingleQuote:      "SYNTAX_MISSING_SINGLE_QUOTE",
	SyntaxMissingDoubleQuote:      "SYNTAX_MISSING_DOUBLE_QUOTE",
	MultipleInstructions:          "MULTIPLE_INSTRUCTIONS",
	UnknownInstruction:            "UNKNOWN_INSTRUCTION",
	UnknownAddFlag:                "UNKNOWN_ADD_FLAG",
	UnknownCopyFlag:               "UNKNOWN_COPY_FLAG",
	UnknownFromFlag:               "UNKNOWN_FROM_FLAG",
	UnknownHealthcheckFlag:        "UNKNOWN_HEALTHCHECK_FLAG",
	UnknownType:                   "UNKNOWN_TYPE",
	UnsupportedModifier:           "UNSUPPORTED_MODIFIER",
	DeprecatedMaintainer:          "DEPRECATED_MAINTAINER",
	HealthcheckCmdArgumentMissing: "HEALTHCHECK_CMD_ARGUMENT_MISSING",
	JSONInSingleQuotes:            "JSON_IN_SINGLE_QUOTES",
	WorkdirIsNotAbsolute:          "WORKDIR_IS_NOT_ABSOLUTE",
	BaseNameEmpty:                 "BASE_NAME_EMPTY",
}

// String returns the stable name, e.g. "NO_SOURCE_IMAGE".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN_CODE"
}

// Source is the fixed diagnostic source string spec.md §3/§6 mandates.
const Source = "dockerfile-utils"

// Diagnostic is one emitted problem (spec.md §3).
type Diagnostic struct {
	Range    position.Range
	Severity Severity
	Code     Code
	Message  string
	Source   string

	// InstructionLine records the starting line of the owning instruction
	// (nil for directive/document-level diagnostics), so that an
	// ignore-comment on the preceding line can suppress it.
	InstructionLine *int

	Tags []Tag
}

// New builds a Diagnostic with the Source field pre-filled.
func New(r position.Range, severity Severity, code Code, message string) Diagnostic {
	return Diagnostic{Range: r, Severity: severity, Code: code, Message: message, Source: Source}
}

// WithInstructionLine sets InstructionLine to the given zero-based line.
func (d Diagnostic) WithInstructionLine(line int) Diagnostic {
	d.InstructionLine = &line
	return d
}

// WithTags appends tags to the diagnostic.
func (d Diagnostic) WithTags(tags ...Tag) Diagnostic {
	d.Tags = append(d.Tags, tags...)
	return d
}

// Format substitutes ${0}, ${1}, ... placeholders positionally, matching
// spec.md §4.3's message template convention.
func Format(template string, args ...any) string {
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] == '$' && i+1 < len(template) && template[i+1] == '{' {
			end := strings.IndexByte(template[i+2:], '}')
			if end >= 0 {
				idxStr := template[i+2 : i+2+end]
				if idx, err := strconv.Atoi(idxStr); err == nil && idx >= 0 && idx < len(args) {
					fmt.Fprintf(&sb, "%v", args[idx])
					i += 2 + end
					continue
				}
			}
		}
		sb.WriteByte(template[i])
	}
	return sb.String()
}
