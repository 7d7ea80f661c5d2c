package ast

import "github.com/wharflab/dockerfile-utils/internal/position"

// Directive is a leading `# key=value` parser directive (spec.md §4.2).
type Directive struct {
	Name       string
	Value      string
	NameRange  position.Range
	ValueRange position.Range
}

// Comment is a `#...` line that was not consumed as a directive.
type Comment struct {
	Line  int
	Text  string // includes the leading '#'
	Range position.Range
}

// Argument is one positional token of an instruction, in either raw or
// JSON-decomposed form.
type Argument struct {
	Value string
	Range position.Range

	// Quote is the quote character that wrapped this argument in source
	// ('"', '\'' or 0 if unquoted). Set for JSON-form string elements and
	// for raw arguments whose first character is a quote; a property such
	// as FOO="bar" starts unquoted, so its Quote is 0.
	Quote byte
}

// Flag is a `--name` or `--name=value` argument.
type Flag struct {
	Name       string
	NameRange  position.Range
	HasValue   bool
	Value      string
	ValueRange position.Range
	Range      position.Range // full --name[=value] span
}

// Property is a `key=value` or bare-`key` fragment, as used by ARG, ENV
// and LABEL.
type Property struct {
	Name       string
	NameRange  position.Range
	HasEquals  bool
	Value      string
	ValueRange position.Range
	Range      position.Range

	// NameQuote / ValueQuote record the quote character wrapping the name
	// or value, if any (spec.md §4.6 "property shape check").
	NameQuote  byte
	ValueQuote byte

	// Unterminated indicates a quoted name or value that was never closed.
	NameUnterminated  bool
	ValueUnterminated bool
}

// VariableModifier is the `:+`, `:-`, `:?` (or the empty string, or any
// other text) found after the variable name in a `${name:modifier...}`
// occurrence.
type VariableModifier struct {
	Text    string
	Range   position.Range
	Present bool
}

// Variable is one `${name...}` or bare `$name` occurrence inside an
// argument's raw text.
type Variable struct {
	Name     string
	Range    position.Range // the whole occurrence, e.g. `${name:-x}`
	Braced   bool
	Modifier VariableModifier
}

// HeredocRegion is one `<<DELIM ... DELIM` block attached to an
// instruction (RUN/COPY).
type HeredocRegion struct {
	Delimiter      string
	DelimiterRange position.Range
	ContentRange   position.Range // zero value if there is no content
	StartLine      int            // first line of the heredoc body
	EndLine        int            // line containing the closing delimiter
}

// Instruction is the read-only view of one parsed instruction line
// (possibly spanning multiple source lines via continuation).
type Instruction struct {
	// Keyword is the raw-cased keyword text as it appears in source.
	Keyword      string
	KeywordRange position.Range

	// Range covers the full instruction, including continuation lines.
	Range position.Range

	// Arguments holds the raw, non-JSON-form positional tokens.
	Arguments []Argument

	// JSON is populated instead of Arguments when the instruction uses
	// JSON-array form (`["a", "b"]`).
	JSON *JSONForm

	Flags []Flag

	Heredocs []HeredocRegion

	// Trigger is set when Keyword is ONBUILD: it is the instruction that
	// follows the ONBUILD keyword. It is not a separate entry in
	// Document.Instructions; the validator reaches it through the ONBUILD
	// instruction (spec.md §4.2 "ONBUILD triggers exposed twice").
	Trigger *Instruction

	// From carries FROM-specific sub-ranges; nil for other keywords.
	From *FromRefs
}

// JSONForm is the decomposition of a bracketed, double-quoted argument
// list (CMD/ENTRYPOINT/RUN/SHELL/VOLUME/ADD/COPY JSON form).
type JSONForm struct {
	OpenBracket  position.Range
	CloseBracket position.Range
	Strings      []Argument
	// Raw is the full bracketed span, including the brackets.
	Raw position.Range
}

// FromRefs exposes FROM's image-reference sub-ranges.
type FromRefs struct {
	TagRange    *position.Range
	DigestRange *position.Range
	StageRange  *position.Range // the `AS <name>` name argument's range
}
