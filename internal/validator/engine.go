// Package validator is the Validator Engine (spec.md §4.5) and its Rule
// Sub-Engines (spec.md §4.6): it walks an ast.Document and produces the
// Diagnostic sequence spec.md §6's validate() operation returns.
package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// recognizedKeywords is the closed set of Dockerfile instruction keywords
// this engine dispatches by name (spec.md §2 item 6).
var recognizedKeywords = map[string]bool{
	"FROM": true, "RUN": true, "CMD": true, "LABEL": true, "MAINTAINER": true,
	"EXPOSE": true, "ENV": true, "ADD": true, "COPY": true, "ENTRYPOINT": true,
	"VOLUME": true, "USER": true, "WORKDIR": true, "ARG": true, "ONBUILD": true,
	"STOPSIGNAL": true, "HEALTHCHECK": true, "SHELL": true,
}

// ctx threads the immutable parsing context (escape character, settings,
// document) through every rule sub-engine without ambient global state
// (spec.md §9 "no ambient escape character").
type ctx struct {
	doc      *ast.Document
	settings *settings.Validator
	escape   rune
}

// Validate runs the full validator pipeline over source and returns the
// accumulated diagnostics in emission order (spec.md §6).
func Validate(source []byte, vs *settings.Validator) []diagnostic.Diagnostic {
	doc := ast.Parse(source)
	c := &ctx{doc: doc, settings: vs, escape: doc.Escape}

	var diags []diagnostic.Diagnostic
	emit := func(d diagnostic.Diagnostic) {
		if d.Severity == diagnostic.Ignore {
			return
		}
		diags = append(diags, d)
	}

	checkDirectives(c, emit)
	checkSourceImage(c, emit)
	checkMultipleInstructions(c, emit)
	checkDuplicateStageNames(c, emit)

	for _, inst := range doc.Instructions {
		validateInstruction(c, inst, emit)
	}

	for _, inst := range doc.Instructions {
		checkEmptyContinuationLine(c, inst, emit)
	}

	return suppressIgnored(c, diags)
}

// validateInstruction dispatches one instruction (and, recursively, its
// ONBUILD trigger) to the per-keyword rule sub-engine (spec.md §4.5
// step 5, §4.6).
func validateInstruction(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	upper := strings.ToUpper(inst.Keyword)
	line := inst.KeywordRange.Start.Line

	// Every diagnostic raised for this instruction carries its starting
	// line, so that an ignore comment on the line above suppresses it.
	outer := emit
	emit = func(d diagnostic.Diagnostic) {
		if d.InstructionLine == nil {
			d = d.WithInstructionLine(line)
		}
		outer(d)
	}

	if !recognizedKeywords[upper] {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.UnknownInstruction,
			diagnostic.Format("unknown instruction: ${0}", inst.Keyword)).WithInstructionLine(line))
		return
	}

	if inst.Keyword != upper {
		emit(diagnostic.New(inst.KeywordRange,
			sevOrDefault(c, settings.InstructionCasing, diagnostic.Warning),
			diagnostic.CasingInstruction,
			diagnostic.Format("instruction '${0}' should be written in uppercase", inst.Keyword)).
			WithInstructionLine(line))
	}

	if upper == "MAINTAINER" {
		emit(diagnostic.New(inst.Range,
			sevOrDefault(c, settings.DeprecatedMaintainer, diagnostic.Warning),
			diagnostic.DeprecatedMaintainer,
			"the MAINTAINER instruction is deprecated, use a LABEL instead").
			WithInstructionLine(line).WithTags(diagnostic.Deprecated))
	}

	checkVariableModifiers(c, inst, emit)

	switch upper {
	case "FROM":
		checkFrom(c, inst, emit)
	case "ADD":
		checkAddCopy(c, inst, emit, true)
	case "COPY":
		checkAddCopy(c, inst, emit, false)
	case "ARG":
		checkArg(c, inst, emit)
	case "ENV":
		checkEnvOrLabel(c, inst, emit, true)
	case "LABEL":
		checkEnvOrLabel(c, inst, emit, false)
	case "EXPOSE":
		checkExpose(c, inst, emit)
	case "HEALTHCHECK":
		checkHealthcheck(c, inst, emit)
	case "ONBUILD":
		checkOnbuild(c, inst, emit)
	case "SHELL":
		checkShell(c, inst, emit)
	case "STOPSIGNAL":
		checkStopsignal(c, inst, emit)
	case "WORKDIR":
		checkWorkdir(c, inst, emit)
	case "RUN", "CMD", "ENTRYPOINT", "VOLUME":
		checkJSONInSingleQuotes(c, inst, emit)
		checkAtLeastOneArgument(c, inst, emit)
	case "USER", "MAINTAINER":
		checkAtLeastOneArgument(c, inst, emit)
	}
}

func sevOrDefault(c *ctx, rule settings.Rule, fallback diagnostic.Severity) diagnostic.Severity {
	if c.settings == nil {
		return fallback
	}
	return c.settings.Severity(rule)
}

// allArguments returns every Argument an instruction carries, whether
// raw or JSON-decomposed, for rules that apply uniformly to both forms
// (e.g. the variable-modifier check).
func allArguments(inst *ast.Instruction) []ast.Argument {
	if inst.JSON != nil {
		return inst.JSON.Strings
	}
	return inst.Arguments
}

func checkAtLeastOneArgument(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	if len(allArguments(inst)) == 0 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresAtLeastOne,
			diagnostic.Format("${0} requires at least one argument", strings.ToUpper(inst.Keyword))).
			WithInstructionLine(inst.KeywordRange.Start.Line))
	}
}
