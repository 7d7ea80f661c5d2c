package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// checkJSONInSingleQuotes implements the JSON-in-single-quotes detector
// (spec.md §4.6): an argument written as a bracketed, comma-separated
// list of single-quoted tokens is valid shell syntax but almost
// certainly meant to be the JSON-array form.
func checkJSONInSingleQuotes(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	if inst.JSON != nil || len(inst.Arguments) == 0 {
		return
	}
	raw := c.doc.Pos().Slice(inst.Range)
	start := strings.Index(raw, inst.Arguments[0].Value)
	if start < 0 {
		start = 0
	}
	body := raw[start:]

	if !looksLikeJSONInSingleQuotes(body) {
		return
	}

	emit(diagnostic.New(inst.Range,
		sevOrDefault(c, settings.InstructionJSONInSingleQuotes, diagnostic.Warning),
		diagnostic.JSONInSingleQuotes,
		"instruction has JSON-in-single-quotes, a syntax error most likely meant as a JSON array"))
}

// looksLikeJSONInSingleQuotes runs the micro state machine spec.md §4.6
// describes: `[`, single-quoted tokens separated by `,`, then `]`. Any
// structural deviation aborts without matching.
func looksLikeJSONInSingleQuotes(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return false
	}
	inner := s[1 : len(s)-1]

	i := 0
	n := len(inner)
	sawToken := false
	for {
		for i < n && (inner[i] == ' ' || inner[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if inner[i] != '\'' {
			return false
		}
		i++
		for i < n && inner[i] != '\'' {
			i++
		}
		if i >= n {
			return false
		}
		i++ // closing quote
		sawToken = true

		for i < n && (inner[i] == ' ' || inner[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if inner[i] != ',' {
			return false
		}
		i++
	}
	return sawToken
}
