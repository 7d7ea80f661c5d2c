package ast

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/position"
)

// buildFromRefs extracts the tag/digest/stage-name sub-ranges a FROM
// instruction's first argument carries (spec.md §4.2, §4.6 FROM).
func buildFromRefs(inst *Instruction) *FromRefs {
	if len(inst.Arguments) == 0 {
		return nil
	}
	refs := &FromRefs{}
	arg := inst.Arguments[0]
	raw := arg.Value
	namePart := raw

	if at := strings.LastIndex(raw, "@"); at >= 0 {
		namePart = raw[:at]
		r := subRange(arg.Range, raw, at+1, len(raw))
		refs.DigestRange = &r
	}

	lastSlash := strings.LastIndex(namePart, "/")
	segment := namePart
	segOffset := 0
	if lastSlash >= 0 {
		segment = namePart[lastSlash+1:]
		segOffset = lastSlash + 1
	}
	if colon := strings.Index(segment, ":"); colon >= 0 {
		tagStart := segOffset + colon + 1
		r := subRange(arg.Range, raw, tagStart, len(namePart))
		refs.TagRange = &r
	}

	if len(inst.Arguments) >= 3 {
		r := inst.Arguments[2].Range
		refs.StageRange = &r
	}

	return refs
}

// subRange computes the sub-range of raw[start:end] within base, assuming
// raw is entirely on base.Start.Line (true for the FROM image argument,
// which never spans a continuation line in practice).
func subRange(base position.Range, raw string, start, end int) position.Range {
	if start < 0 {
		start = 0
	}
	if end > len(raw) {
		end = len(raw)
	}
	if end < start {
		end = start
	}
	return position.Range{
		Start: position.Position{Line: base.Start.Line, Character: base.Start.Character + utf16Col(raw, start)},
		End:   position.Position{Line: base.Start.Line, Character: base.Start.Character + utf16Col(raw, end)},
	}
}
