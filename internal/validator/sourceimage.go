package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
)

// checkSourceImage implements spec.md §4.5 step 2.
func checkSourceImage(c *ctx, emit func(diagnostic.Diagnostic)) {
	insts := c.doc.Instructions

	onlyArgOrEmpty := true
	for _, inst := range insts {
		upper := strings.ToUpper(inst.Keyword)
		if upper != "ARG" {
			onlyArgOrEmpty = false
			break
		}
	}
	if len(insts) == 0 || onlyArgOrEmpty {
		zero := position.Position{Line: 0, Character: 0}
		emit(diagnostic.New(position.Range{Start: zero, End: zero}, diagnostic.Error, diagnostic.NoSourceImage,
			"no source image is defined for this build stage"))
		return
	}

	for _, inst := range insts {
		upper := strings.ToUpper(inst.Keyword)
		if upper != "FROM" && upper != "ARG" {
			emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.NoSourceImage,
				"no source image is defined for this build stage"))
			return
		}
		if upper == "FROM" {
			return
		}
	}
}
