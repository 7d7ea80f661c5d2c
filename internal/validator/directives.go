package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/settings"
)

// checkDirectives implements spec.md §4.5 step 1: escape-directive
// duplication aborts further directive validation entirely.
func checkDirectives(c *ctx, emit func(diagnostic.Diagnostic)) {
	var escapes []ast.Directive
	for _, dir := range c.doc.Directives {
		if strings.EqualFold(dir.Name, "escape") {
			escapes = append(escapes, dir)
		}
	}

	if len(escapes) > 1 {
		for _, dup := range escapes[1:] {
			emit(diagnostic.New(dup.NameRange, diagnostic.Error, diagnostic.DuplicatedEscapeDirective,
				"only one escape parser directive may be used"))
		}
		return
	}

	for _, dir := range c.doc.Directives {
		if strings.EqualFold(dir.Name, "escape") && dir.Value != "\\" && dir.Value != "`" && dir.Value != "" {
			emit(diagnostic.New(dir.ValueRange, diagnostic.Error, diagnostic.InvalidEscapeDirective,
				diagnostic.Format("invalid ESCAPE '${0}'. Must be ` or \\", dir.Value)))
		}

		if dir.Name != strings.ToLower(dir.Name) {
			emit(diagnostic.New(dir.NameRange,
				sevOrDefault(c, settings.DirectiveCasing, diagnostic.Warning),
				diagnostic.CasingDirective,
				diagnostic.Format("directive '${0}' should be written in lowercase", dir.Name)))
		}
	}
}
