package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// ignoreCommentText is the exact comment body spec.md §4.5 step 8 matches
// (the '#' and surrounding whitespace are stripped before comparison).
const ignoreCommentText = "dockerfile-utils: ignore"

// suppressIgnored implements spec.md §4.5 step 8: a `# dockerfile-utils:
// ignore` comment on line L suppresses every diagnostic whose
// InstructionLine equals L+1. Diagnostics with no InstructionLine
// (directive/document-level) are never suppressed.
func suppressIgnored(c *ctx, diags []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	suppressed := map[int]bool{}
	for _, cm := range c.doc.Comments {
		body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cm.Text), "#"))
		if body == ignoreCommentText {
			suppressed[cm.Line+1] = true
		}
	}
	if len(suppressed) == 0 {
		return diags
	}

	out := diags[:0:0]
	for _, d := range diags {
		if d.InstructionLine != nil && suppressed[*d.InstructionLine] {
			continue
		}
		out = append(out, d)
	}
	return out
}
