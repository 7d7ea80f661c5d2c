package validator

import (
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
)

// shellFormInstructions skips variable-modifier validation for keywords
// whose argument text is handed to a shell rather than expanded by the
// recipe parser itself (spec.md §4.6 "variable-modifier validation").
var shellFormInstructions = map[string]bool{
	"RUN": true, "CMD": true, "ENTRYPOINT": true,
}

// checkVariableModifiers implements spec.md §4.5 step 7: `${name:modifier
// ...}` occurrences must use one of the three supported modifier forms.
func checkVariableModifiers(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	upper := strings.ToUpper(inst.Keyword)
	if shellFormInstructions[upper] {
		return
	}

	for _, arg := range allArguments(inst) {
		for _, v := range ast.Variables(arg) {
			if !v.Modifier.Present {
				continue
			}
			if v.Modifier.Text == "" {
				emit(diagnostic.New(v.Range, diagnostic.Error, diagnostic.UnsupportedModifier,
					diagnostic.Format("unsupported modifier '${0}' in variable '${1}'", v.Modifier.Text, v.Name)).
					WithInstructionLine(inst.KeywordRange.Start.Line))
				continue
			}
			switch v.Modifier.Text[0] {
			case '-', '+', '?':
				continue
			}
			emit(diagnostic.New(v.Modifier.Range, diagnostic.Error, diagnostic.UnsupportedModifier,
				diagnostic.Format("unsupported modifier '${0}' in variable '${1}'", v.Modifier.Text, v.Name)).
				WithInstructionLine(inst.KeywordRange.Start.Line))
		}
	}
}
