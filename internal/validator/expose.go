package validator

import (
	"regexp"
	"strings"

	"github.com/wharflab/dockerfile-utils/internal/ast"
	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
)

// exposePattern mirrors spec.md §4.6's EXPOSE grammar; capture group 7 is
// the optional protocol substring.
var exposePattern = regexp.MustCompile(`^([0-9])+(-[0-9]+)?(:([0-9])+(-[0-9]*)?)?(\/(\w*))?(\/\w*)*$`)

var validProtocols = map[string]bool{"tcp": true, "udp": true, "sctp": true}

// checkExpose implements spec.md §4.6 EXPOSE.
func checkExpose(c *ctx, inst *ast.Instruction, emit func(diagnostic.Diagnostic)) {
	args := allArguments(inst)
	if len(args) == 0 {
		emit(diagnostic.New(inst.KeywordRange, diagnostic.Error, diagnostic.ArgumentRequiresAtLeastOne,
			"EXPOSE requires at least one argument").
			WithInstructionLine(inst.KeywordRange.Start.Line))
		return
	}

	for _, arg := range args {
		value := strings.TrimPrefix(strings.TrimSuffix(arg.Value, `"`), `"`)
		if strings.HasPrefix(value, "$") {
			continue
		}

		idx := exposePattern.FindStringSubmatchIndex(value)
		if idx == nil {
			emit(diagnostic.New(arg.Range, diagnostic.Error, diagnostic.InvalidPort,
				diagnostic.Format("invalid containerPort: ${0}", value)))
			continue
		}

		if idx[14] >= 0 && idx[15] > idx[14] {
			proto := value[idx[14]:idx[15]]
			if !validProtocols[strings.ToLower(proto)] {
				r := subArgRange(arg, value, idx[14], idx[15])
				emit(diagnostic.New(r, diagnostic.Error, diagnostic.InvalidProto,
					diagnostic.Format("invalid protocol: ${0}", proto)))
			}
		}
	}
}

// subArgRange computes the sub-range of value[start:end] within arg's
// range, assuming value is arg.Value possibly with surrounding quotes
// trimmed (both on the same single line, true for EXPOSE arguments).
func subArgRange(arg ast.Argument, value string, start, end int) position.Range {
	offset := strings.Index(arg.Value, value)
	if offset < 0 {
		offset = 0
	}
	return position.Range{
		Start: position.Position{Line: arg.Range.Start.Line, Character: arg.Range.Start.Character + utf16ColLocal(arg.Value, offset+start)},
		End:   position.Position{Line: arg.Range.Start.Line, Character: arg.Range.Start.Character + utf16ColLocal(arg.Value, offset+end)},
	}
}
