package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wharflab/dockerfile-utils/internal/diagnostic"
	"github.com/wharflab/dockerfile-utils/internal/position"
)

func codesOf(diags []diagnostic.Diagnostic) []diagnostic.Code {
	var codes []diagnostic.Code
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestValidate_UnknownInstruction(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nBOGUS foo\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.UnknownInstruction)
}

func TestValidate_InstructionCasing(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("from scratch\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.CasingInstruction)
}

func TestValidate_DeprecatedMaintainer(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nMAINTAINER me@example.com\n"), nil)
	var found *diagnostic.Diagnostic
	for i := range diags {
		if diags[i].Code == diagnostic.DeprecatedMaintainer {
			found = &diags[i]
		}
	}
	if assert.NotNil(t, found) {
		assert.Contains(t, found.Tags, diagnostic.Deprecated)
	}
}

func TestValidate_NoSourceImage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		want       bool
	}{
		{"empty", "", true},
		{"only arg", "ARG VERSION=1\n", true},
		{"run before from", "RUN echo hi\nFROM scratch\n", true},
		{"from first", "FROM scratch\nRUN echo hi\n", false},
		{"arg then from", "ARG V=1\nFROM scratch\n", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Equal(t, tt.want, contains(codesOf(diags), diagnostic.NoSourceImage))
		})
	}
}

func contains(codes []diagnostic.Code, target diagnostic.Code) bool {
	for _, c := range codes {
		if c == target {
			return true
		}
	}
	return false
}

func TestValidate_DuplicateBuildStageName(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch AS base\nFROM scratch AS BASE\n"), nil)

	var found []diagnostic.Diagnostic
	for _, d := range diags {
		if d.Code == diagnostic.DuplicateBuildStageName {
			found = append(found, d)
		}
	}
	assert.Len(t, found, 2)
}

func TestValidate_DuplicateBuildStageName_EveryOccurrence(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM node AS setup\nFROM node AS setup\n"), nil)

	var found []diagnostic.Diagnostic
	for _, d := range diags {
		if d.Code == diagnostic.DuplicateBuildStageName {
			found = append(found, d)
		}
	}
	if assert.Len(t, found, 2) {
		assert.Equal(t, position.Range{
			Start: position.Position{Line: 0, Character: 13},
			End:   position.Position{Line: 0, Character: 18},
		}, found[0].Range)
		assert.Equal(t, position.Range{
			Start: position.Position{Line: 1, Character: 13},
			End:   position.Position{Line: 1, Character: 18},
		}, found[1].Range)
	}
}

func TestValidate_DuplicateBuildStageName_ThreeOccurrences(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM a AS x\nFROM a AS x\nFROM a AS x\n"), nil)

	var found []diagnostic.Diagnostic
	for _, d := range diags {
		if d.Code == diagnostic.DuplicateBuildStageName {
			found = append(found, d)
		}
	}
	assert.Len(t, found, 3)
}

func TestValidate_From(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"bad tag", "FROM scratch:-bad\n", diagnostic.InvalidReferenceFormat},
		{"bad stage name", "FROM scratch AS Bad_Name!\n", diagnostic.InvalidBuildStageName},
		{"lowercase as", "FROM scratch as base\n", diagnostic.InvalidAs},
		{"unknown flag", "FROM --foo=bar scratch\n", diagnostic.UnknownFromFlag},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
}

func TestValidate_AddCopy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"add needs two", "FROM scratch\nADD only\n", diagnostic.ArgumentRequiresAtLeastTwo},
		{"copy unknown flag", "FROM scratch\nCOPY --bogus=1 a b\n", diagnostic.UnknownCopyFlag},
		{"copy from flag value", "FROM scratch\nCOPY --from=-bad a b\n", diagnostic.FlagInvalidFromValue},
		{"add bad boolean flag", "FROM scratch\nADD --link=maybe a b\n", diagnostic.FlagExpectedBooleanValue},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
}

func TestValidate_ArgEnvLabel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"arg missing name", "FROM scratch\nARG =1\n", diagnostic.SyntaxMissingNames},
		{"env missing equals", "FROM scratch\nENV FOO\n", diagnostic.ArgumentRequiresTwo},
		{"label missing equals", "FROM scratch\nLABEL FOO\n", diagnostic.SyntaxMissingEquals},
		{"env unterminated quote", "FROM scratch\nENV FOO=\"bar\n", diagnostic.SyntaxMissingDoubleQuote},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
}

func TestValidate_Expose(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"bad port", "FROM scratch\nEXPOSE abc\n", diagnostic.InvalidPort},
		{"bad proto", "FROM scratch\nEXPOSE 80/foo\n", diagnostic.InvalidProto},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
	diags := Validate([]byte("FROM scratch\nEXPOSE 80/tcp\n"), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.InvalidPort)
	assert.NotContains(t, codesOf(diags), diagnostic.InvalidProto)
}

func TestValidate_Healthcheck(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"unknown type", "FROM scratch\nHEALTHCHECK BOGUS\n", diagnostic.UnknownType},
		{"cmd missing arg", "FROM scratch\nHEALTHCHECK CMD\n", diagnostic.HealthcheckCmdArgumentMissing},
		{"none with extra args", "FROM scratch\nHEALTHCHECK NONE extra\n", diagnostic.ArgumentUnnecessary},
		{"bad retries", "FROM scratch\nHEALTHCHECK --retries=x CMD a\n", diagnostic.InvalidSyntax},
		{"retries below one", "FROM scratch\nHEALTHCHECK --retries=0 CMD a\n", diagnostic.FlagAtLeastOne},
		{"unknown flag", "FROM scratch\nHEALTHCHECK --bogus=1 CMD a\n", diagnostic.UnknownHealthcheckFlag},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
}

func TestValidate_HealthcheckNoneToleratesDurationFlags(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nHEALTHCHECK NONE --interval=5s\n"), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.UnknownHealthcheckFlag)
}

func TestValidate_Onbuild(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"chains onbuild", "FROM scratch\nONBUILD ONBUILD RUN x\n", diagnostic.OnbuildChainingDisallowed},
		{"triggers from", "FROM scratch\nONBUILD FROM scratch\n", diagnostic.OnbuildTriggerDisallowed},
		{"recurses into trigger", "FROM scratch\nONBUILD bogus\n", diagnostic.UnknownInstruction},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
}

func TestValidate_Shell(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nSHELL /bin/sh -c\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.ShellJSONForm)

	diags = Validate([]byte(`FROM scratch` + "\n" + `SHELL []` + "\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.ShellRequiresOne)
}

func TestValidate_Stopsignal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCode   diagnostic.Code
	}{
		{"bad signal", "FROM scratch\nSTOPSIGNAL bogus\n", diagnostic.InvalidSignal},
		{"too many args", "FROM scratch\nSTOPSIGNAL SIGTERM extra\n", diagnostic.ArgumentRequiresOne},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := Validate([]byte(tt.dockerfile), nil)
			assert.Contains(t, codesOf(diags), tt.wantCode)
		})
	}
	diags := Validate([]byte("FROM scratch\nSTOPSIGNAL SIGTERM\n"), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.InvalidSignal)
	diags = Validate([]byte("FROM scratch\nSTOPSIGNAL 9\n"), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.InvalidSignal)
}

func TestValidate_Workdir(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nWORKDIR relative/path\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.WorkdirIsNotAbsolute)

	diags = Validate([]byte("FROM scratch\nWORKDIR /absolute/path\n"), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.WorkdirIsNotAbsolute)
}

func TestValidate_JSONInSingleQuotes(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte(`FROM scratch` + "\n" + `RUN ['echo', 'hi']` + "\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.JSONInSingleQuotes)
}

func TestValidate_IgnoreCommentSuppresses(t *testing.T) {
	t.Parallel()
	dockerfile := "FROM scratch\n# dockerfile-utils: ignore\nWORKDIR relative\n"
	diags := Validate([]byte(dockerfile), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.WorkdirIsNotAbsolute)
}

func TestValidate_VariableModifierSuffix(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nARG X\nLABEL v=${X:*bad}\n"), nil)
	assert.Contains(t, codesOf(diags), diagnostic.UnsupportedModifier)
}

func TestValidate_VariableModifierEmpty(t *testing.T) {
	t.Parallel()
	diags := Validate([]byte("FROM scratch\nARG X\nLABEL v=${X:}\n"), nil)

	var found *diagnostic.Diagnostic
	for i := range diags {
		if diags[i].Code == diagnostic.UnsupportedModifier {
			found = &diags[i]
			break
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, position.Range{
			Start: position.Position{Line: 2, Character: 8},
			End:   position.Position{Line: 2, Character: 13},
		}, found.Range)
	}
}

func TestValidate_EmptyContinuationLine(t *testing.T) {
	t.Parallel()
	dockerfile := "FROM scratch\nRUN echo a && \\\n\n    echo b\n"
	diags := Validate([]byte(dockerfile), nil)
	assert.Contains(t, codesOf(diags), diagnostic.EmptyContinuationLine)
}

func TestValidate_EmptyContinuationLineExcludesOnbuildTrigger(t *testing.T) {
	t.Parallel()
	dockerfile := "FROM scratch\nONBUILD RUN echo a && \\\n\n    echo b\n"
	diags := Validate([]byte(dockerfile), nil)
	assert.NotContains(t, codesOf(diags), diagnostic.EmptyContinuationLine)
}
