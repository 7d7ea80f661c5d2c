package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicInstructions(t *testing.T) {
	t.Parallel()
	doc := Parse([]byte("FROM scratch AS base\nRUN echo hi\n"))

	require.Len(t, doc.Instructions, 2)
	assert.Equal(t, "FROM", doc.Instructions[0].Keyword)
	assert.Equal(t, []string{"scratch", "AS", "base"}, valuesOf(doc.Instructions[0].Arguments))
	assert.Equal(t, "RUN", doc.Instructions[1].Keyword)
}

func TestParse_EscapeDirective(t *testing.T) {
	t.Parallel()
	doc := Parse([]byte("# escape=`\nFROM scratch\n"))
	assert.Equal(t, '`', doc.Escape)
}

func TestParse_Flags(t *testing.T) {
	t.Parallel()
	doc := Parse([]byte("FROM --platform=linux/amd64 scratch\n"))
	require.Len(t, doc.Instructions, 1)
	require.Len(t, doc.Instructions[0].Flags, 1)
	f := doc.Instructions[0].Flags[0]
	assert.Equal(t, "platform", f.Name)
	assert.True(t, f.HasValue)
	assert.Equal(t, "linux/amd64", f.Value)
}

func TestParse_JSONForm(t *testing.T) {
	t.Parallel()
	doc := Parse([]byte(`CMD ["echo", "hi"]` + "\n"))
	require.Len(t, doc.Instructions, 1)
	require.NotNil(t, doc.Instructions[0].JSON)
	assert.Equal(t, []string{"echo", "hi"}, valuesOf(doc.Instructions[0].JSON.Strings))
}

func TestParse_OnbuildTrigger(t *testing.T) {
	t.Parallel()
	doc := Parse([]byte("FROM scratch\nONBUILD RUN echo hi\n"))
	require.Len(t, doc.Instructions, 2)
	onbuild := doc.Instructions[1]
	assert.Equal(t, "ONBUILD", onbuild.Keyword)
	require.NotNil(t, onbuild.Trigger)
	assert.Equal(t, "RUN", onbuild.Trigger.Keyword)
}

func TestParse_MalformedInputDegradesGracefully(t *testing.T) {
	t.Parallel()
	doc := Parse([]byte("\x00\x01garbage"))
	assert.NotNil(t, doc)
}

func TestVariables_Braced(t *testing.T) {
	t.Parallel()
	arg := argAt("${FOO:-bar}")
	vars := Variables(arg)
	require.Len(t, vars, 1)
	assert.Equal(t, "FOO", vars[0].Name)
	assert.True(t, vars[0].Braced)
	require.True(t, vars[0].Modifier.Present)
	assert.Equal(t, "-bar", vars[0].Modifier.Text)
}

func TestVariables_Bare(t *testing.T) {
	t.Parallel()
	arg := argAt("$FOO/bin")
	vars := Variables(arg)
	require.Len(t, vars, 1)
	assert.Equal(t, "FOO", vars[0].Name)
	assert.False(t, vars[0].Braced)
}

func TestVariables_NoModifier(t *testing.T) {
	t.Parallel()
	arg := argAt("${FOO}")
	vars := Variables(arg)
	require.Len(t, vars, 1)
	assert.False(t, vars[0].Modifier.Present)
}

func TestVariables_Multiple(t *testing.T) {
	t.Parallel()
	arg := argAt("$A-$B")
	vars := Variables(arg)
	require.Len(t, vars, 2)
	assert.Equal(t, "A", vars[0].Name)
	assert.Equal(t, "B", vars[1].Name)
}

func valuesOf(args []Argument) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Value
	}
	return out
}

// argAt builds a bare Argument over raw text, for exercising Variables in
// isolation without going through a full instruction parse.
func argAt(s string) Argument {
	return Argument{Value: s}
}
