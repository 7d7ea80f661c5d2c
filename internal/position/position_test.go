package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LineSplitting(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		src   string
		lines []string
	}{
		{"lf", "a\nb\nc", []string{"a", "b", "c"}},
		{"cr", "a\rb\rc", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb\r\nc", []string{"a", "b", "c"}},
		{"trailing newline", "a\nb\n", []string{"a", "b", ""}},
		{"empty", "", []string{""}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := New([]byte(tt.src))
			assert.Equal(t, len(tt.lines), m.LineCount())
			for i, want := range tt.lines {
				assert.Equal(t, want, m.LineText(i))
			}
		})
	}
}

func TestPositionAt_OffsetAt_RoundTrip(t *testing.T) {
	t.Parallel()
	m := New([]byte("FROM scratch\nRUN echo hi\n"))

	p := m.PositionAt(5)
	assert.Equal(t, Position{Line: 0, Character: 5}, p)

	offset := m.OffsetAt(p)
	assert.Equal(t, 5, offset)

	p2 := m.PositionAt(13)
	assert.Equal(t, Position{Line: 1, Character: 0}, p2)
}

func TestSlice(t *testing.T) {
	t.Parallel()
	m := New([]byte("FROM scratch\n"))
	r := Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 4}}
	assert.Equal(t, "FROM", m.Slice(r))
}

func TestPositionAt_UTF16Surrogates(t *testing.T) {
	t.Parallel()
	// U+1F600 (grinning face) takes two UTF-16 code units but four UTF-8 bytes.
	m := New([]byte("a😀b\n"))
	p := m.PositionAt(5) // byte offset just after the emoji
	assert.Equal(t, Position{Line: 0, Character: 3}, p)
}

func TestRange_Empty(t *testing.T) {
	t.Parallel()
	p := Position{Line: 1, Character: 2}
	assert.True(t, Range{Start: p, End: p}.Empty())
	assert.False(t, Range{Start: p, End: Position{Line: 1, Character: 3}}.Empty())
}

func TestPosition_Before(t *testing.T) {
	t.Parallel()
	assert.True(t, Position{Line: 0, Character: 5}.Before(Position{Line: 1, Character: 0}))
	assert.True(t, Position{Line: 1, Character: 0}.Before(Position{Line: 1, Character: 1}))
	assert.False(t, Position{Line: 1, Character: 1}.Before(Position{Line: 1, Character: 1}))
}
