package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyNameEnd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		in          string
		wantEnd     int
		wantErr     byte
	}{
		{"bare name with value", "FOO=bar", 3, 0},
		{"bare name no value", "FOO", 3, 0},
		{"quoted name", `"FOO"=bar`, 5, 0},
		{"unterminated double quote", `"FOO=bar`, 0, '"'},
		{"unterminated single quote", `'FOO=bar`, 0, '\''},
		{"empty", "", 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			end, errQuote := propertyNameEnd(tt.in)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantErr, errQuote)
		})
	}
}

func TestQuoteTerminated(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		in    string
		quote byte
		want  bool
	}{
		{"terminated double", `"bar"`, '"', true},
		{"unterminated double", `"bar`, '"', false},
		{"escaped quote inside", `"ba\"r"`, '"', true},
		{"single quote no escape processing", `'ba\'`, '\'', true},
		{"too short", `"`, '"', false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, quoteTerminated(tt.in, tt.quote, '\\'))
		})
	}
}
