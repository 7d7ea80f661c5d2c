package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		outcome durationOutcome
	}{
		{"empty", "", durationMissing},
		{"plain seconds", "5s", durationOK},
		{"compound", "1h30m", durationOK},
		{"milliseconds", "500ms", durationOK},
		{"microseconds unicode", "500µs", durationLessThan1ms},
		{"microseconds ascii", "500us", durationLessThan1ms},
		{"fractional", "1.5s", durationOK},
		{"double dot", "1..5s", durationMissing},
		{"double hyphen", "--5s", durationInvalid},
		{"hyphen after magnitude", "5-s", durationUnknownUnit},
		{"unknown unit", "5q", durationUnknownUnit},
		{"negative magnitude", "-5s", durationLessThan1ms},
		{"negative zero", "-0s", durationLessThan1ms},
		{"below one millisecond", "500ns", durationLessThan1ms},
		{"not a number", "abc", durationMissing},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outcome, _, _ := parseDuration(tt.in)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}
