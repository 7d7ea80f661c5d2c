package validator

import "strings"

// durationUnits are the recognized suffix letters, longest first so that
// "ms" is matched before "m" and "us"/"µs" before no shorter ambiguous
// prefix exists.
var durationUnits = []string{"ms", "us", "µs", "ns", "h", "m", "s"}

type durationOutcome int

const (
	durationOK durationOutcome = iota
	durationMissing                  // FLAG_MISSING_DURATION
	durationInvalid                  // FLAG_INVALID_DURATION
	durationUnknownUnit              // FLAG_UNKNOWN_UNIT
	durationLessThan1ms              // FLAG_LESS_THAN_1MS
)

// parseDuration implements the duration sub-engine (spec.md §4.6). It
// returns the outcome and, for durationUnknownUnit, the byte range
// within s of the offending unit text.
func parseDuration(s string) (outcome durationOutcome, badStart, badEnd int) {
	if s == "" {
		return durationMissing, 0, 0
	}
	first := s[0]
	if !(first >= '0' && first <= '9') && first != '.' && first != '-' {
		return durationMissing, 0, 0
	}

	i := 0
	pairs := 0
	var totalMillis float64

	for i < len(s) {
		magStart := i
		dots := 0
		negHyphen := false
		if s[i] == '-' {
			if i+1 < len(s) && s[i+1] == '-' {
				return durationInvalid, i, i + 2
			}
			negHyphen = true
			i++
		}
		digitsStart := i
		for i < len(s) && ((s[i] >= '0' && s[i] <= '9') || s[i] == '.') {
			if s[i] == '.' {
				dots++
			}
			i++
		}
		if i == digitsStart {
			if negHyphen {
				return durationUnknownUnit, magStart, i
			}
			return durationMissing, magStart, i
		}
		if dots > 1 {
			return durationMissing, magStart, i
		}

		magText := s[digitsStart:i]
		mag := parseFloatLocal(magText)
		if negHyphen {
			mag = -mag
		}

		unitStart := i
		if unitStart < len(s) && s[unitStart] == '-' {
			return durationUnknownUnit, unitStart, unitStart + 1
		}
		unit := ""
		for _, u := range durationUnits {
			if strings.HasPrefix(s[i:], u) {
				unit = u
				break
			}
		}
		if unit == "" {
			unitEnd := unitStart
			for unitEnd < len(s) && !(s[unitEnd] >= '0' && s[unitEnd] <= '9') && s[unitEnd] != '.' && s[unitEnd] != '-' {
				unitEnd++
			}
			if unitEnd == unitStart {
				unitEnd = unitStart + 1
			}
			return durationUnknownUnit, unitStart, unitEnd
		}
		i += len(unit)

		var millisPerUnit float64
		switch unit {
		case "h":
			millisPerUnit = 3600000
		case "m":
			millisPerUnit = 60000
		case "s":
			millisPerUnit = 1000
		case "ms":
			millisPerUnit = 1
		case "us", "µs":
			millisPerUnit = 0.001
		case "ns":
			millisPerUnit = 0.000001
		}

		if negHyphen && mag == 0 {
			return durationLessThan1ms, magStart, i
		}
		if mag < 0 {
			return durationLessThan1ms, magStart, i
		}

		totalMillis += mag * millisPerUnit
		pairs++
	}

	if pairs == 0 {
		return durationMissing, 0, len(s)
	}
	if totalMillis < 1 {
		return durationLessThan1ms, 0, len(s)
	}
	return durationOK, 0, 0
}

// parseFloatLocal parses a digit/period run without importing strconv's
// error-path machinery; malformed input (already excluded by the caller's
// dots<=1 check) yields 0.
func parseFloatLocal(s string) float64 {
	var intPart, fracPart float64
	var fracDiv float64 = 1
	inFrac := false
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			inFrac = true
			continue
		}
		d := float64(s[i] - '0')
		if inFrac {
			fracDiv *= 10
			fracPart = fracPart*10 + d
		} else {
			intPart = intPart*10 + d
		}
	}
	return intPart + fracPart/fracDiv
}
