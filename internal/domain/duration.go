package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Longer unit tokens come first so "hours" is not consumed as "h" + leftover.
var (
	qualifiedDurationRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?|h|m)\b`)
	bareNumberRe        = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseDuration extracts an elapsed time in hours from free text.
//
// All unit-qualified quantities accumulate additively ("1h 30min" -> 1.5).
// When no unit appears anywhere, the first bare number is taken verbatim as
// hours; later numbers are ignored, so unrelated digits (dates, phone
// numbers) can mislead it. The second return value is false when the text
// carries no duration information at all.
func ParseDuration(text string) (float64, bool) {
	lowered := strings.ToLower(text)

	matches := qualifiedDurationRe.FindAllStringSubmatch(lowered, -1)
	if len(matches) > 0 {
		total := 0.0
		for _, match := range matches {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			if strings.HasPrefix(match[2], "h") {
				total += value
			} else {
				total += value / 60
			}
		}
		return total, true
	}

	if raw := bareNumberRe.FindString(lowered); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return value, true
		}
	}

	return 0, false
}
