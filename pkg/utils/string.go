package utils

import "strings"

// SafeText coerces free-form input into a bounded string: trims
// surrounding whitespace and truncates to max. Never fails; garbage in,
// empty string out.
func SafeText(v string, max int) string {
	s := strings.TrimSpace(v)
	if max > 0 && len(s) > max {
		s = s[:max]
	}
	return s
}
