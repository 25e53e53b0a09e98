package core

import (
	"strings"
	"time"
)

// NowFunc returns the current time; tests may replace it.
var NowFunc = time.Now // mockable

// Now returns NowFunc() in UTC, truncated to the millisecond precision used by the storage layer.
func Now() time.Time {
	return NowFunc().UTC().Truncate(time.Millisecond)
}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
