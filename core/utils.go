package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	NowFunc = time.Now       // mockable
	NewID   = uuid.NewString // mockable
)

// Now returns the current time in UTC, truncated to milliseconds like the persisted ISO-8601 stamps.
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
