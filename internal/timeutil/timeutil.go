package timeutil

import (
	"strings"
	"time"
)

// ParseDurationOrDefault parses value and returns def when it is empty,
// invalid or not positive.
func ParseDurationOrDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
