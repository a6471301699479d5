package model

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the canonical textual form of every timestamp that
// leaves the service.
const TimestampLayout = time.RFC3339

// timestampLayouts are tried in order when parsing text. They cover ISO
// 8601 input from clients and the text forms the supported drivers hand
// back for DATETIME/TIMESTAMP columns.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses s using the accepted layouts. Values without a
// zone are taken as UTC. The result is always in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatTimestamp renders t in the canonical layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current time truncated to microseconds, the finest
// precision every supported engine keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
