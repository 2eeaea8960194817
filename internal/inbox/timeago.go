package inbox

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order when parsing a notification's
// created_at value.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp as sent by the portal.
// Values without a zone are read as local time, except date-only values,
// which are UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		loc := time.Local
		if layout == "2006-01-02" {
			loc = time.UTC
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimeAgo formats the time elapsed between createdAt and now, e.g. "45s",
// "2m", "2h" or "1d". It returns an empty string when createdAt cannot be
// parsed.
func TimeAgo(createdAt string, now time.Time) string {
	t, ok := ParseTimestamp(createdAt)
	if !ok {
		return ""
	}
	return FormatElapsed(elapsedSeconds(t, now))
}

// elapsedSeconds returns the whole seconds from t to now. Unlike
// time.Duration it does not saturate for spans beyond about 292 years.
func elapsedSeconds(t, now time.Time) int64 {
	secs := now.Unix() - t.Unix()
	if now.Nanosecond() < t.Nanosecond() {
		secs--
	}
	return secs
}

// FormatElapsed renders whole elapsed seconds using the largest unit that
// keeps the value below the next tier. Negative values clamp to zero.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh", seconds/3600)
	default:
		return fmt.Sprintf("%dd", seconds/86400)
	}
}
