package viewsync

import (
	"fmt"
	"time"
)

// RelativeTime describes how long ago then was, relative to now:
// "just now", "N min(s) ago", "N hour(s) ago" or "N day(s) ago".
func RelativeTime(now, then time.Time) string {
	minute := (now.UnixMilli() - then.UnixMilli()) / 1000 / 60
	hour := minute / 60
	day := hour / 24

	switch {
	case minute < 1:
		return "just now"
	case minute < 60:
		return fmt.Sprintf("%d min%s ago", minute, plural(minute))
	case hour < 24:
		return fmt.Sprintf("%d hour%s ago", hour, plural(hour))
	default:
		return fmt.Sprintf("%d day%s ago", day, plural(day))
	}
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
