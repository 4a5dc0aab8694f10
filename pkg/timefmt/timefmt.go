// Package timefmt renders record timestamps for the views.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

const absoluteLayout = "Jan 2, 2006 at 3:04 PM"

// Absolute formats t in loc as "Nov 19, 2025 at 11:53 AM". A nil loc means local time.
func Absolute(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(absoluteLayout)
}

// Relative describes how long before now t happened. Each unit is rounded from the
// already rounded smaller unit, half up, so 45 seconds reads as "1 minute ago" and
// 90 minutes as "2 hours ago". Times in the future read as "Just now".
func Relative(t, now time.Time) string {
	seconds := roundHalfUp(float64(now.Sub(t).Milliseconds()) / 1000)
	minutes := roundHalfUp(seconds / 60)
	hours := roundHalfUp(minutes / 60)
	days := roundHalfUp(hours / 24)

	switch {
	case seconds < 45:
		return "Just now"
	case minutes < 60:
		return plural(minutes, "minute")
	case hours < 24:
		return plural(hours, "hour")
	default:
		return plural(days, "day")
	}
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func plural(n float64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", int64(n), unit)
}
