package analytics

import (
	"strconv"
	"strings"
	"time"
)

// dayStart truncates an instant to local midnight.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the number of calendar days from a to b (b - a).
// The dates are re-anchored in UTC so the count stays exact across DST
// transitions, where a local midnight-to-midnight gap is not 24 hours.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// addDays advances an instant by whole calendar days.
func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return dayStart(a).Equal(dayStart(b))
}

// atTimeOfDay applies an "HH:MM" string to a calendar day, producing an
// absolute instant. Malformed strings are a contract violation upstream
// validation prevents; they degrade to midnight rather than failing.
func atTimeOfDay(day time.Time, timeOfDay string) time.Time {
	hour, minute := parseTimeOfDay(timeOfDay)
	d := dayStart(day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func parseTimeOfDay(s string) (hour, minute int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return h, 0
	}
	return h, m
}
