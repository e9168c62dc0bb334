package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// shortTimePattern matches a bare wall-clock label like "9:00" or "17:30".
var shortTimePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Parse converts either serialization of an instant into an absolute time.
// A short "HH:mm" label is resolved against the calendar day of ref, in ref's
// location; anything else must be RFC3339. On unparseable input the zero time
// is returned together with an error, and callers must check before using it.
func Parse(value string, ref time.Time) (time.Time, error) {
	if m := shortTimePattern.FindStringSubmatch(value); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return time.Time{}, fmt.Errorf("invalid wall-clock time: %q", value)
		}
		year, month, day := ref.Date()
		return time.Date(year, month, day, hour, minute, 0, 0, ref.Location()), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t, nil
}

// DurationMinutes returns the length of the range in whole minutes, clamped at
// zero. A corrupted end-before-start pair yields 0 rather than a negative
// duration; this is a defensive clamp, not a correctness guarantee.
func DurationMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Shift moves the range so it begins at newStart. The duration is preserved
// exactly; only the anchor point moves.
func Shift(start, end, newStart time.Time) (time.Time, time.Time) {
	return newStart, newStart.Add(end.Sub(start))
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	year1, month1, day1 := a.In(loc).Date()
	year2, month2, day2 := b.In(loc).Date()
	return year1 == year2 && month1 == month2 && day1 == day2
}

// DayOf truncates t to midnight of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
