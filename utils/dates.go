// utils/dates.go
package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const dateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

func EndOfDay(t time.Time) time.Time {
	return now.With(t).EndOfDay()
}

// DaysBetween counts calendar days from start's day to end's day, negative
// when end falls on an earlier day. Days shortened or lengthened by a DST
// switch still count as one.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end.In(start.Location()))
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// AddMonths adds calendar months to t. When t's day does not exist in the
// target month it is clamped to that month's last day, so Jan 31 + 1 month is
// Feb 28 (Feb 29 in leap years). Clock time and location are kept.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := now.With(first).EndOfMonth().Day(); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// ParseTimestamp accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date,
// which is read as midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC 3339 or YYYY-MM-DD", s)
}
