package timezone

import (
	"errors"
	"time"
)

const DefaultTimezone = "UTC"

const dateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone for unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Clock is the single source of "now" for date rules.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc, now: time.Now}
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return Clock{loc: t.Location(), now: func() time.Time { return t }}
}

func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now().In(c.Location())
	}
	return c.now().In(c.Location())
}

// Today is the current calendar day in the clock's location.
func (c Clock) Today() time.Time {
	return CalendarDay(c.Now())
}

// CalendarDay strips the time of day, keeping the local date as UTC midnight.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Timestamps are
// converted to loc before the time of day is dropped.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}
	return CalendarDay(t.In(loc)), nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
