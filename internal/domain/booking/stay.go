package booking

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Stay is the half-open date interval [CheckIn, CheckOut) of a booking.
// Both ends are calendar dates normalized to midnight UTC.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// DateOf returns the calendar date of t, in t's location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalidDateRange(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// NewStay validates a requested interval against today.
func NewStay(checkIn, checkOut, today time.Time) (Stay, error) {
	in, out, now := DateOf(checkIn), DateOf(checkOut), DateOf(today)
	if in.Before(now) {
		return Stay{}, invalidDateRange("check-in date cannot be in the past")
	}
	if !out.After(in) {
		return Stay{}, invalidDateRange("check-out date must be after check-in date")
	}
	return Stay{CheckIn: in, CheckOut: out}, nil
}

// Nights is the integer number of days between check-in and check-out.
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// Overlaps applies the half-open test: a check-out on day D does not collide with a check-in on day D.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && s.CheckOut.After(other.CheckIn)
}

func (s Stay) String() string {
	return s.CheckIn.Format(DateLayout) + "/" + s.CheckOut.Format(DateLayout)
}
