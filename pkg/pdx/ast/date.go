package ast

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Date is a calendar date as written in game data ("1066.9.15").
// Years are not bounded to the Gregorian range the time package supports.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a "year.month.day" string. Exactly three integer parts are
// required, with month in 1..12 and day in 1..31.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("date %q: expected year.month.day", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("date %q: invalid component %q", s, p)
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Month < 1 || d.Month > 12 {
		return Date{}, fmt.Errorf("date %q: month %d out of range", s, d.Month)
	}
	if d.Day < 1 || d.Day > 31 {
		return Date{}, fmt.Errorf("date %q: day %d out of range", s, d.Day)
	}
	return d, nil
}

// String formats the date the way game files write it.
func (d Date) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// SortEvents orders events chronologically. Events sharing a date keep their
// document order.
func SortEvents(events []*Event) {
	slices.SortStableFunc(events, func(a, b *Event) int {
		return a.Date.Compare(b.Date)
	})
}
