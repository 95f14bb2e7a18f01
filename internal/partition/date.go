// Package partition computes the object-store key prefixes targeted by a
// filter. Export data is laid out as Hive-style partitions:
//
//	<base>/type=<t>/date=<YYYY-MM-DD>/<key>=<value>/...
package partition

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate indicates a date filter that is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

// dateLayout is the partition date format.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or location component.
// Arithmetic goes through Next/After so month, year and leap-year rollover
// is handled by the calendar, not by string manipulation.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return Date{t: t.UTC()}, nil
}

// Next returns the calendar-day successor.
func (d Date) Next() Date {
	return Date{t: d.t.AddDate(0, 0, 1)}
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}
