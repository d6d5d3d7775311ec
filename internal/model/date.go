// Package model holds the small set of types shared across every layer of
// the simulation: the calendar-day Date type and the Component contract
// that catchments, reservoirs, demands, and every other node in the
// network graph implement.
package model

import "time"

// Date is a calendar day. The whole system steps at one-day cadence, so
// every Date is truncated to midnight UTC on construction to keep
// comparisons and map keys well-behaved.
type Date struct {
	t time.Time
}

// NewDate truncates t to a day boundary in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string, the format the whole configuration
// surface uses for start_date/end_date and time-series driver columns.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// Add returns the date n days later (n may be negative).
func (d Date) Add(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// DayOfYear returns the 1-366 ordinal day, as used by Snow17's seasonal
// melt factor and WGEN's Fourier terms.
func (d Date) DayOfYear() int {
	return d.t.YearDay()
}

// DaysInYear returns 366 for leap years the date falls in, else 365.
func (d Date) DaysInYear() int {
	y := d.t.Year()
	if time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366 {
		return 366
	}
	return 365
}

// Month returns the calendar month (1-12), used for WGEN's monthly
// parameter lookup.
func (d Date) Month() int {
	return int(d.t.Month())
}

// Time returns the underlying UTC midnight time.Time.
func (d Date) Time() time.Time {
	return d.t
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
