package domain

import "time"

const (
	// APIDateLayout is the yyyy-MM-dd pattern used by tracking documents.
	APIDateLayout = "2006-01-02"
	// BirthDateLayout is the dd-MM-yyyy pattern users enter for birth dates.
	BirthDateLayout = "02-01-2006"
)

// Date is a calendar day without a time-of-day component.
type Date struct {
	t time.Time
}

// NewDate returns the calendar day y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseAPIDate parses a yyyy-MM-dd date. ok is false when s is malformed.
func ParseAPIDate(s string) (d Date, ok bool) {
	return parseDate(APIDateLayout, s)
}

// ParseBirthDate parses a dd-MM-yyyy date. ok is false when s is malformed.
func ParseBirthDate(s string) (d Date, ok bool) {
	return parseDate(BirthDateLayout, s)
}

func parseDate(layout, s string) (Date, bool) {
	if len(s) != len(layout) {
		return Date{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is a later calendar day than o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// IsZero reports whether d is the zero Date, as returned by a failed parse.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// YearsUntil returns the number of whole years elapsed from d to o.
func (d Date) YearsUntil(o Date) int {
	years := o.t.Year() - d.t.Year()
	if o.t.Month() < d.t.Month() || (o.t.Month() == d.t.Month() && o.t.Day() < d.t.Day()) {
		years--
	}
	return years
}

// String formats d with APIDateLayout.
func (d Date) String() string {
	return d.t.Format(APIDateLayout)
}

// BirthDateString formats d with BirthDateLayout.
func (d Date) BirthDateString() string {
	return d.t.Format(BirthDateLayout)
}
