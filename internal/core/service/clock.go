package service

import (
	"time"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// Today returns the current calendar day. Services read the date only
// through it so tests can pin a fixed day.
type Today func() domain.Date

// SystemToday reads the wall clock in loc. A nil loc means UTC.
func SystemToday(loc *time.Location) Today {
	if loc == nil {
		loc = time.UTC
	}
	return func() domain.Date {
		return domain.DateOf(time.Now().In(loc))
	}
}

// FixedToday always returns d.
func FixedToday(d domain.Date) Today {
	return func() domain.Date { return d }
}
