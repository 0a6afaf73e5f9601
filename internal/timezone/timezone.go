package timezone

import (
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o fuso oficial do negócio; valores inválidos caem no padrão.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock is the single source of "now" for the scheduling core.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(tz string) SystemClock {
	return SystemClock{loc: Location(tz)}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c SystemClock) Location() *time.Location {
	return c.loc
}

// FixedClock always reports the same instant. Used by tests and replays.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Location() *time.Location {
	return c.At.Location()
}

func ParseDate(loc *time.Location, date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

func ParseDateTime(loc *time.Location, date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, date+" "+clock, loc)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
