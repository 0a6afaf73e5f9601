package appointment

import (
	"iter"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarberID               uint
	DateFrom               time.Time
	DateTo                 time.Time
	ServiceDurationMinutes int
}

type BarberInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type AvailabilityResult struct {
	Barber                 BarberInfo        `json:"barber"`
	From                   string            `json:"from"`
	To                     string            `json:"to"`
	SlotMinutes            int               `json:"slot_minutes"`
	ServiceDurationMinutes int               `json:"service_duration_minutes"`
	Days                   []DayAvailability `json:"days"`
}

// FreeSlots yields, in ascending order, the start of every slot of day that
// is still in the future and not covered by an active appointment.
func FreeSlots(
	day time.Time,
	hours BusinessHours,
	appointments []models.Appointment,
	now time.Time,
) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if hours.Closed || hours.Slot <= 0 {
			return
		}

		open, closeAt := hours.Window(day)
		for cur := open; cur.Before(closeAt); cur = cur.Add(hours.Slot) {
			if !cur.After(now) {
				continue
			}
			if isBlocked(cur, appointments) {
				continue
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// A slot is blocked when its start falls in [ap.start, ap.end) of an
// active appointment.
func isBlocked(slot time.Time, appointments []models.Appointment) bool {
	for i := range appointments {
		ap := &appointments[i]
		if !ap.Status.Active() {
			continue
		}
		if !slot.Before(ap.StartTime) && slot.Before(ap.EndTime) {
			return true
		}
	}
	return false
}

func BuildDay(
	day time.Time,
	hours BusinessHours,
	appointments []models.Appointment,
	now time.Time,
) DayAvailability {
	out := DayAvailability{
		Date:  day.Format(timezone.DateLayout),
		Slots: make([]string, 0),
	}
	for slot := range FreeSlots(day, hours, appointments, now) {
		out.Slots = append(out.Slots, slot.Format(timezone.TimeLayout))
	}
	return out
}

// WithoutPast drops slots that started at or before now. Cached results are
// passed through it so a hit never offers a slot a fresh computation would
// not.
func (r *AvailabilityResult) WithoutPast(now time.Time) *AvailabilityResult {
	out := *r
	out.Days = make([]DayAvailability, 0, len(r.Days))

	loc := now.Location()
	for _, day := range r.Days {
		kept := DayAvailability{Date: day.Date, Slots: make([]string, 0, len(day.Slots))}
		for _, label := range day.Slots {
			at, err := timezone.ParseDateTime(loc, day.Date, label)
			if err != nil || !at.After(now) {
				continue
			}
			kept.Slots = append(kept.Slots, label)
		}
		out.Days = append(out.Days, kept)
	}
	return &out
}
