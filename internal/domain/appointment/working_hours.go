package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const (
	DefaultOpeningTime = "08:00"
	DefaultClosingTime = "20:00"
	DefaultSlotMinutes = 30
)

// BusinessHours is the operating window of one weekday, in minutes after
// midnight, discretized into fixed slots.
type BusinessHours struct {
	Closed bool
	Open   int
	Close  int
	Slot   time.Duration
}

// ResolveHours combina o expediente padrão da barbearia com a configuração
// do dia da semana (wh pode ser nil).
func ResolveHours(shop *models.Barbershop, wh *models.WorkingHours) (BusinessHours, error) {
	opening := orDefault(shop.OpeningTime, DefaultOpeningTime)
	closing := orDefault(shop.ClosingTime, DefaultClosingTime)

	slot := shop.SlotMinutes
	if slot == 0 {
		slot = DefaultSlotMinutes
	}
	if slot < 0 {
		return BusinessHours{}, httperr.ErrValidation("invalid_slot_length")
	}

	if wh != nil {
		if !wh.Active {
			return BusinessHours{Closed: true, Slot: time.Duration(slot) * time.Minute}, nil
		}
		if wh.StartTime != "" && wh.EndTime != "" {
			opening, closing = wh.StartTime, wh.EndTime
		}
	}

	open, err := parseHM(opening)
	if err != nil {
		return BusinessHours{}, err
	}
	closeAt, err := parseHM(closing)
	if err != nil {
		return BusinessHours{}, err
	}
	if closeAt <= open {
		return BusinessHours{}, httperr.ErrValidation("invalid_business_hours")
	}

	return BusinessHours{
		Open:  open,
		Close: closeAt,
		Slot:  time.Duration(slot) * time.Minute,
	}, nil
}

// Window returns opening and closing instants on day's calendar date.
func (h BusinessHours) Window(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, 0, h.Open, 0, 0, loc),
		time.Date(y, m, d, 0, h.Close, 0, 0, loc)
}

// Contains reports whether [start, end) fits entirely inside the window of
// start's day.
func (h BusinessHours) Contains(start, end time.Time) bool {
	if h.Closed || !end.After(start) {
		return false
	}
	open, closeAt := h.Window(start)
	return !start.Before(open) && !end.After(closeAt)
}

func parseHM(hm string) (int, error) {
	t, err := time.Parse(timezone.TimeLayout, hm)
	if err != nil {
		return 0, httperr.ErrValidation("invalid_business_hours")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
