package appointment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Construction
// ===============================

type NewAppointmentParams struct {
	BarbershopID uint
	BarberID     uint
	CustomerID   uint
	Services     []models.Service
	Start        time.Time
	Notes        string
}

// New builds a Pending appointment whose end is start plus the summed
// service durations.
func New(p NewAppointmentParams) (*models.Appointment, error) {
	if len(p.Services) == 0 {
		return nil, httperr.ErrValidation("no_services")
	}

	total := TotalDuration(p.Services)
	if total <= 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}

	return &models.Appointment{
		ID:           uuid.New(),
		BarbershopID: p.BarbershopID,
		BarberID:     p.BarberID,
		CustomerID:   p.CustomerID,
		Services:     p.Services,
		StartTime:    p.Start,
		EndTime:      p.Start.Add(total),
		Status:       InitialStatus(),
		Notes:        p.Notes,
	}, nil
}

func TotalDuration(services []models.Service) time.Duration {
	var total time.Duration
	for _, s := range services {
		if s.DurationMin <= 0 {
			return 0
		}
		total += time.Duration(s.DurationMin) * time.Minute
	}
	return total
}

func TotalPrice(services []models.Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	next, err := Next(ap.Status, EventConfirm)
	if err != nil {
		return err
	}

	ap.Status = next
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	next, err := Next(ap.Status, EventCancel)
	if err != nil {
		return err
	}

	ap.Status = next
	ap.CancelledAt = &now
	return nil
}

// Complete só vale depois que o atendimento terminou.
func Complete(ap *models.Appointment, now time.Time) error {
	next, err := Next(ap.Status, EventComplete)
	if err != nil {
		return err
	}
	if ap.EndTime.After(now) {
		return httperr.ErrValidation("appointment_not_ended")
	}

	ap.Status = next
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves the appointment keeping its total duration.
func Reschedule(ap *models.Appointment, start time.Time) error {
	if err := CanReschedule(ap.Status); err != nil {
		return err
	}

	d := ap.Duration()
	ap.StartTime = start
	ap.EndTime = start.Add(d)
	return nil
}
