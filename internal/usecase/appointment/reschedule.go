package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID uuid.UUID
	Start         time.Time
}

type RescheduleAppointment struct {
	deps Deps
}

func NewRescheduleAppointment(deps Deps) *RescheduleAppointment {
	return &RescheduleAppointment{deps: deps.normalized()}
}

// Execute moves a Pending or Confirmed appointment to a new start, keeping
// its duration, services and status.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	tc tenant.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ctx, span := tracer.Start(ctx, "appointment.reschedule")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", in.AppointmentID.String()))

	caller, err := tenant.Resolve(tc)
	if err != nil {
		return nil, err
	}

	current, err := loadForCaller(ctx, uc.deps.Store, caller, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReschedule(current.Status); err != nil {
		return nil, err
	}

	start := in.Start.In(uc.deps.Clock.Location())
	end := start.Add(current.Duration())
	if err := uc.deps.checkWindow(ctx, caller.ShopID, start, end); err != nil {
		return nil, err
	}

	oldStart := current.StartTime

	var moved *models.Appointment
	err = uc.deps.Store.WithBarberLock(ctx, current.BarberID, func(tx domain.ScheduleStore) error {
		ap, err := tx.GetAppointment(ctx, current.ID)
		if err != nil {
			return err
		}
		if err := domain.Reschedule(ap, start); err != nil {
			return err
		}

		busy, err := tx.FindActiveOverlapping(ctx, ap.BarberID, ap.StartTime, ap.EndTime, &ap.ID)
		if err != nil {
			return err
		}
		if busy {
			return httperr.ErrConflict("slot_unavailable")
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		moved = ap
		return nil
	})
	if err != nil {
		recordFailure(span, err, "reschedule appointment")
		return nil, err
	}

	uc.deps.invalidate(ctx, moved.BarberID, oldStart)
	if !timezone.SameDay(oldStart.In(uc.deps.Clock.Location()), moved.StartTime.In(uc.deps.Clock.Location())) {
		uc.deps.invalidate(ctx, moved.BarberID, moved.StartTime)
	}

	uc.deps.dispatch(audit.Event{
		BarbershopID: caller.ShopID,
		UserID:       &caller.UserID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     moved.ID.String(),
		Metadata: map[string]any{
			"from": oldStart.Format(timezone.DateTimeLayout),
			"to":   moved.StartTime.Format(timezone.DateTimeLayout),
		},
	})

	return moved, nil
}
