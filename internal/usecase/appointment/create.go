package appointment

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uint
	BarberID   uint
	ServiceIDs []uint
	Start      time.Time
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps.normalized()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	tc tenant.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ctx, span := tracer.Start(ctx, "appointment.create")
	defer span.End()
	span.SetAttributes(attribute.Int64("barber.id", int64(in.BarberID)))

	caller, err := tenant.Resolve(tc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Cliente
	// --------------------------------------------------
	customer, err := resolveCustomer(ctx, uc.deps.Directory, caller, in.CustomerID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Barbeiro
	// --------------------------------------------------
	barber, err := resolveBarber(ctx, uc.deps.Directory, caller, in.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Serviços
	// --------------------------------------------------
	services, err := resolveServices(ctx, uc.deps.Directory, caller, barber, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	ap, err := domain.New(domain.NewAppointmentParams{
		BarbershopID: caller.ShopID,
		BarberID:     barber.ID,
		CustomerID:   customer.ID,
		Services:     services,
		Start:        in.Start.In(uc.deps.Clock.Location()),
		Notes:        in.Notes,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ 5️⃣ Futuro, antecedência e expediente
	// --------------------------------------------------
	if err := uc.deps.checkWindow(ctx, caller.ShopID, ap.StartTime, ap.EndTime); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Conflito + gravação (uma única decisão)
	// --------------------------------------------------
	err = uc.deps.Store.WithBarberLock(ctx, barber.ID, func(tx domain.ScheduleStore) error {
		busy, err := tx.FindActiveOverlapping(ctx, barber.ID, ap.StartTime, ap.EndTime, nil)
		if err != nil {
			return err
		}
		if busy {
			return httperr.ErrConflict("slot_unavailable")
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.deps.dispatch(audit.Event{
				BarbershopID: caller.ShopID,
				UserID:       &caller.UserID,
				Action:       "appointment_conflict",
				Entity:       "barber",
				EntityID:     strconv.FormatUint(uint64(barber.ID), 10),
				Metadata:     map[string]any{"start": ap.StartTime.Format(timezone.DateTimeLayout)},
			})
		}
		recordFailure(span, err, "create appointment")
		return nil, err
	}

	uc.deps.invalidate(ctx, barber.ID, ap.StartTime)

	uc.deps.dispatch(audit.Event{
		BarbershopID: caller.ShopID,
		UserID:       &caller.UserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     ap.ID.String(),
	})

	uc.deps.Log.Info("appointment created",
		zap.String("appointment_id", ap.ID.String()),
		zap.Uint("barber_id", barber.ID),
		zap.Time("start", ap.StartTime),
	)

	ap.Barber = *barber
	ap.Customer = *customer
	return ap, nil
}

// checkWindow holds the time guards shared by admission and reschedule:
// strictly future, minimum advance, and inside the day's business hours.
func (d Deps) checkWindow(ctx context.Context, shopID uint, start, end time.Time) error {
	now := d.now()
	if !start.After(now) {
		return httperr.ErrValidation("start_in_past")
	}

	shop, err := d.Directory.GetBarbershopByID(ctx, shopID)
	if err != nil {
		return err
	}

	if shop.MinAdvanceMinutes > 0 {
		earliest := now.Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)
		if start.Before(earliest) {
			return httperr.ErrValidation("too_soon")
		}
	}

	wh, err := d.Directory.GetWorkingHours(ctx, shopID, int(start.Weekday()))
	if err != nil {
		return err
	}
	hours, err := domain.ResolveHours(shop, wh)
	if err != nil {
		return err
	}
	if !hours.Contains(start, end) {
		return httperr.ErrValidation("outside_working_hours")
	}
	return nil
}
