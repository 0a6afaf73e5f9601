package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps.normalized()}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	tc tenant.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	ctx, span := tracer.Start(ctx, "availability.get")
	defer span.End()

	caller, err := tenant.Resolve(tc)
	if err != nil {
		return nil, err
	}

	loc := uc.deps.Clock.Location()
	from := timezone.StartOfDay(in.DateFrom, loc)
	to := timezone.StartOfDay(in.DateTo, loc)

	if in.ServiceDurationMinutes < 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}
	if to.Before(from) {
		return nil, httperr.ErrValidation("invalid_date_range")
	}
	if to.After(from.AddDate(0, 0, uc.deps.MaxDays-1)) {
		return nil, httperr.ErrValidation("date_range_too_long")
	}

	// Aqui barbeiro de outra barbearia é simplesmente "não encontrado".
	found, err := uc.deps.Directory.LookupBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !found.OwnedBy(caller.ShopID) || !found.Value.Active {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	barber := found.Value

	span.SetAttributes(
		attribute.Int64("barber.id", int64(barber.ID)),
		attribute.String("availability.from", from.Format(timezone.DateLayout)),
		attribute.String("availability.to", to.Format(timezone.DateLayout)),
	)

	now := uc.deps.now()

	// --------------------------------------------------
	// Cache
	// --------------------------------------------------
	if uc.deps.Cache != nil {
		cached, hit, err := uc.deps.Cache.Get(ctx, barber.ID, from, to)
		if err != nil {
			uc.deps.Log.Warn("availability cache read failed",
				zap.Uint("barber_id", barber.ID),
				zap.Error(err),
			)
		}
		if hit {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			out := cached.WithoutPast(now)
			out.ServiceDurationMinutes = in.ServiceDurationMinutes
			return out, nil
		}
	}

	// A geração é lida antes da agenda: se uma escrita invalidar no meio
	// do cálculo, o resultado não volta para o cache.
	gen, cacheable := uc.generation(ctx, barber.ID)

	// --------------------------------------------------
	// Cálculo
	// --------------------------------------------------
	result, err := uc.compute(ctx, caller.ShopID, barber, from, to, now)
	if err != nil {
		return nil, err
	}
	result.ServiceDurationMinutes = in.ServiceDurationMinutes

	if cacheable {
		stored, err := uc.deps.Cache.Set(ctx, barber.ID, from, to, gen, result)
		switch {
		case err != nil:
			uc.deps.Log.Warn("availability cache write failed",
				zap.Uint("barber_id", barber.ID),
				zap.Error(err),
			)
		case !stored:
			uc.deps.Log.Debug("availability cache write skipped, schedule changed",
				zap.Uint("barber_id", barber.ID),
			)
		}
	}

	return result, nil
}

func (uc *GetAvailability) generation(ctx context.Context, barberID uint) (uint64, bool) {
	if uc.deps.Cache == nil {
		return 0, false
	}
	gen, err := uc.deps.Cache.Generation(ctx, barberID)
	if err != nil {
		uc.deps.Log.Warn("availability cache generation read failed",
			zap.Uint("barber_id", barberID),
			zap.Error(err),
		)
		return 0, false
	}
	return gen, true
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	shopID uint,
	barber *models.User,
	from, to time.Time,
	now time.Time,
) (*domain.AvailabilityResult, error) {

	shop, err := uc.deps.Directory.GetBarbershopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	defaults, err := domain.ResolveHours(shop, nil)
	if err != nil {
		return nil, err
	}

	end := to.AddDate(0, 0, 1)
	appointments, err := uc.deps.Store.ListByBarberAndDateRange(ctx, barber.ID, from, end)
	if err != nil {
		return nil, err
	}

	result := &domain.AvailabilityResult{
		Barber:      domain.BarberInfo{ID: barber.ID, Name: barber.Name},
		From:        from.Format(timezone.DateLayout),
		To:          to.Format(timezone.DateLayout),
		SlotMinutes: int(defaults.Slot / time.Minute),
		Days:        make([]domain.DayAvailability, 0),
	}

	hoursByWeekday := make(map[time.Weekday]domain.BusinessHours, 7)
	for day := from; day.Before(end); day = day.AddDate(0, 0, 1) {
		hours, ok := hoursByWeekday[day.Weekday()]
		if !ok {
			wh, err := uc.deps.Directory.GetWorkingHours(ctx, shopID, int(day.Weekday()))
			if err != nil {
				return nil, err
			}
			hours, err = domain.ResolveHours(shop, wh)
			if err != nil {
				return nil, err
			}
			hoursByWeekday[day.Weekday()] = hours
		}

		next := day.AddDate(0, 0, 1)
		result.Days = append(result.Days, domain.BuildDay(day, hours, onDay(appointments, day, next), now))
	}

	return result, nil
}

func onDay(appointments []models.Appointment, day, next time.Time) []models.Appointment {
	out := make([]models.Appointment, 0)
	for i := range appointments {
		if appointments[i].Overlaps(day, next) {
			out = append(out, appointments[i])
		}
	}
	return out
}
