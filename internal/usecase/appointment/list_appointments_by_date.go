package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	deps Deps
}

func NewListAppointmentsByDate(deps Deps) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{deps: deps.normalized()}
}

// Execute devolve a agenda do barbeiro no dia, com todos os status.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	tc tenant.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	caller, err := tenant.Resolve(tc)
	if err != nil {
		return nil, err
	}
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	barber, err := resolveBarber(ctx, uc.deps.Directory, caller, barberID)
	if err != nil {
		return nil, err
	}

	start := timezone.StartOfDay(date, uc.deps.Clock.Location())
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.deps.Store.ListByBarberAndDateRange(ctx, barber.ID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.ListItem(&appointments[i]))
	}
	return out, nil
}
