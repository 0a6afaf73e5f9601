package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

type CancelAppointment struct {
	deps Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{deps: deps.normalized()}
}

// Execute pode ser chamado pela equipe ou pelo próprio cliente. O horário
// liberado volta para a disponibilidade.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	tc tenant.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.deps.transition(ctx, tc, appointmentID, transitionSpec{
		event:  domain.EventCancel,
		action: "appointment_cancelled",
		apply:  domain.Cancel,
	})
	if err != nil {
		return nil, err
	}

	uc.deps.invalidate(ctx, ap.BarberID, ap.StartTime)
	return ap, nil
}
