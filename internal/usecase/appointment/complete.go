package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

type CompleteAppointment struct {
	deps Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{deps: deps.normalized()}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	tc tenant.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.deps.transition(ctx, tc, appointmentID, transitionSpec{
		event:     domain.EventComplete,
		action:    "appointment_completed",
		staffOnly: true,
		apply:     domain.Complete,
	})
}
