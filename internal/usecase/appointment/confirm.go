package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

type ConfirmAppointment struct {
	deps Deps
}

func NewConfirmAppointment(deps Deps) *ConfirmAppointment {
	return &ConfirmAppointment{deps: deps.normalized()}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	tc tenant.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.deps.transition(ctx, tc, appointmentID, transitionSpec{
		event:     domain.EventConfirm,
		action:    "appointment_confirmed",
		staffOnly: true,
		apply:     domain.Confirm,
	})
}
