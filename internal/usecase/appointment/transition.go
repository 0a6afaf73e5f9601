package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

type transitionSpec struct {
	event     domain.Event
	action    string
	staffOnly bool
	apply     func(ap *models.Appointment, now time.Time) error
}

// transition roda a ordem fixa: identidade, papel, escopo do agendamento,
// guarda de estado e gravação condicional ao status lido.
func (d Deps) transition(
	ctx context.Context,
	tc tenant.Context,
	id uuid.UUID,
	spec transitionSpec,
) (*models.Appointment, error) {

	ctx, span := tracer.Start(ctx, "appointment.transition")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", id.String()),
		attribute.String("appointment.event", string(spec.event)),
	)

	caller, err := tenant.Resolve(tc)
	if err != nil {
		return nil, err
	}
	if spec.staffOnly {
		if err := requireStaff(caller); err != nil {
			return nil, err
		}
	}

	ap, err := loadForCaller(ctx, d.Store, caller, id)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := spec.apply(ap, d.now()); err != nil {
		return nil, err
	}

	if err := d.Store.TransitionAppointment(ctx, ap, from); err != nil {
		recordFailure(span, err, spec.action)
		return nil, err
	}

	d.dispatch(audit.Event{
		BarbershopID: caller.ShopID,
		UserID:       &caller.UserID,
		Action:       spec.action,
		Entity:       "appointment",
		EntityID:     ap.ID.String(),
		Metadata: map[string]any{
			"from": from.String(),
			"to":   ap.Status.String(),
		},
	})

	return ap, nil
}
