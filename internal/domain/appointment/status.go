package appointment

import (
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusPending   = models.StatusPending
	StatusConfirmed = models.StatusConfirmed
	StatusCompleted = models.StatusCompleted
	StatusCancelled = models.StatusCancelled
)

// Event is a lifecycle action requested on an appointment.
type Event string

const (
	EventConfirm    Event = "confirm"
	EventCancel     Event = "cancel"
	EventComplete   Event = "complete"
	EventReschedule Event = "reschedule"
)

type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions é o grafo completo do ciclo de vida. Completed e Cancelled
// são terminais.
var Transitions = []Transition{
	{Event: EventConfirm, Src: StatusPending, Dst: StatusConfirmed},
	{Event: EventCancel, Src: StatusPending, Dst: StatusCancelled},
	{Event: EventCancel, Src: StatusConfirmed, Dst: StatusCancelled},
	{Event: EventComplete, Src: StatusConfirmed, Dst: StatusCompleted},
	{Event: EventReschedule, Src: StatusPending, Dst: StatusPending},
	{Event: EventReschedule, Src: StatusConfirmed, Dst: StatusConfirmed},
}

// ===============================
// Validations
// ===============================

// Next returns the destination status or a Conflict when the event is not
// allowed from current.
func Next(current Status, ev Event) (Status, error) {
	for _, tr := range Transitions {
		if tr.Event == ev && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return 0, httperr.ErrConflict("invalid_state")
}

func CanConfirm(current Status) error {
	_, err := Next(current, EventConfirm)
	return err
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	_, err := Next(current, EventCancel)
	return err
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	_, err := Next(current, EventComplete)
	return err
}

func CanReschedule(current Status) error {
	_, err := Next(current, EventReschedule)
	return err
}

func InitialStatus() Status {
	return StatusPending
}
