package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Lookup is the result of a directory lookup: either absent, or found
// together with the shop that owns it. Callers decide how "not mine" is
// reported; the directory never does.
type Lookup[T any] struct {
	Value  T
	ShopID uint
	found  bool
}

func Found[T any](shopID uint, v T) Lookup[T] {
	return Lookup[T]{Value: v, ShopID: shopID, found: true}
}

func Absent[T any]() Lookup[T] {
	return Lookup[T]{}
}

func (l Lookup[T]) Exists() bool {
	return l.found
}

func (l Lookup[T]) OwnedBy(shopID uint) bool {
	return l.found && l.ShopID == shopID
}

// Directory resolves the entities an appointment references.
type Directory interface {
	// -------- Barbershop --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)

	// GetWorkingHours returns nil when the weekday has no specific
	// configuration.
	GetWorkingHours(ctx context.Context, barbershopID uint, weekday int) (*models.WorkingHours, error)

	// -------- Barber / Customer / Service --------
	LookupBarber(ctx context.Context, barberID uint) (Lookup[*models.User], error)
	LookupCustomer(ctx context.Context, customerID uint) (Lookup[*models.Customer], error)

	// LookupServices returns one Lookup per requested id, in request order.
	LookupServices(ctx context.Context, serviceIDs []uint) ([]Lookup[*models.Service], error)
}

// ScheduleStore is the durable, authoritative appointment storage.
type ScheduleStore interface {
	// GetAppointment fails with NotFound when the id does not exist.
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	FindActiveOverlapping(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID *uuid.UUID,
	) (bool, error)

	// ListByBarberAndDateRange returns every appointment (any status)
	// intersecting [from, to), ordered by start.
	ListByBarberAndDateRange(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// TransitionAppointment persists a status change only if the stored
	// status is still from; otherwise it fails with Conflict.
	TransitionAppointment(ctx context.Context, ap *models.Appointment, from Status) error

	// WithBarberLock runs fn in one transaction holding an exclusive lock on
	// the barber's schedule. Overlap checks and writes inside fn form a
	// single admission decision.
	WithBarberLock(ctx context.Context, barberID uint, fn func(tx ScheduleStore) error) error
}

// AvailabilityCache is a disposable projection of computed free slots.
// It is never consulted for conflict decisions.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uint, from, to time.Time) (*AvailabilityResult, bool, error)

	// Generation returns the barber's invalidation counter. Read it before
	// loading the schedule and hand it back to Set.
	Generation(ctx context.Context, barberID uint) (uint64, error)

	// Set stores result only if no Invalidate for barberID happened since
	// gen was read; stored reports whether it was written.
	Set(ctx context.Context, barberID uint, from, to time.Time, gen uint64, result *AvailabilityResult) (stored bool, err error)

	// Invalidate drops every cached range of barberID that covers date and
	// bumps the barber's generation.
	Invalidate(ctx context.Context, barberID uint, date time.Time) error
}
