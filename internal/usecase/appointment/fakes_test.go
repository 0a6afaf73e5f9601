package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ----------------------------------------------------------------------------
// Directory
// ----------------------------------------------------------------------------

type fakeDirectory struct {
	shops     map[uint]*models.Barbershop
	hours     map[uint]map[int]*models.WorkingHours
	barbers   map[uint]*models.User
	customers map[uint]*models.Customer
	services  map[uint]*models.Service
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		shops:     map[uint]*models.Barbershop{},
		hours:     map[uint]map[int]*models.WorkingHours{},
		barbers:   map[uint]*models.User{},
		customers: map[uint]*models.Customer{},
		services:  map[uint]*models.Service{},
	}
}

func (d *fakeDirectory) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	shop, ok := d.shops[id]
	if !ok {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}
	cp := *shop
	return &cp, nil
}

func (d *fakeDirectory) GetWorkingHours(_ context.Context, shopID uint, weekday int) (*models.WorkingHours, error) {
	wh, ok := d.hours[shopID][weekday]
	if !ok {
		return nil, nil
	}
	cp := *wh
	return &cp, nil
}

func (d *fakeDirectory) LookupBarber(_ context.Context, id uint) (domain.Lookup[*models.User], error) {
	b, ok := d.barbers[id]
	if !ok {
		return domain.Absent[*models.User](), nil
	}
	cp := *b
	return domain.Found(b.BarbershopID, &cp), nil
}

func (d *fakeDirectory) LookupCustomer(_ context.Context, id uint) (domain.Lookup[*models.Customer], error) {
	c, ok := d.customers[id]
	if !ok {
		return domain.Absent[*models.Customer](), nil
	}
	cp := *c
	return domain.Found(c.BarbershopID, &cp), nil
}

func (d *fakeDirectory) LookupServices(_ context.Context, ids []uint) ([]domain.Lookup[*models.Service], error) {
	out := make([]domain.Lookup[*models.Service], 0, len(ids))
	for _, id := range ids {
		s, ok := d.services[id]
		if !ok {
			out = append(out, domain.Absent[*models.Service]())
			continue
		}
		cp := *s
		out = append(out, domain.Found(s.BarbershopID, &cp))
	}
	return out, nil
}

// ----------------------------------------------------------------------------
// Schedule store
// ----------------------------------------------------------------------------

// fakeStore emulates the Postgres store: one admission lock for every
// barber and the no-overlap constraint as a backstop on writes. It also
// counts writes made outside the lock and overlaps caught only by the
// backstop, so tests can tell the lock did the work.
type fakeStore struct {
	lock sync.Mutex

	mu        sync.Mutex
	held      bool
	apps      map[uuid.UUID]models.Appointment
	listErr   error
	lists     int
	unlocked  int
	backstops int
}

func newFakeStore() *fakeStore {
	return &fakeStore{apps: map[uuid.UUID]models.Appointment{}}
}

func (s *fakeStore) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.apps[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return clone(ap), nil
}

func (s *fakeStore) FindActiveOverlapping(
	_ context.Context,
	barberID uint,
	start, end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlapsLocked(barberID, start, end, excludeID), nil
}

func (s *fakeStore) overlapsLocked(barberID uint, start, end time.Time, excludeID *uuid.UUID) bool {
	for _, ap := range s.apps {
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		if ap.BarberID == barberID && ap.Status.Active() && ap.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (s *fakeStore) ListByBarberAndDateRange(
	_ context.Context,
	barberID uint,
	from, to time.Time,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}

	out := make([]models.Appointment, 0)
	for _, ap := range s.apps {
		if ap.BarberID == barberID && ap.Overlaps(from, to) {
			out = append(out, *clone(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *fakeStore) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held {
		s.unlocked++
	}
	if s.overlapsLocked(ap.BarberID, ap.StartTime, ap.EndTime, nil) {
		s.backstops++
		return httperr.ErrConflict("slot_unavailable")
	}
	s.apps[ap.ID] = *clone(*ap)
	return nil
}

func (s *fakeStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held {
		s.unlocked++
	}
	stored, ok := s.apps[ap.ID]
	if !ok || stored.Status != ap.Status {
		return httperr.ErrConflict("invalid_state")
	}
	if s.overlapsLocked(ap.BarberID, ap.StartTime, ap.EndTime, &ap.ID) {
		s.backstops++
		return httperr.ErrConflict("slot_unavailable")
	}
	stored.StartTime, stored.EndTime, stored.Notes = ap.StartTime, ap.EndTime, ap.Notes
	s.apps[ap.ID] = stored
	return nil
}

func (s *fakeStore) TransitionAppointment(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.apps[ap.ID]
	if !ok || stored.Status != from {
		return httperr.ErrConflict("invalid_state")
	}
	s.apps[ap.ID] = *clone(*ap)
	return nil
}

func (s *fakeStore) WithBarberLock(
	_ context.Context,
	_ uint,
	fn func(tx domain.ScheduleStore) error,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.setHeld(true)
	defer s.setHeld(false)
	return fn(s)
}

func (s *fakeStore) setHeld(v bool) {
	s.mu.Lock()
	s.held = v
	s.mu.Unlock()
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

// writeStats devolve (escritas fora do lock, conflitos pegos só na escrita).
func (s *fakeStore) writeStats() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked, s.backstops
}

// racingStore runs afterList once, right after the schedule was read, to
// land a write in the middle of an availability computation.
type racingStore struct {
	*fakeStore
	afterList func()
}

func (s *racingStore) ListByBarberAndDateRange(
	ctx context.Context,
	barberID uint,
	from, to time.Time,
) ([]models.Appointment, error) {
	out, err := s.fakeStore.ListByBarberAndDateRange(ctx, barberID, from, to)
	if s.afterList != nil {
		hook := s.afterList
		s.afterList = nil
		hook()
	}
	return out, err
}

func clone(ap models.Appointment) *models.Appointment {
	ap.Services = append([]models.Service(nil), ap.Services...)
	return &ap
}

// ----------------------------------------------------------------------------
// Cache
// ----------------------------------------------------------------------------

type spyCache struct {
	*cache.MemoryAvailabilityCache

	mu            sync.Mutex
	hits          int
	invalidations int
}

func newSpyCache() *spyCache {
	return &spyCache{MemoryAvailabilityCache: cache.NewMemoryAvailabilityCache(time.Hour)}
}

func (c *spyCache) Get(ctx context.Context, barberID uint, from, to time.Time) (*domain.AvailabilityResult, bool, error) {
	res, hit, err := c.MemoryAvailabilityCache.Get(ctx, barberID, from, to)
	if hit {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
	}
	return res, hit, err
}

func (c *spyCache) Invalidate(ctx context.Context, barberID uint, date time.Time) error {
	c.mu.Lock()
	c.invalidations++
	c.mu.Unlock()
	return c.MemoryAvailabilityCache.Invalidate(ctx, barberID, date)
}

var errCacheDown = errors.New("cache down")

type brokenCache struct{}

func (brokenCache) Get(context.Context, uint, time.Time, time.Time) (*domain.AvailabilityResult, bool, error) {
	return nil, false, errCacheDown
}

func (brokenCache) Generation(context.Context, uint) (uint64, error) {
	return 0, errCacheDown
}

func (brokenCache) Set(context.Context, uint, time.Time, time.Time, uint64, *domain.AvailabilityResult) (bool, error) {
	return false, errCacheDown
}

func (brokenCache) Invalidate(context.Context, uint, time.Time) error {
	return errCacheDown
}

// ----------------------------------------------------------------------------
// Audit
// ----------------------------------------------------------------------------

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *memorySink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}
