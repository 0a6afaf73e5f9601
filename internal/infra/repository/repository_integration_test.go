package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type fixture struct {
	db       *gorm.DB
	shop     models.Barbershop
	barber   models.User
	customer models.Customer
	service  models.Service
}

func openTestDB(t *testing.T) *fixture {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	suffix := uuid.NewString()[:8]
	f := &fixture{db: gdb}

	f.shop = models.Barbershop{Name: "Shop " + suffix, Slug: "shop-" + suffix}
	require.NoError(t, gdb.Create(&f.shop).Error)

	f.service = models.Service{
		BarbershopID: f.shop.ID,
		Name:         "Corte",
		DurationMin:  30,
		Price:        decimal.NewFromInt(40),
	}
	require.NoError(t, gdb.Create(&f.service).Error)

	f.barber = models.User{
		BarbershopID: f.shop.ID,
		Name:         "Barbeiro",
		Email:        "barber-" + suffix + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, gdb.Create(&f.barber).Error)

	f.customer = models.Customer{BarbershopID: f.shop.ID, Name: "Cliente"}
	require.NoError(t, gdb.Create(&f.customer).Error)

	return f
}

func (f *fixture) newAppointment(t *testing.T, start time.Time) *models.Appointment {
	t.Helper()
	ap, err := domain.New(domain.NewAppointmentParams{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		CustomerID:   f.customer.ID,
		Services:     []models.Service{f.service},
		Start:        start,
	})
	require.NoError(t, err)
	return ap
}

func TestDirectoryLookups(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()
	dir := NewDirectoryGormRepository(f.db)

	barber, err := dir.LookupBarber(ctx, f.barber.ID)
	require.NoError(t, err)
	assert.True(t, barber.OwnedBy(f.shop.ID))

	missing, err := dir.LookupCustomer(ctx, 0)
	require.NoError(t, err)
	assert.False(t, missing.Exists())

	services, err := dir.LookupServices(ctx, []uint{f.service.ID, 0})
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.True(t, services[0].OwnedBy(f.shop.ID))
	assert.False(t, services[1].Exists())

	wh, err := dir.GetWorkingHours(ctx, f.shop.ID, 3)
	require.NoError(t, err)
	assert.Nil(t, wh)
}

func TestCreateAndTransition(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()
	store := NewAppointmentGormRepository(f.db)

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	ap := f.newAppointment(t, start)
	require.NoError(t, store.CreateAppointment(ctx, ap))

	got, err := store.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	require.Len(t, got.Services, 1)

	require.NoError(t, domain.Confirm(got, time.Now()))
	require.NoError(t, store.TransitionAppointment(ctx, got, domain.StatusPending))

	// a stale writer still believes the appointment is pending
	stale := *got
	stale.Status = domain.StatusCancelled
	err = store.TransitionAppointment(ctx, &stale, domain.StatusPending)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = store.GetAppointment(ctx, uuid.New())
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestExclusionConstraintRejectsOverlap(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()
	store := NewAppointmentGormRepository(f.db)

	start := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	require.NoError(t, store.CreateAppointment(ctx, f.newAppointment(t, start)))

	err := store.CreateAppointment(ctx, f.newAppointment(t, start.Add(15*time.Minute)))
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	// back-to-back is fine
	require.NoError(t, store.CreateAppointment(ctx, f.newAppointment(t, start.Add(30*time.Minute))))
}

func TestConcurrentAdmissionsUnderBarberLock(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()
	store := NewAppointmentGormRepository(f.db)

	start := time.Now().Add(96 * time.Hour).Truncate(time.Hour)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range workers {
		ap := f.newAppointment(t, start)
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithBarberLock(ctx, f.barber.ID, func(tx domain.ScheduleStore) error {
				busy, err := tx.FindActiveOverlapping(ctx, ap.BarberID, ap.StartTime, ap.EndTime, nil)
				if err != nil {
					return err
				}
				if busy {
					return httperr.ErrConflict("slot_unavailable")
				}
				return tx.CreateAppointment(ctx, ap)
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)

	apps, err := store.ListByBarberAndDateRange(ctx, f.barber.ID, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}
