package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// barberLockNamespace ocupa os 32 bits altos da chave do advisory lock,
// para não colidir com outros locks do mesmo banco.
const barberLockNamespace int64 = 0x4241

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Customer").
		Preload("Services").
		Where("id = ?", id).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindActiveOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID,
			models.StatusCancelled,
			end,
			start,
		)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListByBarberAndDateRange(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services").
		Where(
			"barber_id = ? AND start_time < ? AND end_time > ?",
			barberID,
			to,
			from,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

// CreateAppointment grava o agendamento e os vínculos com os serviços, sem
// tocar nos registros de barbeiro, cliente ou serviço.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit("Barber", "Customer", "Services.*").
		Create(ap).Error
	return mapWriteError(err)
}

// UpdateAppointment persists a new time range. It only applies while the
// stored status is still the one ap carries.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, ap.Status).
		Updates(map[string]any{
			"start_time": ap.StartTime,
			"end_time":   ap.EndTime,
			"notes":      ap.Notes,
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func (r *AppointmentGormRepository) TransitionAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, from).
		Updates(map[string]any{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"updated_at":   time.Now(),
		})

	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

// --------------------------------------------------
// Locking
// --------------------------------------------------

// WithBarberLock serializa as admissões de um barbeiro: o advisory lock
// vale até o fim da transação.
func (r *AppointmentGormRepository) WithBarberLock(
	ctx context.Context,
	barberID uint,
	fn func(tx domain.ScheduleStore) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := barberLockNamespace<<32 | int64(uint32(barberID))
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
			return err
		}
		return fn(&AppointmentGormRepository{db: tx})
	})
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("slot_unavailable")
	}
	return err
}

// Compile-time check
var _ domain.ScheduleStore = (*AppointmentGormRepository)(nil)
