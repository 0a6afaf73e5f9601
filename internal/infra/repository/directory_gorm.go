package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// DirectoryGormRepository lê barbearias, barbeiros, clientes e serviços.
// Nunca filtra por tenant: quem chama decide o que é "de outra barbearia".
type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *DirectoryGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found")
		}
		return nil, err
	}
	return &shop, nil
}

func (r *DirectoryGormRepository) GetWorkingHours(
	ctx context.Context,
	barbershopID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND weekday = ?", barbershopID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Barber / Customer
// --------------------------------------------------

func (r *DirectoryGormRepository) LookupBarber(
	ctx context.Context,
	barberID uint,
) (domain.Lookup[*models.User], error) {

	var barber models.User
	err := r.db.WithContext(ctx).
		Preload("Services").
		First(&barber, barberID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Absent[*models.User](), nil
	}
	if err != nil {
		return domain.Lookup[*models.User]{}, err
	}
	return domain.Found(barber.BarbershopID, &barber), nil
}

func (r *DirectoryGormRepository) LookupCustomer(
	ctx context.Context,
	customerID uint,
) (domain.Lookup[*models.Customer], error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, customerID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Absent[*models.Customer](), nil
	}
	if err != nil {
		return domain.Lookup[*models.Customer]{}, err
	}
	return domain.Found(customer.BarbershopID, &customer), nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *DirectoryGormRepository) LookupServices(
	ctx context.Context,
	serviceIDs []uint,
) ([]domain.Lookup[*models.Service], error) {

	out := make([]domain.Lookup[*models.Service], 0, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}

	var rows []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", serviceIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Service, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	for _, id := range serviceIDs {
		svc, ok := byID[id]
		if !ok {
			out = append(out, domain.Absent[*models.Service]())
			continue
		}
		out = append(out, domain.Found(svc.BarbershopID, svc))
	}
	return out, nil
}

// Compile-time check
var _ domain.Directory = (*DirectoryGormRepository)(nil)
