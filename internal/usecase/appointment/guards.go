package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

func requireStaff(caller tenant.Caller) error {
	if !caller.IsStaff() {
		return httperr.ErrForbidden("role_not_allowed")
	}
	return nil
}

// loadForCaller devolve o agendamento só se ele estiver no escopo de quem
// chama: mesma barbearia e, para clientes, o próprio agendamento. Fora do
// escopo é Forbidden, mas indistinguível de "não encontrado".
func loadForCaller(
	ctx context.Context,
	store domain.ScheduleStore,
	caller tenant.Caller,
	id uuid.UUID,
) (*models.Appointment, error) {

	ap, err := store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap.BarbershopID != caller.ShopID {
		return nil, httperr.ErrConcealed("appointment")
	}
	if caller.Role == tenant.RoleCustomer && ap.CustomerID != caller.UserID {
		return nil, httperr.ErrConcealed("appointment")
	}
	return ap, nil
}

// resolveBarber aceita apenas barbeiros ativos da barbearia do caller.
func resolveBarber(
	ctx context.Context,
	dir domain.Directory,
	caller tenant.Caller,
	barberID uint,
) (*models.User, error) {

	found, err := dir.LookupBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if !found.Exists() || !found.Value.Active {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	if !found.OwnedBy(caller.ShopID) {
		return nil, httperr.ErrConcealed("barber")
	}
	return found.Value, nil
}

func resolveCustomer(
	ctx context.Context,
	dir domain.Directory,
	caller tenant.Caller,
	customerID uint,
) (*models.Customer, error) {

	found, err := dir.LookupCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !found.Exists() {
		return nil, httperr.ErrNotFound("customer_not_found")
	}
	if !found.OwnedBy(caller.ShopID) {
		return nil, httperr.ErrConcealed("customer")
	}
	if caller.Role == tenant.RoleCustomer && found.Value.ID != caller.UserID {
		return nil, httperr.ErrConcealed("customer")
	}
	return found.Value, nil
}

// resolveServices keeps request order and drops repeated ids.
func resolveServices(
	ctx context.Context,
	dir domain.Directory,
	caller tenant.Caller,
	barber *models.User,
	serviceIDs []uint,
) ([]models.Service, error) {

	ids := make([]uint, 0, len(serviceIDs))
	seen := make(map[uint]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, httperr.ErrValidation("no_services")
	}

	found, err := dir.LookupServices(ctx, ids)
	if err != nil {
		return nil, err
	}

	offered := make(map[uint]struct{}, len(barber.Services))
	for _, s := range barber.Services {
		offered[s.ID] = struct{}{}
	}

	out := make([]models.Service, 0, len(found))
	for _, l := range found {
		if !l.Exists() || !l.Value.Active {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		if !l.OwnedBy(caller.ShopID) {
			return nil, httperr.ErrConcealed("service")
		}
		if len(offered) > 0 {
			if _, ok := offered[l.Value.ID]; !ok {
				return nil, httperr.ErrValidation("service_not_offered")
			}
		}
		out = append(out, *l.Value)
	}
	return out, nil
}
