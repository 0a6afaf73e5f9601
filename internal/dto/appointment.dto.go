package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ServiceDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
}

type AppointmentDTO struct {
	ID           string          `json:"id"`
	BarbershopID uint            `json:"barbershop_id"`
	BarberID     uint            `json:"barber_id"`
	BarberName   string          `json:"barber_name"`
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Services     []ServiceDTO    `json:"services"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

type AppointmentListDTO struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	ServiceNames []string  `json:"service_names"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	services := make([]ServiceDTO, 0, len(ap.Services))
	for _, s := range ap.Services {
		services = append(services, ServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}

	return AppointmentDTO{
		ID:           ap.ID.String(),
		BarbershopID: ap.BarbershopID,
		BarberID:     ap.BarberID,
		BarberName:   ap.Barber.Name,
		CustomerID:   ap.CustomerID,
		CustomerName: ap.Customer.Name,
		Services:     services,
		TotalPrice:   domain.TotalPrice(ap.Services),
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status.String(),
		Notes:        ap.Notes,
		ConfirmedAt:  ap.ConfirmedAt,
		CancelledAt:  ap.CancelledAt,
		CompletedAt:  ap.CompletedAt,
	}
}

func ListItem(ap *models.Appointment) AppointmentListDTO {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}
	return AppointmentListDTO{
		ID:           ap.ID.String(),
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status.String(),
		CustomerName: ap.Customer.Name,
		ServiceNames: names,
	}
}
