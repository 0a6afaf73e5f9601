package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment nunca é apagado: cancelamento é só mudança de status.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarbershopID uint `gorm:"index;not null" json:"barbershop_id"`

	BarberID uint `gorm:"index:idx_barber_start;not null" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	CustomerID uint     `gorm:"index;not null" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`

	Services []Service `gorm:"many2many:appointment_services;" json:"services"`

	StartTime time.Time `gorm:"index:idx_barber_start;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// Overlaps uses half-open intervals: [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}
