package models

import "time"

// User é a equipe da barbearia: dono ou barbeiro. Só barbeiros ativos
// recebem agendamentos.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'barber'" json:"role"`
	Active       bool   `gorm:"default:true" json:"active"`

	Services []Service `gorm:"many2many:barber_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
