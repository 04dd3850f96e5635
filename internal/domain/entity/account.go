package entity

import "time"

// Estados de cuenta.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
)

// Account representa un corretor (o un usuario administrativo) del sistema.
// El alta ocurre fuera de este servicio; aquí solo se leen plan y roles.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	PlanID       PlanID
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
