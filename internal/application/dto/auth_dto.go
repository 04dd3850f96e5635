package dto

import "time"

// LoginRequest credenciales del editor.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse cuenta sin datos sensibles.
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PlanID    string    `json:"plan_id"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token de acceso y cuenta autenticada.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
