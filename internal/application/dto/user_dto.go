package dto

import "time"

// UpsertUserRequest alta o actualización de un usuario conocido por el servicio de autenticación.
// ID vacío genera un UUID nuevo.
type UpsertUserRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // admin | manager | worker
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
