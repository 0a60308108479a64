package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleWorker  = "worker"
)

// User usuario del sistema. Las credenciales las gestiona el servicio de autenticación;
// aquí solo interesan identidad y rol para enrutar notificaciones.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string // admin, manager, worker
	CreatedAt time.Time
}

// IsElevated indica si el rol recibe alertas de calidad.
func (u *User) IsElevated() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
