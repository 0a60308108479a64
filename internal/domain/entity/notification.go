package entity

import "time"

// Tipos de notificación.
const (
	NotificationDefect = "DEFECT"
	NotificationInfo   = "INFO"
)

// Notification entrada de la bandeja de un usuario.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Type      string // DEFECT, INFO
	Read      bool
	CreatedAt time.Time
}
