package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidMovement   = errors.New("la cantidad del movimiento debe ser mayor que cero")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError describe un campo inválido de la petición.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field       string
	Description string
}

// NewValidationError construye el error para un campo.
func NewValidationError(field, description string) *ValidationError {
	return &ValidationError{Field: field, Description: description}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
