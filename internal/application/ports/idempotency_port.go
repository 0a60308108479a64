package ports

import (
	"context"
	"time"
)

// IdempotencyStore reserva claves de idempotencia para peticiones que mutan el libro.
// Reserve devuelve false si la clave ya fue usada dentro del ttl.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release libera una clave cuya petición falló, para permitir el reintento.
	Release(ctx context.Context, key string) error
}
