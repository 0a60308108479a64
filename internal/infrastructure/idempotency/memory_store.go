package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
)

var _ ports.IdempotencyStore = (*MemoryStore)(nil)

// MemoryStore variante en proceso para STORAGE_DRIVER=memory o sin REDIS_ADDR.
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string]time.Time // clave -> expiración
	now  func() time.Time
}

// NewMemoryStore construye el store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if exp, ok := s.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.keys[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	return nil
}

// Cleanup elimina claves vencidas cada interval hasta que ctx termine.
func (s *MemoryStore) Cleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.mu.Lock()
			now := s.now()
			for k, exp := range s.keys {
				if !now.Before(exp) {
					delete(s.keys, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
