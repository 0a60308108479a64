// Package idempotency guarda las claves Idempotency-Key ya usadas.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
)

const keyPrefix = "stock-ledger:idem:"

var _ ports.IdempotencyStore = (*RedisStore)(nil)

// RedisStore reserva claves con SET NX y expiración.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore construye el store sobre un cliente ya conectado.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotencia: reservar clave: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotencia: liberar clave: %w", err)
	}
	return nil
}
