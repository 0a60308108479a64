package http

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
)

// HeaderIdempotencyKey cabecera que deduplica reintentos de mutaciones del libro.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// ── Access log ────────────────────────────────────────────────────────────────

// RequestLogger registra método, ruta, estado y latencia de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}

// ── Rate limiting ─────────────────────────────────────────────────────────────

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter token bucket por IP de cliente.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

// NewRateLimiter construye el limitador; rps <= 0 lo desactiva.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  5 * time.Minute,
	}
}

func (l *RateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Middleware responde 429 RATE_LIMITED cuando el cliente agota su cupo.
func (l *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.rps <= 0 {
			return c.Next()
		}
		if !l.get(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas peticiones; intenta más tarde",
			})
		}
		return c.Next()
	}
}

// CleanupLoop elimina visitantes inactivos cada minuto hasta que ctx termine.
func (l *RateLimiter) CleanupLoop(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.evictIdle(time.Now())
		}
	}
}

func (l *RateLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, ip)
		}
	}
}

// ── Idempotencia ──────────────────────────────────────────────────────────────

// Idempotency reserva la cabecera Idempotency-Key antes de ejecutar la mutación.
// Una clave repetida dentro del ttl responde 409 DUPLICATE_REQUEST sin tocar el libro.
// Si la petición falla la clave se libera para permitir el reintento.
// Sin cabecera la petición pasa sin deduplicar.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if key == "" || store == nil {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "Idempotency-Key demasiado larga", Field: HeaderIdempotencyKey,
			})
		}
		scoped := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key

		ok, err := store.Reserve(c.Context(), scoped, ttl)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotencia no disponible; se procesa sin deduplicar")
			return c.Next()
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE_REQUEST", Message: "petición ya procesada con esta Idempotency-Key",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			if relErr := store.Release(context.Background(), scoped); relErr != nil {
				log.Warn().Err(relErr).Str("key", key).Msg("liberar Idempotency-Key")
			}
		}
		return err
	}
}
