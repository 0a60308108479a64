package memory

import (
	"context"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// Store estado compartido de los adaptadores en memoria (modo desarrollo y tests).
// mu protege los mapas; skuLocks serializa transacciones por SKU.
type Store struct {
	mu            sync.RWMutex
	products      map[string]*entity.Product // clave: SKU normalizado
	users         map[string]*entity.User
	notifications []*entity.Notification

	locksMu  sync.Mutex
	skuLocks map[string]chan struct{}
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
		skuLocks: make(map[string]chan struct{}),
	}
}

// fold normaliza SKU, categoría y bodega para comparaciones sin mayúsculas.
// Solo pasa a minúsculas, igual que lower() en Postgres: "ß" y "ss" son SKU distintos.
// cases.Caser no es seguro entre goroutines: se crea uno por llamada.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// lockSKU adquiere el candado del SKU respetando la cancelación del contexto.
func (s *Store) lockSKU(ctx context.Context, key string) error {
	s.locksMu.Lock()
	ch, ok := s.skuLocks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.skuLocks[key] = ch
	}
	s.locksMu.Unlock()

	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlockSKU(key string) {
	s.locksMu.Lock()
	ch := s.skuLocks[key]
	s.locksMu.Unlock()
	<-ch
}

// AddUser registra un usuario (el alta real la hace el servicio de autenticación).
func (s *Store) AddUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}
