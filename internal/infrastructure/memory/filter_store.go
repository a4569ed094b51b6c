// Package memory contiene los almacenes en proceso del dashboard: estado de
// filtros por sesión y el registro de sesiones con expiración por inactividad.
package memory

import (
	"maps"
	"sync"

	"github.com/jhoicas/painel-vendas/internal/application/ports"
)

var _ ports.FilterStore = (*FilterStore)(nil)

// FilterStore implementa ports.FilterStore sobre un mapa protegido por mutex.
type FilterStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewFilterStore almacén vacío.
func NewFilterStore() *FilterStore {
	return &FilterStore{values: map[string]string{}}
}

// Get valor de una clave.
func (s *FilterStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Replace sustituye el estado completo por una copia de values.
func (s *FilterStore) Replace(values map[string]string) {
	next := maps.Clone(values)
	if next == nil {
		next = map[string]string{}
	}
	s.mu.Lock()
	s.values = next
	s.mu.Unlock()
}
