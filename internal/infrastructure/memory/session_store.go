package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/domain"
)

var _ analytics.SessionStore = (*SessionStore)(nil)

type sessionEntry struct {
	session  *analytics.Session
	lastUsed time.Time
}

// SessionStore implementa analytics.SessionStore. Una sesión sin uso durante
// idleTTL expira: Get la trata como inexistente y Sweep la cierra.
// idleTTL <= 0 desactiva la expiración.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	idleTTL time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewSessionStore construye el almacén.
func NewSessionStore(idleTTL time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		entries: map[string]*sessionEntry{},
		idleTTL: idleTTL,
		now:     time.Now,
		log:     log,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

// Save registra (o reemplaza) la sesión.
func (s *SessionStore) Save(session *analytics.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID()] = &sessionEntry{session: session, lastUsed: s.now()}
}

// Get devuelve la sesión y renueva su último uso.
func (s *SessionStore) Get(id string) (*analytics.Session, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && s.expired(e) {
		delete(s.entries, id)
		s.mu.Unlock()
		e.session.Close()
		return nil, domain.ErrNotFound
	}
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	e.lastUsed = s.now()
	s.mu.Unlock()
	return e.session, nil
}

// Delete elimina la sesión sin cerrarla.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len sesiones registradas, incluidas las expiradas aún no barridas.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep cierra y elimina las sesiones expiradas. Devuelve cuántas eliminó.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	var stale []*analytics.Session
	for id, e := range s.entries {
		if s.expired(e) {
			stale = append(stale, e.session)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, session := range stale {
		session.Close()
	}
	if len(stale) > 0 {
		s.log.Info().Int("expired", len(stale)).Msg("sesiones expiradas eliminadas")
	}
	return len(stale)
}

// Run ejecuta Sweep cada interval hasta que ctx se cancele.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SessionStore) expired(e *sessionEntry) bool {
	return s.idleTTL > 0 && s.now().Sub(e.lastUsed) > s.idleTTL
}
