package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions is the registry of active carts, one per capture session. The
// handle is an opaque uuid that never reaches the database.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Create registers a fresh cart and returns its session handle.
func (s *Sessions) Create() (string, *Cart) {
	id := uuid.NewString()
	c := New()
	s.mu.Lock()
	s.carts[id] = c
	s.mu.Unlock()
	return id, c
}

func (s *Sessions) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	return c, ok
}

// Delete discards an abandoned session. Its cart simply never reaches the
// repository.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}
