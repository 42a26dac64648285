package cartsession

import "sync"

// Store persists the active cart identifier between requests of one session.
// It is the only piece of client state this application keeps; the HTTP layer
// mirrors it into a browser cookie.
type Store interface {
	Load() (string, bool)
	Save(id string)
	Clear()
}

// MemoryStore is the in-process Store implementation. Concurrent tabs of the
// same browser session share it through the cookie mirror and can still race
// at the remote platform; that is a known limitation, not something this
// lock prevents.
type MemoryStore struct {
	mu sync.Mutex
	id string
}

// NewMemoryStore seeds a store, typically with the identifier restored from
// the session cookie. An empty id means "no cart yet".
func NewMemoryStore(id string) *MemoryStore {
	return &MemoryStore{id: id}
}

func (s *MemoryStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.id != ""
}

func (s *MemoryStore) Save(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
}
