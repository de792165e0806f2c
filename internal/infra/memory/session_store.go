package memory

import (
	"sync"

	"quizzler/internal/app"
)

// SessionStore is an in-memory registry of live engines, one per connection.
type SessionStore struct {
	shuffler app.Shuffler

	mu       sync.RWMutex
	sessions map[string]*app.Engine
}

func NewSessionStore(shuffler app.Shuffler) *SessionStore {
	return &SessionStore{
		shuffler: shuffler,
		sessions: make(map[string]*app.Engine),
	}
}

// Create registers a fresh idle engine under id, replacing any previous one.
func (s *SessionStore) Create(id string) *app.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine := app.NewEngine(s.shuffler)
	s.sessions[id] = engine
	return engine
}

func (s *SessionStore) Get(id string) (*app.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.sessions[id]
	return engine, ok
}

func (s *SessionStore) Touch(string) {}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count reports how many sessions are live.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
