package redis

import (
	"context"
	"sync"
	"time"

	"quizzler/internal/app"

	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Engines stay in process (they are single-owner and never shared); Redis only
// carries a liveness marker per session so other tooling can count live players.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	shuffler app.Shuffler

	mu       sync.RWMutex
	sessions map[string]*app.Engine
}

func NewSessionStore(client *redis.Client, ttl time.Duration, shuffler app.Shuffler) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		shuffler: shuffler,
		sessions: make(map[string]*app.Engine),
	}
}

func (s *SessionStore) Create(id string) *app.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine := app.NewEngine(s.shuffler)
	s.sessions[id] = engine
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(id), "1", s.ttl).Err()
	return engine
}

func (s *SessionStore) Get(id string) (*app.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.sessions[id]
	return engine, ok
}

// Touch extends the liveness marker after player activity.
func (s *SessionStore) Touch(id string) {
	if s.ttl <= 0 {
		return
	}
	_ = s.client.Expire(context.Background(), s.key(id), s.ttl).Err()
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) key(id string) string {
	return "quizzler:session:" + id
}
