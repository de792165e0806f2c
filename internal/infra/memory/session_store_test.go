package memory

import (
	"testing"

	"quizzler/internal/app"
	"quizzler/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore(app.NewSeededShuffler(1))

	engine := store.Create("s1")
	if engine == nil {
		t.Fatalf("expected engine")
	}
	if engine.State() != domain.StateIdle {
		t.Fatalf("expected idle engine, got %s", engine.State())
	}
	if got, ok := store.Get("s1"); !ok || got != engine {
		t.Fatalf("expected session present")
	}
	if store.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Count())
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
	if store.Count() != 0 {
		t.Fatalf("expected 0 sessions, got %d", store.Count())
	}
}
