package usecase

import (
	"errors"
	"sync"
	"time"

	"video-distributor/infrastructure/logger"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionRegistry interface {
	Create() *SessionStore
	Get(id string) (*SessionStore, error)
	Delete(id string) error
	Sweep(maxIdle time.Duration) int
}

type registryEntry struct {
	store    *SessionStore
	lastSeen time.Time
}

// SessionRegistry keeps one SessionStore per workflow, keyed by UUID.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	listener Listener
	now      func() time.Time
}

func NewSessionRegistry(listener Listener) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*registryEntry),
		listener: listener,
		now:      time.Now,
	}
}

func (r *SessionRegistry) Create() *SessionStore {
	id := uuid.NewString()
	store := NewSessionStore(id, r.listener)

	r.mu.Lock()
	r.sessions[id] = &registryEntry{store: store, lastSeen: r.now()}
	r.mu.Unlock()

	logger.GetLogger().WithField("session_id", id).Info("Session created")
	return store
}

func (r *SessionRegistry) Get(id string) (*SessionStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.store, nil
}

func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Sweep drops sessions not touched within maxIdle. Sessions with a
// generation or publish run in flight are kept.
func (r *SessionRegistry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.After(cutoff) {
			continue
		}
		snap := e.store.Snapshot()
		if snap.IsGenerating || snap.IsPublishing {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	if removed > 0 {
		logger.GetLogger().WithField("removed", removed).WithField("remaining", len(r.sessions)).Info("Swept idle sessions")
	}
	return removed
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
