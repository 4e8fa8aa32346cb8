// Package session keeps one order workflow per browser session, in memory
// only. Sessions are identified by a signed cookie and expire after a
// period of inactivity; nothing survives a server restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tamaleria/orderform/internal/workflow"
)

// Session is one customer's in-progress order.
type Session struct {
	ID   uuid.UUID
	Flow *workflow.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) expired(ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen) > ttl
}

// Store holds the live sessions. newFlow builds the workflow controller
// (and its fresh order) for each new session; OnCreate, when set before
// serving, lets the caller wire change notifications to the new session.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	newFlow  func() *workflow.Controller

	OnCreate func(*Session)
}

// NewStore creates an empty session store with the given idle TTL.
func NewStore(ttl time.Duration, newFlow func() *workflow.Controller) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		newFlow:  newFlow,
	}
}

// Create mints a new session with an empty order in the entry stage.
func (st *Store) Create() *Session {
	s := &Session{
		ID:       uuid.New(),
		Flow:     st.newFlow(),
		lastSeen: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	if st.OnCreate != nil {
		st.OnCreate(s)
	}
	return s
}

// Get looks up a live session and refreshes its idle timer.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(st.ttl) {
		st.Delete(id)
		return nil, false
	}
	s.Touch()
	return s, true
}

// Delete removes a session.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// sweep drops every expired session.
func (st *Store) sweep() {
	st.mu.Lock()
	for id, s := range st.sessions {
		if s.expired(st.ttl) {
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()
}

// Run expires idle sessions periodically.
// This should be called as a goroutine: go store.Run(interval)
func (st *Store) Run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		st.sweep()
	}
}
