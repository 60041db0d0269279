package orderform

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-orderform/pkg/order"
)

// Session holds one visitor's form. The form itself is not safe for
// concurrent use, so callers go through Do.
type Session struct {
	ID string

	mu       sync.Mutex
	form     *order.Form
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session form.
func (s *Session) Do(fn func(form *order.Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form)
}

// Store keeps sessions in memory and drops them after ttl of inactivity.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	newForm  func() *order.Form
}

// NewStore builds an empty store. newForm is called for every new session.
func NewStore(ttl time.Duration, newForm func() *order.Form) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if newForm == nil {
		newForm = func() *order.Form { return order.NewForm() }
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		newForm:  newForm,
	}
}

// Acquire returns the live session for id, or a fresh one when id is
// unknown, malformed or expired. created reports whether a new session was
// started.
func (s *Store) Acquire(id string) (sess *Session, created bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if sess, ok := s.sessions[id]; ok {
			if now.Sub(sess.lastSeen) < s.ttl {
				sess.lastSeen = now
				return sess, false
			}
			delete(s.sessions, id)
		}
	}

	sess = &Session{
		ID:       uuid.NewString(),
		form:     s.newForm(),
		lastSeen: now,
	}
	s.sessions[sess.ID] = sess
	return sess, true
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
