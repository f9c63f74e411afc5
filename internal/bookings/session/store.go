package session

import (
	"sync"
	"time"

	bookingerrors "skincare/internal/bookings/errors"
	"skincare/internal/bookings/wizard"
	"skincare/pkg/logger"
	"skincare/pkg/metrics"

	"github.com/google/uuid"
)

// Session holds one wizard, i.e. one patient working through a booking.
type Session struct {
	ID        string
	Wizard    *wizard.Wizard
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

type Store interface {
	Create(w *wizard.Wizard) *Session
	Get(id string) (*Session, error)
	Delete(id string) error
	Count() int
	Stop() // Stop the cleanup goroutine and close every remaining wizard
}

type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	Now             func() time.Time
	Metrics         *metrics.BookingMetrics
	Log             *logger.Logger
}

type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewInMemoryStore starts a background sweep every CleanupInterval that drops
// sessions idle for longer than TTL. A zero interval disables the sweep.
func NewInMemoryStore(cfg Config) *InMemoryStore {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = logger.Discard()
	}
	s := &InMemoryStore{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		stopCh:   make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go s.cleanup()
	}

	return s
}

func (s *InMemoryStore) Create(w *wizard.Wizard) *Session {
	now := s.cfg.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Wizard:    w,
		CreatedAt: now,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.cfg.Metrics.SetActiveSessions(n)
	return sess
}

func (s *InMemoryStore) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, bookingerrors.ErrInvalidSessionID
	}

	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return nil, bookingerrors.ErrSessionNotFound
	}

	now := s.cfg.Now()
	if s.expired(sess, now) {
		s.remove(id)
		return nil, bookingerrors.ErrSessionNotFound
	}

	sess.touch(now)
	return sess, nil
}

func (s *InMemoryStore) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return bookingerrors.ErrInvalidSessionID
	}
	if !s.remove(id) {
		return bookingerrors.ErrSessionNotFound
	}
	return nil
}

func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *InMemoryStore) Sweep() int {
	now := s.cfg.Now()

	s.mu.Lock()
	var evicted []*Session
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			evicted = append(evicted, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range evicted {
		sess.Wizard.Close()
	}
	if len(evicted) > 0 {
		s.cfg.Log.Info("Expired booking sessions removed", "count", len(evicted), "remaining", n)
	}
	s.cfg.Metrics.SetActiveSessions(n)
	return len(evicted)
}

func (s *InMemoryStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)

		s.mu.Lock()
		sessions := s.sessions
		s.sessions = make(map[string]*Session)
		s.mu.Unlock()

		for _, sess := range sessions {
			sess.Wizard.Close()
		}
	})
}

func (s *InMemoryStore) cleanup() {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryStore) expired(sess *Session, now time.Time) bool {
	return s.cfg.TTL > 0 && now.Sub(sess.LastSeen()) > s.cfg.TTL
}

func (s *InMemoryStore) remove(id string) bool {
	s.mu.Lock()
	sess, exists := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !exists {
		return false
	}
	sess.Wizard.Close()
	s.cfg.Metrics.SetActiveSessions(n)
	return true
}
