// Package session owns the per-visitor metrics models. Each session gets its
// own *metrics.Model, created with the configured default assumptions and
// discarded once idle for longer than the TTL.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Session is one visitor's state.
type Session struct {
	ID       string
	Model    *metrics.Model
	lastSeen time.Time
}

// Store maps session ids to sessions.
type Store struct {
	mu       sync.Mutex
	logger   *zap.Logger
	defaults metrics.BusinessAssumptions
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
	limit    int
	cron     *cron.Cron
}

// NewStore creates an empty store. New sessions start from defaults.
func NewStore(logger *zap.Logger, defaults metrics.BusinessAssumptions, ttl time.Duration) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:   logger,
		defaults: defaults,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
		limit:    constants.DefaultMaxSessions,
	}
}

// SetLimit caps the number of live sessions. When the cap is reached, creating
// a session first drops expired ones and then the least recently seen. Zero
// means no cap.
func (s *Store) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.limit = n
}

// Get returns the session for id, creating a fresh one when id is empty,
// unknown or expired. The second result reports whether a session was created.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok && !s.expired(sess, now) {
		sess.lastSeen = now
		return sess, false
	}

	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.makeRoom(now)
	}

	sess := &Session{
		ID:       uuid.NewString(),
		Model:    metrics.NewModel(s.logger, s.defaults),
		lastSeen: now,
	}
	s.sessions[sess.ID] = sess
	s.logger.Debug("session created",
		zap.String("op", "session.Store.Get"),
		zap.String("session", sess.ID),
	)
	return sess, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep discards every expired session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired sessions discarded",
			zap.String("op", "session.Store.Sweep"),
			zap.Int("removed", removed),
			zap.Int("remaining", len(s.sessions)),
		)
	}
	return removed
}

// makeRoom must be called with the lock held.
func (s *Store) makeRoom(now time.Time) {
	var oldest *Session
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if len(s.sessions) >= s.limit && oldest != nil {
		delete(s.sessions, oldest.ID)
		s.logger.Warn("session limit reached, evicted least recently seen session",
			zap.String("op", "session.Store.Get"),
			zap.Int("limit", s.limit),
		)
	}
}

// StartSweeper runs Sweep on the given cron schedule until StopSweeper is
// called. It fails if a sweeper is already running.
func (s *Store) StartSweeper(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	s.mu.Lock()
	if s.cron != nil {
		s.mu.Unlock()
		return errors.New("session sweeper already running")
	}
	s.cron = c
	s.mu.Unlock()

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("op", "session.Store.StartSweeper"),
		zap.String("schedule", schedule),
		zap.Duration("ttl", s.ttl),
	)
	return nil
}

// StopSweeper stops the sweeper and waits for a running sweep to finish.
func (s *Store) StopSweeper() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
