package conversation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/outfitly/outfitly/pkg/lifecycle"
)

// Sessions is the process-wide session repository, keyed by owner.
// Sessions are created lazily on first interaction and evicted after
// sitting idle past the TTL. Lookup and insertion are safe under
// concurrent access from multiple users' event-processing paths.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	ttl    time.Duration
	sweep  time.Duration
	logger *slog.Logger
}

// NewSessions creates a session repository with the given idle TTL and
// sweep interval.
func NewSessions(ttl, sweep time.Duration, logger *slog.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		sweep:    sweep,
		logger:   logger.With("system", "sessions"),
	}
}

// Acquire returns the owner's session, creating it on first interaction.
func (s *Sessions) Acquire(owner int64) *Session {
	s.mu.RLock()
	session, ok := s.sessions[owner]
	s.mu.RUnlock()
	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check: another event for the same owner may have won the race.
	if session, ok := s.sessions[owner]; ok {
		return session
	}

	session = &Session{
		Owner:    owner,
		State:    Idle,
		LastSeen: time.Now(),
	}
	s.sessions[owner] = session

	s.logger.Info("session created", "owner", owner)
	return session
}

// Len returns the number of active sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Start launches the TTL sweep goroutine tied to the lifecycle coordinator.
// The sweeper runs until shutdown cancels the coordinator context.
func (s *Sessions) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting session sweeper", "ttl", s.ttl, "interval", s.sweep)

	lc.OnShutdown(func() {
		ticker := time.NewTicker(s.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				return
			case now := <-ticker.C:
				s.Evict(now)
			}
		}
	})

	return nil
}

// Evict drops sessions idle past the TTL. A session whose lock is held
// is mid-event and skipped until the next sweep.
func (s *Sessions) Evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for owner, session := range s.sessions {
		if !session.Mu.TryLock() {
			continue
		}
		expired := now.Sub(session.LastSeen) > s.ttl
		session.Mu.Unlock()

		if expired {
			delete(s.sessions, owner)
			s.logger.Info("session evicted", "owner", owner)
		}
	}
}
