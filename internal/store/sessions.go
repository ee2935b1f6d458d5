package store

import (
	"sync"
	"time"
)

// Sessions is the registry of live reader sessions, keyed by user. Sessions
// untouched for longer than the retention window are swept by a background
// ticker.
type Sessions struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	lastSeen      map[string]time.Time
	retention     time.Duration
	cleanupTicker *time.Ticker
	stopChan      chan struct{}
}

func NewSessions(retention time.Duration) *Sessions {
	s := &Sessions{
		sessions:  make(map[string]*Session),
		lastSeen:  make(map[string]time.Time),
		retention: retention,
		stopChan:  make(chan struct{}),
	}

	s.cleanupTicker = time.NewTicker(1 * time.Hour)
	go s.cleanup()

	return s
}

// Get returns the session for the user, creating it on first use.
func (s *Sessions) Get(user string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[user]
	if !exists {
		session = NewSession()
		s.sessions[user] = session
	}
	s.lastSeen[user] = time.Now()
	return session
}

// Remove drops the user's session immediately, e.g. on logout.
func (s *Sessions) Remove(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, user)
	delete(s.lastSeen, user)
}

func (s *Sessions) cleanup() {
	for {
		select {
		case <-s.cleanupTicker.C:
			s.performCleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Sessions) performCleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.retention)
	for user, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			delete(s.sessions, user)
			delete(s.lastSeen, user)
		}
	}
}

func (s *Sessions) Close() {
	s.cleanupTicker.Stop()
	close(s.stopChan)
}

func (s *Sessions) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"active_sessions": len(s.sessions),
		"retention":       s.retention.String(),
	}
}
