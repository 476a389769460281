package spamguard

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Verdict is the outcome of recording one message.
type Verdict int

const (
	Admitted Verdict = iota
	Blocked
)

const (
	// Window is the sliding window over which messages are counted.
	Window = 10 * time.Second
	// MaxMessages is the number of messages tolerated inside Window;
	// one more trips the block.
	MaxMessages = 7
	// BlockDuration is how long a tripped user stays blocked.
	BlockDuration = 720 * time.Second

	// maxTrackedUsers caps the store; evicting a quiet user only forgets
	// an empty window.
	maxTrackedUsers = 8192
	// entryTTL must outlive BlockDuration so an active block is never
	// evicted while it still matters.
	entryTTL = 2 * BlockDuration
)

type userState struct {
	timestamps   []time.Time
	blockedUntil time.Time
}

// Service is a per-user sliding-window rate limiter with timed blocking.
// All state is process-local and resets on restart.
type Service struct {
	mu    sync.Mutex
	users *expirable.LRU[string, *userState]
}

// NewService creates a spam guard.
func NewService() *Service {
	return &Service{
		users: expirable.NewLRU[string, *userState](maxTrackedUsers, nil, entryTTL),
	}
}

// RecordAndCheck records a message at now and reports whether the user is
// admitted or blocked. A user over the threshold has their window cleared
// and stays Blocked until now >= blockedUntil.
func (s *Service) RecordAndCheck(userID string, now time.Time) Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.users.Get(userID)
	if !ok {
		state = &userState{}
		s.users.Add(userID, state)
	}

	if now.Before(state.blockedUntil) {
		return Blocked
	}

	state.timestamps = append(state.timestamps, now)
	state.timestamps = trimWindow(state.timestamps, now)

	if len(state.timestamps) > MaxMessages {
		state.timestamps = nil
		state.blockedUntil = now.Add(BlockDuration)
		return Blocked
	}

	return Admitted
}

// IsBlocked reports whether the user is currently blocked and for how much
// longer. It does not record a message.
func (s *Service) IsBlocked(userID string, now time.Time) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.users.Get(userID)
	if !ok {
		return false, 0
	}
	if now.Before(state.blockedUntil) {
		return true, state.blockedUntil.Sub(now)
	}
	// Lazily drop the expired block so the entry can age out naturally.
	state.blockedUntil = time.Time{}
	return false, 0
}

// trimWindow discards timestamps older than Window relative to now.
func trimWindow(ts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-Window)
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
