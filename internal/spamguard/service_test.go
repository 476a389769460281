package spamguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestUnderThresholdAdmitted(t *testing.T) {
	s := NewService()

	for i := 0; i < MaxMessages; i++ {
		v := s.RecordAndCheck("u1", base.Add(time.Duration(i)*time.Second))
		assert.Equal(t, Admitted, v, "message %d should be admitted", i+1)
	}
}

func TestEighthMessageTripsBlock(t *testing.T) {
	s := NewService()

	for i := 0; i < MaxMessages; i++ {
		s.RecordAndCheck("u1", base)
	}
	assert.Equal(t, Blocked, s.RecordAndCheck("u1", base))

	// Still blocked immediately afterwards
	assert.Equal(t, Blocked, s.RecordAndCheck("u1", base.Add(time.Second)))

	blocked, remaining := s.IsBlocked("u1", base.Add(time.Second))
	assert.True(t, blocked)
	assert.Equal(t, BlockDuration-time.Second, remaining)
}

func TestBlockExpiresAndWindowIsEmpty(t *testing.T) {
	s := NewService()

	for i := 0; i <= MaxMessages; i++ {
		s.RecordAndCheck("u1", base)
	}

	after := base.Add(BlockDuration)
	blocked, remaining := s.IsBlocked("u1", after)
	assert.False(t, blocked)
	assert.Zero(t, remaining)

	// The window was cleared when the block tripped, so a full burst is
	// needed again before the next block.
	for i := 0; i < MaxMessages; i++ {
		assert.Equal(t, Admitted, s.RecordAndCheck("u1", after))
	}
	assert.Equal(t, Blocked, s.RecordAndCheck("u1", after))
}

func TestOldMessagesFallOutOfWindow(t *testing.T) {
	s := NewService()

	// 7 messages, then wait out the window; the next burst starts fresh.
	for i := 0; i < MaxMessages; i++ {
		s.RecordAndCheck("u1", base)
	}
	later := base.Add(Window + time.Second)
	assert.Equal(t, Admitted, s.RecordAndCheck("u1", later))
}

func TestUsersAreIndependent(t *testing.T) {
	s := NewService()

	for i := 0; i <= MaxMessages; i++ {
		s.RecordAndCheck("spammer", base)
	}
	assert.Equal(t, Admitted, s.RecordAndCheck("quiet", base))

	blocked, _ := s.IsBlocked("quiet", base)
	assert.False(t, blocked)
}

func TestIsBlockedUnknownUser(t *testing.T) {
	s := NewService()

	blocked, remaining := s.IsBlocked("nobody", base)
	assert.False(t, blocked)
	assert.Zero(t, remaining)
}
