// Package claim implements the guess-and-claim transaction.
package claim

import (
	"context"
	"time"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/guess"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/repository"
	"github.com/osse101/GachaBot_Go/internal/spawn"
)

// DailyQuota is the maximum number of accepted claims per user per UTC day.
const DailyQuota = 30

// RejectReason is a first-class claim outcome, not an error: callers branch
// on it to render distinct user-facing messages.
type RejectReason string

const (
	RejectSpamBlocked        RejectReason = "spam-blocked"
	RejectDailyQuotaExceeded RejectReason = "daily-quota-exceeded"
	RejectNothingSpawned     RejectReason = "nothing-spawned"
	RejectAlreadyClaimed     RejectReason = "already-claimed"
	RejectWrongGuess         RejectReason = "wrong-guess"
)

// Request carries one claim attempt.
type Request struct {
	ChatID      string
	GroupName   string
	UserID      string
	Username    string
	DisplayName string
	Guess       string
	Now         time.Time
}

// Result is the outcome of a claim attempt.
type Result struct {
	Accepted   bool
	Reason     RejectReason
	Character  domain.Character
	BlockedFor time.Duration // set when Reason is RejectSpamBlocked
}

// SpawnState is the slice of the spawn service the claim path needs.
type SpawnState interface {
	PendingFor(chatID string) (*spawn.Pending, bool)
	MarkClaimed(chatID string)
}

// SpamGuard answers whether a user is currently blocked.
type SpamGuard interface {
	IsBlocked(userID string, now time.Time) (bool, time.Duration)
}

// Service defines the interface for claim operations
type Service interface {
	Claim(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	spawns      SpawnState
	spam        SpamGuard
	inventory   repository.Inventory
	leaderboard repository.Leaderboard
}

// NewService creates a new claim service
func NewService(spawns SpawnState, spam SpamGuard, inventory repository.Inventory, leaderboard repository.Leaderboard) Service {
	return &service{
		spawns:      spawns,
		spam:        spam,
		inventory:   inventory,
		leaderboard: leaderboard,
	}
}

// Claim checks the preconditions in order, short-circuiting on the first
// failure, then records a successful claim across the inventory and
// leaderboard collections. The five writes are sequential and independently
// failing: a failure partway leaves a durable partial effect and is only
// logged. A wrong guess leaves all state untouched.
func (s *service) Claim(ctx context.Context, req Request) (*Result, error) {
	log := logger.FromContext(ctx)

	if blocked, remaining := s.spam.IsBlocked(req.UserID, req.Now); blocked {
		return &Result{Reason: RejectSpamBlocked, BlockedFor: remaining}, nil
	}

	today := req.Now.UTC().Format("2006-01-02")
	rec, err := s.inventory.FindOne(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if rec != nil && rec.DailyClaims[today] >= DailyQuota {
		return &Result{Reason: RejectDailyQuotaExceeded}, nil
	}

	pending, ok := s.spawns.PendingFor(req.ChatID)
	if !ok {
		return &Result{Reason: RejectNothingSpawned}, nil
	}
	if pending.Claimed && !pending.Manual {
		return &Result{Reason: RejectAlreadyClaimed}, nil
	}

	if !guess.Matches(req.Guess, pending.Character.Name) {
		return &Result{Reason: RejectWrongGuess}, nil
	}

	if !pending.Manual {
		s.spawns.MarkClaimed(req.ChatID)
	}

	// Five sequential, non-atomic writes. No compensating rollback: drift
	// between inventory and leaderboard counters is accepted.
	snapshot := pending.Character
	if err := s.inventory.PushCharacter(ctx, req.UserID, snapshot); err != nil {
		log.Error("Failed to push claimed character", "user_id", req.UserID, "character_id", snapshot.ID, "error", err)
	}
	if err := s.inventory.IncDailyClaim(ctx, req.UserID, today); err != nil {
		log.Error("Failed to increment daily claim count", "user_id", req.UserID, "error", err)
	}
	if err := s.leaderboard.IncGroupUser(ctx, req.ChatID, req.UserID, req.Username, req.DisplayName); err != nil {
		log.Error("Failed to update group leaderboard", "chat_id", req.ChatID, "user_id", req.UserID, "error", err)
	}
	if err := s.leaderboard.IncGlobalGroup(ctx, req.ChatID, req.GroupName); err != nil {
		log.Error("Failed to update global leaderboard", "chat_id", req.ChatID, "error", err)
	}
	if err := s.inventory.UpsertIdentity(ctx, req.UserID, req.Username, req.DisplayName); err != nil {
		log.Warn("Failed to refresh cached identity", "user_id", req.UserID, "error", err)
	}

	return &Result{Accepted: true, Character: snapshot}, nil
}
