// Package spawn drives the message-cadence character spawning state machine.
package spawn

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

// Kind distinguishes how a spawn was triggered.
type Kind string

const (
	KindRegular Kind = "regular"
	KindRetro   Kind = "retro"
	KindManual  Kind = "manual"
)

// Spawn is a character that just appeared in a chat.
type Spawn struct {
	Kind      Kind
	Character domain.Character
}

// Pending describes the chat's current claimable character.
type Pending struct {
	Character domain.Character
	Claimed   bool
	Manual    bool
}

// chatState is the volatile per-chat spawn state. Everything here is lost on
// restart or eviction; that forgiveness is part of the contract.
type chatState struct {
	mu           sync.Mutex
	regularCount int
	retroCount   int
	pending      *domain.Character
	claimed      bool
	manual       bool
	shownRegular map[string]bool
	shownRetro   map[string]bool
}

// Service owns per-chat counters and pending spawns.
type Service struct {
	catalog  repository.Catalog
	locks    repository.SpawnLocks
	settings repository.Settings

	mu    sync.Mutex
	chats *lru.Cache[string, *chatState]

	rngInt   func(int) int  // injectable for tests
	rngFloat func() float64 // drives the weighted tier draw
}

// NewService creates a spawn service.
func NewService(catalog repository.Catalog, locks repository.SpawnLocks, settings repository.Settings) (*Service, error) {
	chats, err := lru.New[string, *chatState](MaxTrackedChats)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat registry: %w", err)
	}
	return &Service{
		catalog:  catalog,
		locks:    locks,
		settings: settings,
		chats:    chats,
		rngInt:   rand.Intn, //nolint:gosec // weak random is fine for games
		rngFloat: rand.Float64,
	}, nil
}

// chat returns the state for chatID, creating it on first sight.
func (s *Service) chat(chatID string) *chatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.chats.Get(chatID); ok {
		return st
	}
	st := &chatState{
		shownRegular: make(map[string]bool),
		shownRetro:   make(map[string]bool),
	}
	s.chats.Add(chatID, st)
	return st
}

// OnMessage counts one message for the chat and returns any spawns it
// triggered. The regular and retro counters are independent; both can fire on
// the same message, regular first. The increment-then-maybe-spawn sequence is
// serialized per chat.
func (s *Service) OnMessage(ctx context.Context, chatID string) ([]Spawn, error) {
	log := logger.FromContext(ctx)
	st := s.chat(chatID)

	st.mu.Lock()
	defer st.mu.Unlock()

	frequency, err := s.settings.Frequency(ctx, chatID)
	if err != nil {
		log.Warn("Failed to read spawn frequency, using default", "chat_id", chatID, "error", err)
		frequency = DefaultFrequency
	}
	if frequency < 1 {
		frequency = 1
	}

	var spawns []Spawn

	st.regularCount++
	if st.regularCount%frequency == 0 {
		st.regularCount = 0
		c, err := s.selectRegular(ctx, st)
		if err != nil {
			log.Warn("Regular spawn selection failed", "chat_id", chatID, "error", err)
		} else if c != nil {
			s.install(st, *c, false)
			spawns = append(spawns, Spawn{Kind: KindRegular, Character: *c})
		}
	}

	st.retroCount++
	if st.retroCount%RetroCadence == 0 {
		st.retroCount = 0
		c, err := s.selectRetro(ctx, st)
		if err != nil {
			log.Warn("Retro spawn selection failed", "chat_id", chatID, "error", err)
		} else if c != nil {
			s.install(st, *c, false)
			spawns = append(spawns, Spawn{Kind: KindRetro, Character: *c})
		}
	}

	return spawns, nil
}

// install makes c the chat's pending character and resets the claim lock.
func (s *Service) install(st *chatState, c domain.Character, manual bool) {
	st.pending = &c
	st.claimed = false
	st.manual = manual
}

// selectRegular picks a spawnable character the chat has not seen recently.
func (s *Service) selectRegular(ctx context.Context, st *chatState) (*domain.Character, error) {
	lockedIDs, err := s.locks.LockedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spawn locks: %w", err)
	}

	eligible, err := s.catalog.Find(ctx, repository.CharacterFilter{
		RarityNotIn: rarity.NonSpawnable,
		ExcludeIDs:  lockedIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spawnable characters: %w", err)
	}
	if len(eligible) == 0 {
		logger.FromContext(ctx).Warn("No spawnable characters available")
		return nil, nil
	}

	return s.pickAvoidingRepeats(eligible, st.shownRegular), nil
}

// selectRetro picks from the Retro tier only, with its own shown set.
func (s *Service) selectRetro(ctx context.Context, st *chatState) (*domain.Character, error) {
	lockedIDs, err := s.locks.LockedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spawn locks: %w", err)
	}

	eligible, err := s.catalog.Find(ctx, repository.CharacterFilter{
		RarityIn:   []rarity.Rarity{rarity.Retro},
		ExcludeIDs: lockedIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load retro characters: %w", err)
	}
	if len(eligible) == 0 {
		logger.FromContext(ctx).Warn("No retro characters available")
		return nil, nil
	}

	return s.pickAvoidingRepeats(eligible, st.shownRetro), nil
}

// pickAvoidingRepeats draws uniformly from eligible, skipping ids in shown.
// When the shown set covers everything eligible, it is reset and the draw is
// retried against the full set.
func (s *Service) pickAvoidingRepeats(eligible []domain.Character, shown map[string]bool) *domain.Character {
	fresh := make([]domain.Character, 0, len(eligible))
	for _, c := range eligible {
		if !shown[c.ID] {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		for id := range shown {
			delete(shown, id)
		}
		fresh = eligible
	}

	c := fresh[s.rngInt(len(fresh))]
	shown[c.ID] = true
	return &c
}

// SummonWeighted spawns a character for an admin summon: a tier is drawn by
// spawn weight, renormalized over the tiers actually present in the catalog,
// then one document is sampled within it. Manual spawns allow multiple
// independent claims.
func (s *Service) SummonWeighted(ctx context.Context, chatID string) (*Spawn, error) {
	lockedIDs, err := s.locks.LockedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spawn locks: %w", err)
	}

	present, err := s.catalog.DistinctRarities(ctx, repository.CharacterFilter{
		RarityNotIn: []rarity.Rarity{rarity.LimitedEdition},
		ExcludeIDs:  lockedIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog rarities: %w", err)
	}

	tier, err := rarity.PickWeighted(present, s.rngFloat)
	if err != nil {
		return nil, fmt.Errorf("no spawnable characters available: %w", err)
	}

	sampled, err := s.catalog.SampleRandom(ctx, repository.CharacterFilter{
		RarityIn:   []rarity.Rarity{tier},
		ExcludeIDs: lockedIDs,
	}, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to sample character: %w", err)
	}
	if len(sampled) == 0 {
		return nil, fmt.Errorf("no character found in tier %s", tier)
	}

	c := sampled[0]
	st := s.chat(chatID)
	st.mu.Lock()
	s.install(st, c, true)
	st.mu.Unlock()

	return &Spawn{Kind: KindManual, Character: c}, nil
}

// PendingFor returns the chat's pending spawn, if any.
func (s *Service) PendingFor(chatID string) (*Pending, bool) {
	s.mu.Lock()
	st, ok := s.chats.Get(chatID)
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.pending == nil {
		return nil, false
	}
	return &Pending{Character: *st.pending, Claimed: st.claimed, Manual: st.manual}, true
}

// MarkClaimed sets the claim lock on the chat's pending spawn. It is a no-op
// when nothing is pending.
func (s *Service) MarkClaimed(chatID string) {
	s.mu.Lock()
	st, ok := s.chats.Get(chatID)
	s.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.pending != nil {
		st.claimed = true
	}
}
