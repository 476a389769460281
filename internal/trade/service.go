// Package trade implements character trading and gifting sessions.
package trade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

// Kind distinguishes two-way trades from one-way gifts.
type Kind string

const (
	KindTrade Kind = "trade"
	KindGift  Kind = "gift"
)

// Session is a pending trade or gift awaiting the recipient's response.
// Sessions are volatile; a restart drops them.
type Session struct {
	ID          string
	Kind        Kind
	ProposerID  string
	RecipientID string
	// Offered is the proposer's character changing hands.
	Offered domain.Character
	// Requested is the recipient's character coming back, trades only.
	Requested domain.Character
	CreatedAt time.Time
}

// Service defines the interface for trade operations
type Service interface {
	ProposeTrade(ctx context.Context, proposerID, recipientID, offeredID, requestedID string) (*Session, error)
	ProposeGift(ctx context.Context, proposerID, recipientID, offeredID string) (*Session, error)
	Confirm(ctx context.Context, sessionID, userID string) (*Session, error)
	Cancel(ctx context.Context, sessionID, userID string) error
	Get(sessionID string) (*Session, bool)
}

type service struct {
	inventory repository.Inventory

	mu       sync.Mutex
	sessions map[string]*Session // by session id
	byPair   map[string]string   // proposer+"/"+recipient -> session id
}

// NewService creates a new trade service
func NewService(inventory repository.Inventory) Service {
	return &service{
		inventory: inventory,
		sessions:  make(map[string]*Session),
		byPair:    make(map[string]string),
	}
}

func pairKey(proposerID, recipientID string) string {
	return proposerID + "/" + recipientID
}

// ownedCopy loads the user's record and returns their first copy of id.
func (s *service) ownedCopy(ctx context.Context, userID, characterID string) (domain.Character, error) {
	rec, err := s.inventory.FindOne(ctx, userID)
	if err != nil {
		return domain.Character{}, fmt.Errorf("failed to load collection: %w", err)
	}
	if rec == nil {
		return domain.Character{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	c, ok := rec.OwnsCharacter(characterID)
	if !ok {
		return domain.Character{}, fmt.Errorf("%w: id %s", domain.ErrNotOwned, characterID)
	}
	return c, nil
}

// propose registers a session, replacing any earlier pending one for the
// same proposer/recipient pair.
func (s *service) propose(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(session.ProposerID, session.RecipientID)
	if old, ok := s.byPair[key]; ok {
		delete(s.sessions, old)
	}
	s.sessions[session.ID] = session
	s.byPair[key] = session.ID
}

// ProposeTrade opens a two-way session. Both sides' ownership is checked now
// and again on confirmation.
func (s *service) ProposeTrade(ctx context.Context, proposerID, recipientID, offeredID, requestedID string) (*Session, error) {
	if proposerID == recipientID {
		return nil, domain.ErrSelfTarget
	}
	offered, err := s.ownedCopy(ctx, proposerID, offeredID)
	if err != nil {
		return nil, err
	}
	requested, err := s.ownedCopy(ctx, recipientID, requestedID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          uuid.NewString(),
		Kind:        KindTrade,
		ProposerID:  proposerID,
		RecipientID: recipientID,
		Offered:     offered,
		Requested:   requested,
		CreatedAt:   time.Now(),
	}
	s.propose(session)
	return session, nil
}

// ProposeGift opens a one-way session.
func (s *service) ProposeGift(ctx context.Context, proposerID, recipientID, offeredID string) (*Session, error) {
	if proposerID == recipientID {
		return nil, domain.ErrSelfTarget
	}
	offered, err := s.ownedCopy(ctx, proposerID, offeredID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          uuid.NewString(),
		Kind:        KindGift,
		ProposerID:  proposerID,
		RecipientID: recipientID,
		Offered:     offered,
		CreatedAt:   time.Now(),
	}
	s.propose(session)
	return session, nil
}

// take removes the session from both indexes. Caller holds the lock.
func (s *service) take(sessionID string) (*Session, bool) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	delete(s.sessions, sessionID)
	delete(s.byPair, pairKey(session.ProposerID, session.RecipientID))
	return session, true
}

// Confirm executes the session. Only the recipient may confirm, and both
// sides' ownership is revalidated against current inventories before any
// write. Exactly one copy of each character moves.
func (s *service) Confirm(ctx context.Context, sessionID, userID string) (*Session, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNoPendingSession
	}
	if session.RecipientID != userID {
		s.mu.Unlock()
		return nil, domain.ErrNotYourSession
	}
	s.take(sessionID)
	s.mu.Unlock()

	proposerRec, err := s.inventory.FindOne(ctx, session.ProposerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposer collection: %w", err)
	}
	recipientRec, err := s.inventory.FindOne(ctx, session.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient collection: %w", err)
	}
	if proposerRec == nil || recipientRec == nil {
		return nil, domain.ErrUserNotFound
	}

	proposerChars, offered, ok := removeOne(proposerRec.Characters, session.Offered.ID)
	if !ok {
		return nil, fmt.Errorf("%w: proposer no longer owns id %s", domain.ErrNotOwned, session.Offered.ID)
	}
	recipientChars := recipientRec.Characters

	if session.Kind == KindTrade {
		var requested domain.Character
		recipientChars, requested, ok = removeOne(recipientChars, session.Requested.ID)
		if !ok {
			return nil, fmt.Errorf("%w: recipient no longer owns id %s", domain.ErrNotOwned, session.Requested.ID)
		}
		proposerChars = append(proposerChars, requested)
	}
	recipientChars = append(recipientChars, offered)

	// Two independent writes; a failure between them is logged and leaves the
	// copies imbalanced rather than rolled back.
	if err := s.inventory.ReplaceCharacters(ctx, session.ProposerID, proposerChars); err != nil {
		return nil, fmt.Errorf("failed to update proposer collection: %w", err)
	}
	if err := s.inventory.ReplaceCharacters(ctx, session.RecipientID, recipientChars); err != nil {
		log.Error("Failed to update recipient collection after proposer write",
			"session_id", session.ID, "recipient_id", session.RecipientID, "error", err)
		return nil, fmt.Errorf("failed to update recipient collection: %w", err)
	}

	return session, nil
}

// Cancel withdraws a session. Either party may cancel.
func (s *service) Cancel(_ context.Context, sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrNoPendingSession
	}
	if session.ProposerID != userID && session.RecipientID != userID {
		return domain.ErrNotYourSession
	}
	s.take(sessionID)
	return nil
}

// Get returns a pending session by id.
func (s *service) Get(sessionID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	cp := *session
	return &cp, true
}

// removeOne deletes the first copy of id, preserving the order of the rest.
func removeOne(characters []domain.Character, id string) ([]domain.Character, domain.Character, bool) {
	for i, c := range characters {
		if c.ID == id {
			out := make([]domain.Character, 0, len(characters)-1)
			out = append(out, characters[:i]...)
			out = append(out, characters[i+1:]...)
			return out, c, true
		}
	}
	return characters, domain.Character{}, false
}
