// Package catalog implements the admin-facing catalog operations: uploads,
// edits, spawn locks, grants and per-chat spawn configuration.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

// characterSequence names the counter that hands out catalog ids.
const characterSequence = "characters"

// UploadRequest carries a new catalog entry. RarityNumber uses the 1-9
// shorthand accepted by the upload command.
type UploadRequest struct {
	MediaURL     string `validate:"required,url"`
	Name         string `validate:"required,min=1,max=100"`
	Series       string `validate:"required,min=1,max=100"`
	RarityNumber int    `validate:"required,min=1,max=9"`
}

// Announcer posts character cards to the catalog channel. Announcement
// failures never fail the store write.
type Announcer interface {
	AnnounceNewCharacter(ctx context.Context, c domain.Character) (messageID string, err error)
	EditAnnouncement(ctx context.Context, messageID string, c domain.Character) error
}

// Service defines the interface for catalog admin operations
type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Character, error)
	Update(ctx context.Context, id, field, value string) (*domain.Character, error)
	Delete(ctx context.Context, id string) (*domain.Character, error)
	Find(ctx context.Context, id string) (*domain.Character, error)
	Search(ctx context.Context, query string) ([]domain.Character, error)
	LockSpawn(ctx context.Context, characterID, lockedBy string) (*domain.SpawnLock, error)
	UnlockSpawn(ctx context.Context, characterID string) (*domain.SpawnLock, error)
	LockedSpawns(ctx context.Context) ([]domain.SpawnLock, error)
	SetFrequency(ctx context.Context, chatID string, n int) error
	Give(ctx context.Context, characterID, userID, username, displayName string) (*domain.Character, error)
}

type service struct {
	catalog   repository.Catalog
	inventory repository.Inventory
	locks     repository.SpawnLocks
	settings  repository.Settings
	announcer Announcer
	validate  *validator.Validate
	titler    cases.Caser
}

// NewService creates a new catalog service. announcer may be nil, in which
// case uploads and updates are store-only.
func NewService(catalog repository.Catalog, inventory repository.Inventory, locks repository.SpawnLocks, settings repository.Settings, announcer Announcer) Service {
	return &service{
		catalog:   catalog,
		inventory: inventory,
		locks:     locks,
		settings:  settings,
		announcer: announcer,
		validate:  validator.New(),
		titler:    cases.Title(language.Und),
	}
}

// normalizeName turns upload input like "monkey-d-luffy" into "Monkey D Luffy".
func (s *service) normalizeName(raw string) string {
	return s.titler.String(strings.ReplaceAll(strings.TrimSpace(raw), "-", " "))
}

// Upload validates and stores a new character, then posts its announcement.
// An announcement failure degrades to store-only and is logged.
func (s *service) Upload(ctx context.Context, req UploadRequest) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	tier, err := rarity.FromNumber(req.RarityNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRarity, err)
	}

	seq, err := s.catalog.NextSequence(ctx, characterSequence)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate character id: %w", err)
	}

	c := domain.Character{
		ID:       fmt.Sprint(seq),
		Name:     s.normalizeName(req.Name),
		Series:   s.normalizeName(req.Series),
		Rarity:   tier,
		MediaURL: req.MediaURL,
	}
	if err := s.catalog.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to store character: %w", err)
	}

	if s.announcer != nil {
		messageID, err := s.announcer.AnnounceNewCharacter(ctx, c)
		if err != nil {
			log.Warn("Failed to announce new character", "character_id", c.ID, "error", err)
		} else if messageID != "" {
			c.AnnouncementID = messageID
			if err := s.catalog.SetAnnouncementID(ctx, c.ID, messageID); err != nil {
				log.Warn("Failed to store announcement id", "character_id", c.ID, "error", err)
			}
		}
	}

	return &c, nil
}

// Update edits one field of a catalog entry. Name and series renames are
// propagated into every embedded inventory copy; the original announcement is
// edited best-effort.
func (s *service) Update(ctx context.Context, id, field, value string) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	existing, err := s.catalog.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrCharacterNotFound, id)
	}

	var repoField string
	switch field {
	case "img":
		repoField = "media_url"
		if err := s.validate.Var(value, "required,url"); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	case "name", "series":
		repoField = field
		value = s.normalizeName(value)
		if value == "" {
			return nil, fmt.Errorf("%w: empty %s", domain.ErrInvalidInput, field)
		}
	case "rarity":
		repoField = field
		tier, err := rarity.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRarity, value)
		}
		value = string(tier)
	default:
		return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
	}

	if err := s.catalog.UpdateField(ctx, id, repoField, value); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	switch field {
	case "name":
		if err := s.inventory.RenameCharacter(ctx, id, value, ""); err != nil {
			log.Error("Failed to propagate rename into collections", "character_id", id, "error", err)
		}
	case "series":
		if err := s.inventory.RenameCharacter(ctx, id, "", value); err != nil {
			log.Error("Failed to propagate series rename into collections", "character_id", id, "error", err)
		}
	}

	updated, err := s.catalog.FindOne(ctx, id)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("failed to reload character: %w", err)
	}

	if s.announcer != nil && updated.AnnouncementID != "" {
		if err := s.announcer.EditAnnouncement(ctx, updated.AnnouncementID, *updated); err != nil {
			log.Warn("Failed to edit announcement", "character_id", id, "error", err)
		}
	}

	return updated, nil
}

// Delete removes a catalog entry. Embedded inventory copies are untouched.
func (s *service) Delete(ctx context.Context, id string) (*domain.Character, error) {
	deleted, err := s.catalog.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete character: %w", err)
	}
	if deleted == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrCharacterNotFound, id)
	}
	return deleted, nil
}

// Find loads one catalog entry by id.
func (s *service) Find(ctx context.Context, id string) (*domain.Character, error) {
	c, err := s.catalog.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrCharacterNotFound, id)
	}
	return c, nil
}

// Search matches catalog entries by name or series, case-insensitive.
func (s *service) Search(ctx context.Context, query string) ([]domain.Character, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}
	results, err := s.catalog.Find(ctx, repository.CharacterFilter{NameQuery: query})
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return results, nil
}

// LockSpawn bars a character from all spawn selection.
func (s *service) LockSpawn(ctx context.Context, characterID, lockedBy string) (*domain.SpawnLock, error) {
	c, err := s.Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	lock := domain.SpawnLock{
		CharacterID: c.ID,
		Name:        c.Name,
		Series:      c.Series,
		Rarity:      c.Rarity,
		LockedBy:    lockedBy,
	}
	if err := s.locks.Lock(ctx, lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

// UnlockSpawn lifts a spawn lock.
func (s *service) UnlockSpawn(ctx context.Context, characterID string) (*domain.SpawnLock, error) {
	return s.locks.Unlock(ctx, characterID)
}

// LockedSpawns lists all active spawn locks.
func (s *service) LockedSpawns(ctx context.Context) ([]domain.SpawnLock, error) {
	return s.locks.All(ctx)
}

// SetFrequency stores the chat's regular spawn cadence. The minimum is one
// message per spawn.
func (s *service) SetFrequency(ctx context.Context, chatID string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: frequency must be at least 1", domain.ErrInvalidInput)
	}
	if err := s.settings.SetFrequency(ctx, chatID, n); err != nil {
		return fmt.Errorf("failed to store frequency: %w", err)
	}
	return nil
}

// Give grants a copy of a character to a user, creating their record if
// needed.
func (s *service) Give(ctx context.Context, characterID, userID, username, displayName string) (*domain.Character, error) {
	c, err := s.Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.UpsertIdentity(ctx, userID, username, displayName); err != nil {
		return nil, fmt.Errorf("failed to prepare user record: %w", err)
	}
	if err := s.inventory.PushCharacter(ctx, userID, *c); err != nil {
		return nil, fmt.Errorf("failed to grant character: %w", err)
	}
	return c, nil
}
