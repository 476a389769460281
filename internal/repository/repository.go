// Package repository defines the storage interfaces the services depend on.
// The production implementations live in internal/database/mongodb; the fakes
// in this package back the service tests.
package repository

import (
	"context"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// CharacterFilter narrows catalog queries. Zero-value fields are ignored.
type CharacterFilter struct {
	RarityIn    []rarity.Rarity
	RarityNotIn []rarity.Rarity
	ExcludeIDs  []string
	Series      string
	// NameQuery matches name or series, case-insensitive substring.
	NameQuery string
}

// Catalog is the character catalog store.
type Catalog interface {
	Find(ctx context.Context, filter CharacterFilter) ([]domain.Character, error)
	FindOne(ctx context.Context, id string) (*domain.Character, error)
	Count(ctx context.Context, filter CharacterFilter) (int64, error)
	DistinctRarities(ctx context.Context, filter CharacterFilter) ([]rarity.Rarity, error)
	SampleRandom(ctx context.Context, filter CharacterFilter, n int) ([]domain.Character, error)
	Insert(ctx context.Context, c domain.Character) error
	UpdateField(ctx context.Context, id, field, value string) error
	SetAnnouncementID(ctx context.Context, id, announcementID string) error
	Delete(ctx context.Context, id string) (*domain.Character, error)
	NextSequence(ctx context.Context, name string) (int64, error)
}

// Inventory is the per-user collection store.
type Inventory interface {
	FindOne(ctx context.Context, userID string) (*domain.UserRecord, error)
	// UpsertIdentity creates the record if absent and refreshes the cached
	// username/display name when they changed.
	UpsertIdentity(ctx context.Context, userID, username, displayName string) error
	PushCharacter(ctx context.Context, userID string, c domain.Character) error
	IncDailyClaim(ctx context.Context, userID, date string) error
	SetFavorite(ctx context.Context, userID, characterID string) error
	SetSortPreference(ctx context.Context, userID string, pref domain.SortPreference) error
	SetFilter(ctx context.Context, userID string, filter *domain.CollectionFilter) error
	ReplaceCharacters(ctx context.Context, userID string, characters []domain.Character) error
	// RenameCharacter propagates a catalog rename into every embedded copy.
	RenameCharacter(ctx context.Context, characterID, newName, newSeries string) error
}

// Leaderboard holds the denormalized claim counters.
type Leaderboard interface {
	IncGroupUser(ctx context.Context, groupID, userID, username, displayName string) error
	IncGlobalGroup(ctx context.Context, groupID, groupName string) error
	TopGroups(ctx context.Context, limit int) ([]domain.GlobalEntry, error)
	TopGroupUsers(ctx context.Context, groupID string, limit int) ([]domain.GroupEntry, error)
}

// Settings stores per-chat spawn configuration.
type Settings interface {
	// Frequency returns the chat's spawn cadence, defaulting to 100.
	Frequency(ctx context.Context, chatID string) (int, error)
	SetFrequency(ctx context.Context, chatID string, n int) error
}

// SpawnLocks stores the admin-curated set of characters barred from spawning.
type SpawnLocks interface {
	Lock(ctx context.Context, lock domain.SpawnLock) error
	Unlock(ctx context.Context, characterID string) (*domain.SpawnLock, error)
	LockedIDs(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]domain.SpawnLock, error)
}
