// Package harem renders and configures per-user collection views.
package harem

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

// PageSize is the number of distinct characters shown per page.
const PageSize = 15

// Entry is one line of a collection page: a character the user owns, how many
// copies of it survived the active filter, and the user's progress through the
// character's series.
type Entry struct {
	Character   domain.Character
	Count       int
	SeriesOwned int
	SeriesTotal int64
}

// View is one rendered page of a user's collection.
type View struct {
	Entries    []Entry
	Page       int
	TotalPages int
	// TotalOwned counts every copy the user owns, before filtering.
	TotalOwned int
	// Filtered counts copies that passed the active filter.
	Filtered int
	Favorite *domain.Character
	Sort     domain.SortPreference
	Filter   *domain.CollectionFilter
}

// Service defines the interface for collection view operations
type Service interface {
	View(ctx context.Context, userID string, page int) (*View, error)
	SetSortPreference(ctx context.Context, userID string, pref domain.SortPreference) error
	SetFilter(ctx context.Context, userID string, filter domain.CollectionFilter) error
	ClearFilter(ctx context.Context, userID string) error
	SetFavorite(ctx context.Context, userID, characterID string) error
}

type service struct {
	inventory repository.Inventory
	catalog   repository.Catalog
}

// NewService creates a new harem service
func NewService(inventory repository.Inventory, catalog repository.Catalog) Service {
	return &service{inventory: inventory, catalog: catalog}
}

// View loads the user's record and renders one page: filter, sort, count
// copies per id, collapse duplicates to their first occurrence, paginate.
func (s *service) View(ctx context.Context, userID string, page int) (*View, error) {
	rec, err := s.inventory.FindOne(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrUserNotFound
	}

	filtered := applyFilter(rec.Characters, rec.Filter)
	sortCharacters(filtered, rec.SortPreference)

	counts := make(map[string]int, len(filtered))
	for _, c := range filtered {
		counts[c.ID]++
	}
	distinct := make([]domain.Character, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, c := range filtered {
		if !seen[c.ID] {
			seen[c.ID] = true
			distinct = append(distinct, c)
		}
	}

	totalPages := (len(distinct) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(distinct) {
		end = len(distinct)
	}

	seriesOwned := make(map[string]map[string]bool)
	for _, c := range rec.Characters {
		if seriesOwned[c.Series] == nil {
			seriesOwned[c.Series] = make(map[string]bool)
		}
		seriesOwned[c.Series][c.ID] = true
	}

	entries := make([]Entry, 0, end-start)
	seriesTotals := make(map[string]int64)
	for _, c := range distinct[start:end] {
		total, ok := seriesTotals[c.Series]
		if !ok {
			total, err = s.catalog.Count(ctx, repository.CharacterFilter{Series: c.Series})
			if err != nil {
				return nil, fmt.Errorf("failed to count series %q: %w", c.Series, err)
			}
			seriesTotals[c.Series] = total
		}
		entries = append(entries, Entry{
			Character:   c,
			Count:       counts[c.ID],
			SeriesOwned: len(seriesOwned[c.Series]),
			SeriesTotal: total,
		})
	}

	view := &View{
		Entries:    entries,
		Page:       page,
		TotalPages: totalPages,
		TotalOwned: len(rec.Characters),
		Filtered:   len(filtered),
		Sort:       rec.SortPreference,
		Filter:     rec.Filter,
	}
	if rec.FavoriteID != "" {
		for i := range rec.Characters {
			if rec.Characters[i].ID == rec.FavoriteID {
				fav := rec.Characters[i]
				view.Favorite = &fav
				break
			}
		}
	}
	return view, nil
}

func applyFilter(characters []domain.Character, filter *domain.CollectionFilter) []domain.Character {
	if filter == nil {
		return append([]domain.Character(nil), characters...)
	}
	out := make([]domain.Character, 0, len(characters))
	for _, c := range characters {
		switch filter.Kind {
		case domain.FilterByRarity:
			if strings.EqualFold(string(c.Rarity), filter.Value) {
				out = append(out, c)
			}
		case domain.FilterByName:
			if strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Value)) {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

// sortCharacters orders in place per the user's preference. Ties fall back to
// name so pages are stable across renders.
func sortCharacters(characters []domain.Character, pref domain.SortPreference) {
	switch pref {
	case domain.SortByName:
		sort.SliceStable(characters, func(i, j int) bool {
			return characters[i].Name < characters[j].Name
		})
	case domain.SortByRarity:
		sort.SliceStable(characters, func(i, j int) bool {
			ri, rj := rarity.Rank(characters[i].Rarity), rarity.Rank(characters[j].Rarity)
			if ri != rj {
				return ri < rj
			}
			return characters[i].Name < characters[j].Name
		})
	case domain.SortByLimited:
		sort.SliceStable(characters, func(i, j int) bool {
			li := characters[i].Rarity == rarity.LimitedEdition
			lj := characters[j].Rarity == rarity.LimitedEdition
			if li != lj {
				return li
			}
			ri, rj := rarity.Rank(characters[i].Rarity), rarity.Rank(characters[j].Rarity)
			if ri != rj {
				return ri < rj
			}
			return characters[i].Name < characters[j].Name
		})
	default: // domain.SortBySeries
		sort.SliceStable(characters, func(i, j int) bool {
			if characters[i].Series != characters[j].Series {
				return characters[i].Series < characters[j].Series
			}
			return characters[i].ID < characters[j].ID
		})
	}
}

// SetSortPreference stores the user's sort order for future views.
func (s *service) SetSortPreference(ctx context.Context, userID string, pref domain.SortPreference) error {
	switch pref {
	case domain.SortBySeries, domain.SortByName, domain.SortByRarity, domain.SortByLimited:
	default:
		return fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, pref)
	}
	if err := s.inventory.SetSortPreference(ctx, userID, pref); err != nil {
		return fmt.Errorf("failed to store sort preference: %w", err)
	}
	return nil
}

// SetFilter stores a collection filter. A rarity filter must name a real tier.
func (s *service) SetFilter(ctx context.Context, userID string, filter domain.CollectionFilter) error {
	switch filter.Kind {
	case domain.FilterByRarity:
		tier, err := rarity.Parse(filter.Value)
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrInvalidRarity, filter.Value)
		}
		filter.Value = string(tier)
	case domain.FilterByName:
		if strings.TrimSpace(filter.Value) == "" {
			return fmt.Errorf("%w: empty name filter", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown filter kind %q", domain.ErrInvalidInput, filter.Kind)
	}
	if err := s.inventory.SetFilter(ctx, userID, &filter); err != nil {
		return fmt.Errorf("failed to store filter: %w", err)
	}
	return nil
}

// ClearFilter removes the active filter.
func (s *service) ClearFilter(ctx context.Context, userID string) error {
	if err := s.inventory.SetFilter(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear filter: %w", err)
	}
	return nil
}

// SetFavorite marks an owned character as the user's favorite. The most
// recent call wins.
func (s *service) SetFavorite(ctx context.Context, userID, characterID string) error {
	rec, err := s.inventory.FindOne(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	if rec == nil {
		return domain.ErrUserNotFound
	}
	if _, ok := rec.OwnsCharacter(characterID); !ok {
		return domain.ErrNotOwned
	}
	if err := s.inventory.SetFavorite(ctx, userID, characterID); err != nil {
		return fmt.Errorf("failed to store favorite: %w", err)
	}
	return nil
}
