package harem

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

func char(id, name, series string, tier rarity.Rarity) domain.Character {
	return domain.Character{ID: id, Name: name, Series: series, Rarity: tier, MediaURL: "https://img.test/" + id + ".jpg"}
}

func newFixture(rec *domain.UserRecord, catalogChars ...domain.Character) (Service, *repository.FakeInventory) {
	inv := repository.NewFakeInventory()
	if rec != nil {
		inv.Put(rec)
	}
	catalog := repository.NewFakeCatalog(catalogChars...)
	return NewService(inv, catalog), inv
}

func TestViewUnknownUser(t *testing.T) {
	svc, _ := newFixture(nil)

	_, err := svc.View(context.Background(), "nobody", 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestViewCountsDuplicates(t *testing.T) {
	luffy := char("1", "Luffy", "One Piece", rarity.Common)
	zoro := char("2", "Zoro", "One Piece", rarity.Rare)
	svc, _ := newFixture(&domain.UserRecord{
		UserID:     "u1",
		Characters: []domain.Character{luffy, zoro, luffy, luffy},
	}, luffy, zoro)

	view, err := svc.View(context.Background(), "u1", 1)
	require.NoError(t, err)

	require.Len(t, view.Entries, 2)
	assert.Equal(t, 4, view.TotalOwned)
	assert.Equal(t, 4, view.Filtered)
	assert.Equal(t, "1", view.Entries[0].Character.ID)
	assert.Equal(t, 3, view.Entries[0].Count)
	assert.Equal(t, 1, view.Entries[1].Count)
}

func TestViewSeriesProgress(t *testing.T) {
	luffy := char("1", "Luffy", "One Piece", rarity.Common)
	zoro := char("2", "Zoro", "One Piece", rarity.Rare)
	nami := char("3", "Nami", "One Piece", rarity.Rare)
	svc, _ := newFixture(&domain.UserRecord{
		UserID:     "u1",
		Characters: []domain.Character{luffy, zoro},
	}, luffy, zoro, nami)

	view, err := svc.View(context.Background(), "u1", 1)
	require.NoError(t, err)

	require.Len(t, view.Entries, 2)
	assert.Equal(t, 2, view.Entries[0].SeriesOwned)
	assert.Equal(t, int64(3), view.Entries[0].SeriesTotal)
}

func TestViewSortOrders(t *testing.T) {
	a := char("1", "Zed", "Beta Show", rarity.Common)
	b := char("2", "Anna", "Alpha Show", rarity.Legendary)
	c := char("3", "Mika", "Alpha Show", rarity.LimitedEdition)
	rec := func(pref domain.SortPreference) *domain.UserRecord {
		return &domain.UserRecord{
			UserID:         "u1",
			Characters:     []domain.Character{a, b, c},
			SortPreference: pref,
		}
	}

	ids := func(v *View) []string {
		var out []string
		for _, e := range v.Entries {
			out = append(out, e.Character.ID)
		}
		return out
	}

	t.Run("series default", func(t *testing.T) {
		svc, _ := newFixture(rec(""), a, b, c)
		view, err := svc.View(context.Background(), "u1", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "3", "1"}, ids(view))
	})

	t.Run("name", func(t *testing.T) {
		svc, _ := newFixture(rec(domain.SortByName), a, b, c)
		view, err := svc.View(context.Background(), "u1", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "3", "1"}, ids(view))
	})

	t.Run("rarity rarest first", func(t *testing.T) {
		svc, _ := newFixture(rec(domain.SortByRarity), a, b, c)
		view, err := svc.View(context.Background(), "u1", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "2", "1"}, ids(view))
	})

	t.Run("limited partition", func(t *testing.T) {
		svc, _ := newFixture(rec(domain.SortByLimited), a, b, c)
		view, err := svc.View(context.Background(), "u1", 1)
		require.NoError(t, err)
		assert.Equal(t, "3", ids(view)[0], "limited edition characters lead the view")
	})
}

func TestViewFilters(t *testing.T) {
	luffy := char("1", "Monkey D Luffy", "One Piece", rarity.Common)
	zoro := char("2", "Roronoa Zoro", "One Piece", rarity.Legendary)
	base := []domain.Character{luffy, zoro, luffy}

	t.Run("rarity filter", func(t *testing.T) {
		svc, _ := newFixture(&domain.UserRecord{
			UserID:     "u1",
			Characters: base,
			Filter:     &domain.CollectionFilter{Kind: domain.FilterByRarity, Value: "Legendary"},
		}, luffy, zoro)

		view, err := svc.View(context.Background(), "u1", 1)
		require.NoError(t, err)
		require.Len(t, view.Entries, 1)
		assert.Equal(t, "2", view.Entries[0].Character.ID)
		assert.Equal(t, 3, view.TotalOwned)
		assert.Equal(t, 1, view.Filtered)
	})

	t.Run("name filter case-insensitive", func(t *testing.T) {
		svc, _ := newFixture(&domain.UserRecord{
			UserID:     "u1",
			Characters: base,
			Filter:     &domain.CollectionFilter{Kind: domain.FilterByName, Value: "LUFFY"},
		}, luffy, zoro)

		view, err := svc.View(context.Background(), "u1", 1)
		require.NoError(t, err)
		require.Len(t, view.Entries, 1)
		assert.Equal(t, "1", view.Entries[0].Character.ID)
		assert.Equal(t, 2, view.Entries[0].Count)
	})
}

func TestViewPagination(t *testing.T) {
	var owned []domain.Character
	for i := 1; i <= 40; i++ {
		owned = append(owned, char(fmt.Sprintf("%02d", i), fmt.Sprintf("Hero %02d", i), "Big Series", rarity.Common))
	}
	svc, _ := newFixture(&domain.UserRecord{UserID: "u1", Characters: owned}, owned...)
	ctx := context.Background()

	view, err := svc.View(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, view.Entries, PageSize)
	assert.Equal(t, 3, view.TotalPages)

	view, err = svc.View(ctx, "u1", 3)
	require.NoError(t, err)
	assert.Len(t, view.Entries, 10)
	assert.Equal(t, 3, view.Page)

	// Out-of-range pages clamp instead of erroring.
	view, err = svc.View(ctx, "u1", 99)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Page)
	view, err = svc.View(ctx, "u1", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
}

func TestViewFavorite(t *testing.T) {
	luffy := char("1", "Luffy", "One Piece", rarity.Common)
	svc, _ := newFixture(&domain.UserRecord{
		UserID:     "u1",
		Characters: []domain.Character{luffy},
		FavoriteID: "1",
	}, luffy)

	view, err := svc.View(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.NotNil(t, view.Favorite)
	assert.Equal(t, "Luffy", view.Favorite.Name)
}

func TestSetFavorite(t *testing.T) {
	luffy := char("1", "Luffy", "One Piece", rarity.Common)
	svc, inv := newFixture(&domain.UserRecord{
		UserID:     "u1",
		Characters: []domain.Character{luffy},
	}, luffy)
	ctx := context.Background()

	require.NoError(t, svc.SetFavorite(ctx, "u1", "1"))
	rec, err := inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "1", rec.FavoriteID)

	assert.ErrorIs(t, svc.SetFavorite(ctx, "u1", "404"), domain.ErrNotOwned)
	assert.ErrorIs(t, svc.SetFavorite(ctx, "ghost", "1"), domain.ErrUserNotFound)
}

func TestSetSortPreference(t *testing.T) {
	svc, inv := newFixture(&domain.UserRecord{UserID: "u1"})
	ctx := context.Background()

	require.NoError(t, svc.SetSortPreference(ctx, "u1", domain.SortByRarity))
	rec, err := inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.SortByRarity, rec.SortPreference)

	assert.ErrorIs(t, svc.SetSortPreference(ctx, "u1", "bogus"), domain.ErrInvalidInput)
}

func TestSetFilterValidation(t *testing.T) {
	svc, inv := newFixture(&domain.UserRecord{UserID: "u1"})
	ctx := context.Background()

	// Rarity values are normalized to canonical tier names.
	require.NoError(t, svc.SetFilter(ctx, "u1", domain.CollectionFilter{Kind: domain.FilterByRarity, Value: "legendary"}))
	rec, err := inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec.Filter)
	assert.Equal(t, "Legendary", rec.Filter.Value)

	assert.ErrorIs(t, svc.SetFilter(ctx, "u1", domain.CollectionFilter{Kind: domain.FilterByRarity, Value: "sparkly"}), domain.ErrInvalidRarity)
	assert.ErrorIs(t, svc.SetFilter(ctx, "u1", domain.CollectionFilter{Kind: domain.FilterByName, Value: "  "}), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetFilter(ctx, "u1", domain.CollectionFilter{Kind: "series", Value: "x"}), domain.ErrInvalidInput)

	require.NoError(t, svc.ClearFilter(ctx, "u1"))
	rec, err = inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec.Filter)
}
