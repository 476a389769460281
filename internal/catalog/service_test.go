package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

// fakeAnnouncer records announcement calls.
type fakeAnnouncer struct {
	announceErr error
	editErr     error
	announced   []domain.Character
	edited      []string
}

func (f *fakeAnnouncer) AnnounceNewCharacter(_ context.Context, c domain.Character) (string, error) {
	if f.announceErr != nil {
		return "", f.announceErr
	}
	f.announced = append(f.announced, c)
	return "msg-" + c.ID, nil
}

func (f *fakeAnnouncer) EditAnnouncement(_ context.Context, messageID string, _ domain.Character) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, messageID)
	return nil
}

func newFixture(chars ...domain.Character) (Service, *repository.FakeCatalog, *repository.FakeInventory, *repository.FakeSpawnLocks, *repository.FakeSettings, *fakeAnnouncer) {
	cat := repository.NewFakeCatalog(chars...)
	inv := repository.NewFakeInventory()
	locks := repository.NewFakeSpawnLocks()
	settings := repository.NewFakeSettings()
	ann := &fakeAnnouncer{}
	return NewService(cat, inv, locks, settings, ann), cat, inv, locks, settings, ann
}

func validUpload() UploadRequest {
	return UploadRequest{
		MediaURL:     "https://img.test/luffy.jpg",
		Name:         "monkey-d-luffy",
		Series:       "one-piece",
		RarityNumber: 5,
	}
}

func TestUploadNormalizesAndAnnounces(t *testing.T) {
	svc, cat, _, _, _, ann := newFixture()

	c, err := svc.Upload(context.Background(), validUpload())
	require.NoError(t, err)

	assert.Equal(t, "1", c.ID)
	assert.Equal(t, "Monkey D Luffy", c.Name)
	assert.Equal(t, "One Piece", c.Series)
	assert.Equal(t, rarity.Legendary, c.Rarity)
	assert.Equal(t, "msg-1", c.AnnouncementID)

	require.Len(t, ann.announced, 1)
	stored, err := cat.FindOne(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "msg-1", stored.AnnouncementID)
}

func TestUploadSequentialIDs(t *testing.T) {
	svc, _, _, _, _, _ := newFixture()
	ctx := context.Background()

	first, err := svc.Upload(ctx, validUpload())
	require.NoError(t, err)
	req := validUpload()
	req.Name = "roronoa-zoro"
	second, err := svc.Upload(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
}

func TestUploadValidation(t *testing.T) {
	svc, cat, _, _, _, _ := newFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*UploadRequest)
		want   error
	}{
		{"bad url", func(r *UploadRequest) { r.MediaURL = "not a url" }, domain.ErrInvalidInput},
		{"missing name", func(r *UploadRequest) { r.Name = "" }, domain.ErrInvalidInput},
		{"missing series", func(r *UploadRequest) { r.Series = "" }, domain.ErrInvalidInput},
		{"rarity out of range", func(r *UploadRequest) { r.RarityNumber = 12 }, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpload()
			tt.mutate(&req)
			_, err := svc.Upload(ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	n, err := cat.Count(ctx, repository.CharacterFilter{})
	require.NoError(t, err)
	assert.Zero(t, n, "rejected uploads must not reach the store")
}

func TestUploadAnnounceFailureIsStoreOnly(t *testing.T) {
	svc, cat, _, _, _, ann := newFixture()
	ann.announceErr = errors.New("channel gone")

	c, err := svc.Upload(context.Background(), validUpload())
	require.NoError(t, err)
	assert.Empty(t, c.AnnouncementID)

	stored, err := cat.FindOne(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, stored.AnnouncementID)
}

func TestUpdatePropagatesRename(t *testing.T) {
	luffy := domain.Character{ID: "1", Name: "Lufy", Series: "One Piece", Rarity: rarity.Common, MediaURL: "https://img.test/1.jpg", AnnouncementID: "msg-1"}
	svc, cat, inv, _, _, ann := newFixture(luffy)
	ctx := context.Background()

	inv.Put(&domain.UserRecord{UserID: "u1", Characters: []domain.Character{luffy, luffy}})

	updated, err := svc.Update(ctx, "1", "name", "monkey-d-luffy")
	require.NoError(t, err)
	assert.Equal(t, "Monkey D Luffy", updated.Name)

	stored, err := cat.FindOne(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Monkey D Luffy", stored.Name)

	rec, err := inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	for _, c := range rec.Characters {
		assert.Equal(t, "Monkey D Luffy", c.Name)
	}

	assert.Equal(t, []string{"msg-1"}, ann.edited)
}

func TestUpdateFieldValidation(t *testing.T) {
	luffy := domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Common, MediaURL: "https://img.test/1.jpg"}
	svc, cat, _, _, _, _ := newFixture(luffy)
	ctx := context.Background()

	_, err := svc.Update(ctx, "1", "height", "180")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(ctx, "1", "rarity", "sparkly")
	assert.ErrorIs(t, err, domain.ErrInvalidRarity)

	_, err = svc.Update(ctx, "1", "img", "not a url")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(ctx, "404", "name", "anything")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	updated, err := svc.Update(ctx, "1", "rarity", "legendary")
	require.NoError(t, err)
	assert.Equal(t, rarity.Legendary, updated.Rarity)

	stored, err := cat.FindOne(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, rarity.Legendary, stored.Rarity)
}

func TestDeleteLeavesCollectionsAlone(t *testing.T) {
	luffy := domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Common, MediaURL: "https://img.test/1.jpg"}
	svc, cat, inv, _, _, _ := newFixture(luffy)
	ctx := context.Background()
	inv.Put(&domain.UserRecord{UserID: "u1", Characters: []domain.Character{luffy}})

	deleted, err := svc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Luffy", deleted.Name)

	n, err := cat.Count(ctx, repository.CharacterFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	rec, err := inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rec.Characters, 1, "owned copies survive catalog deletion")

	_, err = svc.Delete(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestSearch(t *testing.T) {
	svc, _, _, _, _, _ := newFixture(
		domain.Character{ID: "1", Name: "Monkey D Luffy", Series: "One Piece", Rarity: rarity.Common},
		domain.Character{ID: "2", Name: "Roronoa Zoro", Series: "One Piece", Rarity: rarity.Rare},
		domain.Character{ID: "3", Name: "Edward Elric", Series: "Fullmetal Alchemist", Rarity: rarity.Epic},
	)
	ctx := context.Background()

	results, err := svc.Search(ctx, "one piece")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search(ctx, "LUFFY")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)

	_, err = svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSpawnLockLifecycle(t *testing.T) {
	luffy := domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Common}
	svc, _, _, _, _, _ := newFixture(luffy)
	ctx := context.Background()

	lock, err := svc.LockSpawn(ctx, "1", "admin1")
	require.NoError(t, err)
	assert.Equal(t, "Luffy", lock.Name)
	assert.Equal(t, "admin1", lock.LockedBy)

	_, err = svc.LockSpawn(ctx, "1", "admin2")
	assert.ErrorIs(t, err, domain.ErrAlreadyLocked)

	_, err = svc.LockSpawn(ctx, "404", "admin1")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	all, err := svc.LockedSpawns(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	unlocked, err := svc.UnlockSpawn(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", unlocked.CharacterID)

	_, err = svc.UnlockSpawn(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotLocked)
}

func TestSetFrequency(t *testing.T) {
	svc, _, _, _, settings, _ := newFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetFrequency(ctx, "chat1", 250))
	n, err := settings.Frequency(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, 250, n)

	assert.ErrorIs(t, svc.SetFrequency(ctx, "chat1", 0), domain.ErrInvalidInput)
}

func TestGiveCreatesRecord(t *testing.T) {
	luffy := domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Common}
	svc, _, inv, _, _, _ := newFixture(luffy)
	ctx := context.Background()

	given, err := svc.Give(ctx, "1", "u1", "luffyfan", "Luffy Fan")
	require.NoError(t, err)
	assert.Equal(t, "Luffy", given.Name)

	rec, err := inv.FindOne(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "luffyfan", rec.Username)
	require.Len(t, rec.Characters, 1)
	assert.Equal(t, "1", rec.Characters[0].ID)

	_, err = svc.Give(ctx, "404", "u1", "luffyfan", "Luffy Fan")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}
