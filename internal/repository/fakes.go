package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// FakeCatalog is an in-memory Catalog for tests.
type FakeCatalog struct {
	mu         sync.Mutex
	Characters []domain.Character
	Sequences  map[string]int64

	// Rand drives SampleRandom; defaults to picking the first match.
	Rand func(n int) int

	FindErr   error
	InsertErr error
}

func NewFakeCatalog(chars ...domain.Character) *FakeCatalog {
	return &FakeCatalog{
		Characters: append([]domain.Character(nil), chars...),
		Sequences:  make(map[string]int64),
	}
}

func matchesFilter(c domain.Character, f CharacterFilter) bool {
	for _, r := range f.RarityNotIn {
		if c.Rarity == r {
			return false
		}
	}
	if len(f.RarityIn) > 0 {
		found := false
		for _, r := range f.RarityIn {
			if c.Rarity == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, id := range f.ExcludeIDs {
		if c.ID == id {
			return false
		}
	}
	if f.Series != "" && c.Series != f.Series {
		return false
	}
	if f.NameQuery != "" {
		q := strings.ToLower(f.NameQuery)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Series), q) {
			return false
		}
	}
	return true
}

func (f *FakeCatalog) Find(_ context.Context, filter CharacterFilter) ([]domain.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	var out []domain.Character
	for _, c := range f.Characters {
		if matchesFilter(c, filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeCatalog) FindOne(_ context.Context, id string) (*domain.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Characters {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (f *FakeCatalog) Count(ctx context.Context, filter CharacterFilter) (int64, error) {
	chars, err := f.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(chars)), nil
}

func (f *FakeCatalog) DistinctRarities(ctx context.Context, filter CharacterFilter) ([]rarity.Rarity, error) {
	chars, err := f.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	seen := make(map[rarity.Rarity]bool)
	var out []rarity.Rarity
	for _, c := range chars {
		if !seen[c.Rarity] {
			seen[c.Rarity] = true
			out = append(out, c.Rarity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return rarity.Rank(out[i]) < rarity.Rank(out[j]) })
	return out, nil
}

func (f *FakeCatalog) SampleRandom(ctx context.Context, filter CharacterFilter, n int) ([]domain.Character, error) {
	chars, err := f.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 || n <= 0 {
		return nil, nil
	}
	idx := 0
	if f.Rand != nil {
		idx = f.Rand(len(chars))
	}
	return []domain.Character{chars[idx]}, nil
}

func (f *FakeCatalog) Insert(_ context.Context, c domain.Character) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return f.InsertErr
	}
	f.Characters = append(f.Characters, c)
	return nil
}

func (f *FakeCatalog) UpdateField(_ context.Context, id, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Characters {
		if f.Characters[i].ID != id {
			continue
		}
		switch field {
		case "name":
			f.Characters[i].Name = value
		case "series":
			f.Characters[i].Series = value
		case "rarity":
			f.Characters[i].Rarity = rarity.Rarity(value)
		case "media_url":
			f.Characters[i].MediaURL = value
		}
		return nil
	}
	return domain.ErrCharacterNotFound
}

func (f *FakeCatalog) SetAnnouncementID(_ context.Context, id, announcementID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Characters {
		if f.Characters[i].ID == id {
			f.Characters[i].AnnouncementID = announcementID
			return nil
		}
	}
	return domain.ErrCharacterNotFound
}

func (f *FakeCatalog) Delete(_ context.Context, id string) (*domain.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.Characters {
		if c.ID == id {
			f.Characters = append(f.Characters[:i], f.Characters[i+1:]...)
			return &c, nil
		}
	}
	return nil, nil
}

func (f *FakeCatalog) NextSequence(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sequences[name]++
	return f.Sequences[name], nil
}

// FakeInventory is an in-memory Inventory for tests.
type FakeInventory struct {
	mu      sync.Mutex
	Records map[string]*domain.UserRecord

	PushErr     error
	IncErr      error
	IdentityErr error
}

func NewFakeInventory() *FakeInventory {
	return &FakeInventory{Records: make(map[string]*domain.UserRecord)}
}

// Put seeds a record directly.
func (f *FakeInventory) Put(rec *domain.UserRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Records[rec.UserID] = rec
}

func (f *FakeInventory) FindOne(_ context.Context, userID string) (*domain.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.Records[userID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	cp.Characters = append([]domain.Character(nil), rec.Characters...)
	if rec.DailyClaims != nil {
		cp.DailyClaims = make(map[string]int, len(rec.DailyClaims))
		for k, v := range rec.DailyClaims {
			cp.DailyClaims[k] = v
		}
	}
	return &cp, nil
}

func (f *FakeInventory) UpsertIdentity(_ context.Context, userID, username, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.IdentityErr != nil {
		return f.IdentityErr
	}
	rec, ok := f.Records[userID]
	if !ok {
		rec = &domain.UserRecord{UserID: userID}
		f.Records[userID] = rec
	}
	rec.Username = username
	rec.DisplayName = displayName
	return nil
}

func (f *FakeInventory) PushCharacter(_ context.Context, userID string, c domain.Character) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PushErr != nil {
		return f.PushErr
	}
	rec, ok := f.Records[userID]
	if !ok {
		rec = &domain.UserRecord{UserID: userID}
		f.Records[userID] = rec
	}
	rec.Characters = append(rec.Characters, c)
	return nil
}

func (f *FakeInventory) IncDailyClaim(_ context.Context, userID, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.IncErr != nil {
		return f.IncErr
	}
	rec, ok := f.Records[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if rec.DailyClaims == nil {
		rec.DailyClaims = make(map[string]int)
	}
	rec.DailyClaims[date]++
	return nil
}

func (f *FakeInventory) SetFavorite(_ context.Context, userID, characterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.Records[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.FavoriteID = characterID
	return nil
}

func (f *FakeInventory) SetSortPreference(_ context.Context, userID string, pref domain.SortPreference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.Records[userID]
	if !ok {
		rec = &domain.UserRecord{UserID: userID}
		f.Records[userID] = rec
	}
	rec.SortPreference = pref
	return nil
}

func (f *FakeInventory) SetFilter(_ context.Context, userID string, filter *domain.CollectionFilter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.Records[userID]
	if !ok {
		rec = &domain.UserRecord{UserID: userID}
		f.Records[userID] = rec
	}
	rec.Filter = filter
	return nil
}

func (f *FakeInventory) ReplaceCharacters(_ context.Context, userID string, characters []domain.Character) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.Records[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.Characters = append([]domain.Character(nil), characters...)
	return nil
}

func (f *FakeInventory) RenameCharacter(_ context.Context, characterID, newName, newSeries string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.Records {
		for i := range rec.Characters {
			if rec.Characters[i].ID == characterID {
				if newName != "" {
					rec.Characters[i].Name = newName
				}
				if newSeries != "" {
					rec.Characters[i].Series = newSeries
				}
			}
		}
	}
	return nil
}

// FakeLeaderboard is an in-memory Leaderboard for tests.
type FakeLeaderboard struct {
	mu     sync.Mutex
	Group  map[string]*domain.GroupEntry  // key: groupID + "/" + userID
	Global map[string]*domain.GlobalEntry // key: groupID

	GroupErr  error
	GlobalErr error
}

func NewFakeLeaderboard() *FakeLeaderboard {
	return &FakeLeaderboard{
		Group:  make(map[string]*domain.GroupEntry),
		Global: make(map[string]*domain.GlobalEntry),
	}
}

func (f *FakeLeaderboard) IncGroupUser(_ context.Context, groupID, userID, username, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GroupErr != nil {
		return f.GroupErr
	}
	key := groupID + "/" + userID
	e, ok := f.Group[key]
	if !ok {
		e = &domain.GroupEntry{GroupID: groupID, UserID: userID}
		f.Group[key] = e
	}
	e.Username = username
	e.DisplayName = displayName
	e.Count++
	return nil
}

func (f *FakeLeaderboard) IncGlobalGroup(_ context.Context, groupID, groupName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GlobalErr != nil {
		return f.GlobalErr
	}
	e, ok := f.Global[groupID]
	if !ok {
		e = &domain.GlobalEntry{GroupID: groupID}
		f.Global[groupID] = e
	}
	e.GroupName = groupName
	e.Count++
	return nil
}

func (f *FakeLeaderboard) TopGroups(_ context.Context, limit int) ([]domain.GlobalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.GlobalEntry
	for _, e := range f.Global {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeLeaderboard) TopGroupUsers(_ context.Context, groupID string, limit int) ([]domain.GroupEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.GroupEntry
	for _, e := range f.Group {
		if e.GroupID == groupID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FakeSettings is an in-memory Settings for tests.
type FakeSettings struct {
	mu          sync.Mutex
	Frequencies map[string]int

	Err error
}

func NewFakeSettings() *FakeSettings {
	return &FakeSettings{Frequencies: make(map[string]int)}
}

func (f *FakeSettings) Frequency(_ context.Context, chatID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	if n, ok := f.Frequencies[chatID]; ok {
		return n, nil
	}
	return 100, nil
}

func (f *FakeSettings) SetFrequency(_ context.Context, chatID string, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Frequencies[chatID] = n
	return nil
}

// FakeSpawnLocks is an in-memory SpawnLocks for tests.
type FakeSpawnLocks struct {
	mu    sync.Mutex
	Locks map[string]domain.SpawnLock
}

func NewFakeSpawnLocks() *FakeSpawnLocks {
	return &FakeSpawnLocks{Locks: make(map[string]domain.SpawnLock)}
}

func (f *FakeSpawnLocks) Lock(_ context.Context, lock domain.SpawnLock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Locks[lock.CharacterID]; ok {
		return domain.ErrAlreadyLocked
	}
	f.Locks[lock.CharacterID] = lock
	return nil
}

func (f *FakeSpawnLocks) Unlock(_ context.Context, characterID string) (*domain.SpawnLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lock, ok := f.Locks[characterID]
	if !ok {
		return nil, domain.ErrNotLocked
	}
	delete(f.Locks, characterID)
	return &lock, nil
}

func (f *FakeSpawnLocks) LockedIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.Locks))
	for id := range f.Locks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FakeSpawnLocks) All(_ context.Context) ([]domain.SpawnLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.SpawnLock, 0, len(f.Locks))
	for _, l := range f.Locks {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CharacterID < out[j].CharacterID })
	return out, nil
}
