package domain

// SortPreference controls collection view ordering.
type SortPreference string

const (
	SortBySeries  SortPreference = "series" // default: series, then catalog id
	SortByName    SortPreference = "name"
	SortByRarity  SortPreference = "rarity"
	SortByLimited SortPreference = "limited_time"
)

// ValidSortPreferences lists the values accepted by the sorts command.
var ValidSortPreferences = []SortPreference{SortBySeries, SortByName, SortByRarity, SortByLimited}

// FilterKind selects how a collection filter matches.
type FilterKind string

const (
	FilterByRarity FilterKind = "rarity"
	FilterByName   FilterKind = "name"
)

// CollectionFilter narrows a collection view before sorting and counting.
type CollectionFilter struct {
	Kind  FilterKind `bson:"kind" json:"kind"`
	Value string     `bson:"value" json:"value"`
}

// UserRecord is the per-user inventory document. Characters holds one entry
// per owned copy; duplicates are expected and counted by the view layer.
type UserRecord struct {
	UserID         string            `bson:"user_id" json:"user_id"`
	Username       string            `bson:"username" json:"username"`
	DisplayName    string            `bson:"display_name" json:"display_name"`
	Characters     []Character       `bson:"characters" json:"characters"`
	FavoriteID     string            `bson:"favorite_id,omitempty" json:"favorite_id,omitempty"`
	SortPreference SortPreference    `bson:"sort_preference,omitempty" json:"sort_preference,omitempty"`
	Filter         *CollectionFilter `bson:"filter,omitempty" json:"filter,omitempty"`
	DailyClaims    map[string]int    `bson:"daily_claims,omitempty" json:"daily_claims,omitempty"`
}

// OwnsCharacter reports whether the record holds at least one copy of id,
// returning the first copy found.
func (u *UserRecord) OwnsCharacter(id string) (Character, bool) {
	for _, c := range u.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}
