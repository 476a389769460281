package domain

import "github.com/osse101/GachaBot_Go/internal/rarity"

// SpawnLock marks a catalog character as excluded from all spawn selection.
type SpawnLock struct {
	CharacterID string        `bson:"character_id" json:"character_id"`
	Name        string        `bson:"name" json:"name"`
	Series      string        `bson:"series" json:"series"`
	Rarity      rarity.Rarity `bson:"rarity" json:"rarity"`
	LockedBy    string        `bson:"locked_by" json:"locked_by"`
}
