// Package domain holds the data types shared across services and stores.
package domain

import "github.com/osse101/GachaBot_Go/internal/rarity"

// Character is one catalog entry. Claimed copies are embedded into user
// records as value snapshots, so later catalog edits only reach existing
// copies through an explicit rename propagation.
type Character struct {
	ID       string        `bson:"id" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Series   string        `bson:"series" json:"series"`
	Rarity   rarity.Rarity `bson:"rarity" json:"rarity"`
	MediaURL string        `bson:"media_url" json:"media_url"`
	// AnnouncementID references the catalog-channel message posted when the
	// character was uploaded, used for best-effort edits on update.
	AnnouncementID string `bson:"announcement_id,omitempty" json:"announcement_id,omitempty"`
}
