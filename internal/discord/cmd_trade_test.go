package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/trade"
)

func TestOfferEmbedTrade(t *testing.T) {
	session := &trade.Session{
		ID:          "sess-1",
		Kind:        trade.KindTrade,
		ProposerID:  "u1",
		RecipientID: "u2",
		Offered:     domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Rare},
		Requested:   domain.Character{ID: "2", Name: "Zoro", Series: "One Piece", Rarity: rarity.Epic},
	}

	embed := offerEmbed(session, "Alice", "Bob")

	assert.Contains(t, embed.Title, "Trade")
	assert.Contains(t, embed.Description, "Alice")
	assert.Contains(t, embed.Description, "Bob")
	assert.Contains(t, embed.Description, "Luffy")
	assert.Contains(t, embed.Description, "Zoro")
}

func TestOfferEmbedGift(t *testing.T) {
	session := &trade.Session{
		ID:          "sess-2",
		Kind:        trade.KindGift,
		ProposerID:  "u1",
		RecipientID: "u2",
		Offered:     domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Rare},
	}

	embed := offerEmbed(session, "Alice", "Bob")

	assert.Contains(t, embed.Title, "Gift")
	assert.Contains(t, embed.Description, "Luffy")
	assert.NotContains(t, embed.Description, "exchange")
}

func TestOfferComponents(t *testing.T) {
	components := offerComponents("sess-1")
	require.Len(t, components, 1)

	row := components[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 2)
	assert.Equal(t, "trade:sess-1:confirm", row.Components[0].(discordgo.Button).CustomID)
	assert.Equal(t, "trade:sess-1:cancel", row.Components[1].(discordgo.Button).CustomID)
}
