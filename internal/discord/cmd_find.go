package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// maxSearchResults caps the search listing so the embed stays readable.
const maxSearchResults = 20

// characterCard formats one catalog entry for find and search responses.
func characterCard(c *domain.Character) *discordgo.MessageEmbed {
	embed := createEmbed(
		fmt.Sprintf("%s %s", rarity.Glyph(c.Rarity), c.Name),
		fmt.Sprintf("`%s` · %s · %s", c.ID, c.Series, c.Rarity),
		0x9b59b6, "")
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.MediaURL}
	return embed
}

// FindCommand returns the catalog lookup command and handler
func FindCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "find",
		Description: "Look up a character by catalog id",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Catalog id",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		id := getOptions(i)[0].StringValue()
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		c, err := svc.Catalog.Find(ctx, id)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, characterCard(c))
	}

	return cmd, handler
}

// SearchCommand returns the catalog search command and handler
func SearchCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "search",
		Description: "Search the catalog by name or series",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Text to search for",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		query := getOptions(i)[0].StringValue()
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		results, err := svc.Catalog.Search(ctx, query)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		if len(results) == 0 {
			respondError(s, i, MsgCharacterNotFound)
			return
		}

		var sb strings.Builder
		shown := results
		if len(shown) > maxSearchResults {
			shown = shown[:maxSearchResults]
		}
		for _, c := range shown {
			fmt.Fprintf(&sb, "%s `%s` **%s** · %s\n", rarity.Glyph(c.Rarity), c.ID, c.Name, c.Series)
		}
		if len(results) > maxSearchResults {
			fmt.Fprintf(&sb, "\n…and %d more. Narrow the query.", len(results)-maxSearchResults)
		}
		sendEmbed(s, i, createEmbed(fmt.Sprintf("🔍 %d match(es) for %q", len(results), query), sb.String(), 0x3498db, ""))
	}

	return cmd, handler
}

// RarityCommand returns the rarity info command and handler
func RarityCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "rarity",
		Description: "Show the rarity tiers and their spawn weights",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		var sb strings.Builder
		for _, tier := range rarity.Order {
			fmt.Fprintf(&sb, "%s **%s**", rarity.Glyph(tier), tier)
			if w := rarity.Weight(tier); w > 0 {
				fmt.Fprintf(&sb, " · weight %g", w)
			} else {
				sb.WriteString(" · never spawns on cadence")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\nRetro runs on its own slower cadence. Zenith and Limited Edition only move by gift, trade or admin grant.")
		sendEmbed(s, i, createEmbed("🎲 Rarity Tiers", sb.String(), 0xf1c40f, ""))
	}

	return cmd, handler
}
