package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/logger"
)

// SortsCommand returns the sort preference command and handler
func SortsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.ValidSortPreferences))
	for _, p := range domain.ValidSortPreferences {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(p),
			Value: string(p),
		})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        "sorts",
		Description: "Choose how your collection is sorted",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "order",
				Description: "Sort order",
				Required:    true,
				Choices:     choices,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		pref := domain.SortPreference(getOptions(i)[0].StringValue())

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		if err := svc.Harem.SetSortPreference(ctx, user.ID, pref); err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed("Sorted!", fmt.Sprintf("Your collection is now sorted by **%s**.", pref), 0x3498db, ""))
	}

	return cmd, handler
}

// FilterCommand returns the collection filter command and handler
func FilterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "filter",
		Description: "Filter your collection view",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rarity",
				Description: "Show only one rarity tier",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "tier",
						Description: "Rarity tier name",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "name",
				Description: "Show only characters whose name contains text",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "text",
						Description: "Text to match",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear",
				Description: "Remove the active filter",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		sub := getOptions(i)[0]
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

		var err error
		var msg string
		switch sub.Name {
		case "rarity":
			value := sub.Options[0].StringValue()
			err = svc.Harem.SetFilter(ctx, user.ID, domain.CollectionFilter{Kind: domain.FilterByRarity, Value: value})
			msg = fmt.Sprintf("Showing only **%s** characters.", value)
		case "name":
			value := sub.Options[0].StringValue()
			err = svc.Harem.SetFilter(ctx, user.ID, domain.CollectionFilter{Kind: domain.FilterByName, Value: value})
			msg = fmt.Sprintf("Showing only names containing **%s**.", value)
		case "clear":
			err = svc.Harem.ClearFilter(ctx, user.ID)
			msg = "Filter cleared."
		}
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed("Filter Updated", msg, 0x3498db, ""))
	}

	return cmd, handler
}

// FavCommand returns the favorite command and handler
func FavCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "fav",
		Description: "Set your favorite character",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Character id from your collection",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		characterID := getOptions(i)[0].StringValue()

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		if err := svc.Harem.SetFavorite(ctx, user.ID, characterID); err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed("💖 Favorite Set", "They'll headline your collection view.", 0xe91e63, ""))
	}

	return cmd, handler
}
