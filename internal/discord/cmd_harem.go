package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/harem"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// haremComponentPrefix tags the pagination buttons' custom ids:
// harem:<ownerID>:<page>.
const haremComponentPrefix = "harem"

// HaremCommand returns the collection view command and handler
func HaremCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "harem",
		Description: "Show your collection",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "page",
				Description: "Page to show (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		page := 1
		if opt, ok := optionMap(i)["page"]; ok {
			page = int(opt.IntValue())
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		view, err := svc.Harem.View(ctx, user.ID, page)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to render collection", "user_id", user.ID, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := renderHaremEmbed(view, displayName(i))
		components := haremComponents(user.ID, view)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &components,
		}); err != nil {
			slog.Error("Failed to send response", "error", err)
		}
	}

	return cmd, handler
}

// HaremPageComponent handles the pagination buttons.
func HaremPageComponent() (string, ComponentHandler) {
	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, args []string) {
		if len(args) != 2 {
			return
		}
		ownerID := args[0]
		page, err := strconv.Atoi(args[1])
		if err != nil {
			return
		}

		// Only the collection's owner can page through it.
		if user := getInteractionUser(i); user == nil || user.ID != ownerID {
			respondEphemeral(s, i, "Only the owner can flip these pages.")
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		view, err := svc.Harem.View(ctx, ownerID, page)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to render collection page", "user_id", ownerID, "error", err)
			return
		}

		embed := renderHaremEmbed(view, displayName(i))
		components := haremComponents(ownerID, view)
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: components,
			},
		}); err != nil {
			slog.Error("Failed to update collection page", "error", err)
		}
	}

	return haremComponentPrefix, handler
}

// renderHaremEmbed formats one collection page.
func renderHaremEmbed(view *harem.View, owner string) *discordgo.MessageEmbed {
	var sb strings.Builder
	if len(view.Entries) == 0 {
		sb.WriteString("Nothing here yet. Claim some characters!")
	}

	lastSeries := ""
	for _, e := range view.Entries {
		c := e.Character
		if c.Series != lastSeries {
			fmt.Fprintf(&sb, "\n**%s** (%d/%d)\n", c.Series, e.SeriesOwned, e.SeriesTotal)
			lastSeries = c.Series
		}
		fmt.Fprintf(&sb, "%s `%s` %s", rarity.Glyph(c.Rarity), c.ID, c.Name)
		if e.Count > 1 {
			fmt.Fprintf(&sb, " ×%d", e.Count)
		}
		sb.WriteString("\n")
	}

	if view.Filter != nil {
		fmt.Fprintf(&sb, "\n_Filter: %s = %s_", view.Filter.Kind, view.Filter.Value)
	}

	embed := createEmbed(
		fmt.Sprintf("%s's Collection — %d owned", owner, view.TotalOwned),
		sb.String(), 0x9b59b6, "")
	embed.Footer.Text = fmt.Sprintf("Page %d/%d · sort: %s", view.Page, view.TotalPages, sortLabel(view.Sort))
	if view.Favorite != nil {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: view.Favorite.MediaURL}
	}
	return embed
}

func sortLabel(pref domain.SortPreference) string {
	if pref == "" {
		return string(domain.SortBySeries)
	}
	return string(pref)
}

// haremComponents builds the prev/next buttons for a page.
func haremComponents(ownerID string, view *harem.View) []discordgo.MessageComponent {
	if view.TotalPages <= 1 {
		return nil
	}
	prev := view.Page - 1
	next := view.Page + 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:%s:%d", haremComponentPrefix, ownerID, prev),
					Disabled: view.Page <= 1,
				},
				discordgo.Button{
					Label:    "▶",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:%s:%d", haremComponentPrefix, ownerID, next),
					Disabled: view.Page >= view.TotalPages,
				},
			},
		},
	}
}
