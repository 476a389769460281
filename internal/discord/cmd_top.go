package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/logger"
)

// leaderboardLimit is how many rows the top commands show.
const leaderboardLimit = 10

// medal decorates the podium; everyone else gets a plain rank.
func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// TopCommand returns the per-group leaderboard command and handler
func TopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "top",
		Description: "Show this server's top collectors",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		entries, err := svc.Leaderboard.TopGroupUsers(ctx, i.ChannelID, leaderboardLimit)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to load group leaderboard", "chat_id", i.ChannelID, "error", err)
			respondError(s, i, MsgGenericError)
			return
		}
		if len(entries) == 0 {
			respondError(s, i, "🏆 Nobody has claimed anything here yet.")
			return
		}

		var sb strings.Builder
		for idx, e := range entries {
			name := e.DisplayName
			if name == "" {
				name = e.Username
			}
			fmt.Fprintf(&sb, "%s **%s** — %d claims\n", medal(idx+1), name, e.Count)
		}
		sendEmbed(s, i, createEmbed("🏆 Top Collectors", sb.String(), 0xf1c40f, ""))
	}

	return cmd, handler
}

// TopGroupsCommand returns the global leaderboard command and handler
func TopGroupsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "topgroups",
		Description: "Show the most active servers across the bot",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		entries, err := svc.Leaderboard.TopGroups(ctx, leaderboardLimit)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to load global leaderboard", "error", err)
			respondError(s, i, MsgGenericError)
			return
		}
		if len(entries) == 0 {
			respondError(s, i, "🌍 No claims anywhere yet. Be the first!")
			return
		}

		var sb strings.Builder
		for idx, e := range entries {
			name := e.GroupName
			if name == "" {
				name = e.GroupID
			}
			fmt.Fprintf(&sb, "%s **%s** — %d claims\n", medal(idx+1), name, e.Count)
		}
		sendEmbed(s, i, createEmbed("🌍 Top Servers", sb.String(), 0xf1c40f, ""))
	}

	return cmd, handler
}
