package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/claim"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/metrics"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// guildName resolves the guild's display name, falling back to the id when
// the state cache misses.
func guildName(s *discordgo.Session, guildID string) string {
	if g, err := s.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	return guildID
}

// ClaimCommand returns the claim command definition and handler
func ClaimCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "claim",
		Description: "Guess the spawned character's name to claim them",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Your guess",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		guess := getOptions(i)[0].StringValue()
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

		res, err := svc.Claim.Claim(ctx, claim.Request{
			ChatID:      i.ChannelID,
			GroupName:   guildName(s, i.GuildID),
			UserID:      user.ID,
			Username:    user.Username,
			DisplayName: displayName(i),
			Guess:       guess,
			Now:         time.Now(),
		})
		if err != nil {
			logger.FromContext(ctx).Error("Claim failed", "user_id", user.ID, "error", err)
			respondError(s, i, MsgGenericError)
			return
		}

		if !res.Accepted {
			metrics.RecordClaim(string(res.Reason))
			respondError(s, i, rejectMessage(res))
			return
		}

		metrics.RecordClaim("accepted")
		c := res.Character
		embed := createEmbed(
			"🎉 Claimed!",
			fmt.Sprintf("**%s** claimed %s **%s**!\n%s · %s",
				displayName(i), rarity.Glyph(c.Rarity), c.Name, c.Series, c.Rarity),
			0x2ecc71, "")
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.MediaURL}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// rejectMessage maps a claim rejection to its user-facing response.
func rejectMessage(res *claim.Result) string {
	switch res.Reason {
	case claim.RejectSpamBlocked:
		return fmt.Sprintf("🚫 **Slow Down**\nYou're blocked for spamming. Try again in **%s**.",
			res.BlockedFor.Round(time.Second))
	case claim.RejectDailyQuotaExceeded:
		return MsgQuotaExceeded
	case claim.RejectNothingSpawned:
		return MsgNothingSpawned
	case claim.RejectAlreadyClaimed:
		return MsgAlreadyClaimed
	case claim.RejectWrongGuess:
		return MsgWrongGuess
	default:
		return MsgGenericError
	}
}
