// Package announce delivers character cards to chat channels, degrading
// through media strategies until one lands.
package announce

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// Strategy names, rich to plain.
const (
	StrategyVideo = "video"
	StrategyPhoto = "photo"
	StrategyText  = "text"
)

// StrategyError records which delivery strategy failed so the caller's log
// shows the degradation path.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// Sender is the slice of the Discord session the announcer needs.
type Sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts character cards. Catalog upload announcements go to the
// configured catalog channel; spawn cards go to the chat they spawned in.
type Announcer struct {
	sender           Sender
	catalogChannelID string
}

// New creates an announcer. catalogChannelID may be empty, disabling upload
// announcements.
func New(sender Sender, catalogChannelID string) *Announcer {
	return &Announcer{sender: sender, catalogChannelID: catalogChannelID}
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

func isVideoURL(u string) bool {
	ext := strings.ToLower(path.Ext(strings.SplitN(u, "?", 2)[0]))
	return videoExtensions[ext]
}

func card(heading string, c domain.Character) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: heading,
		Description: fmt.Sprintf("%s **%s**\n%s · %s",
			rarity.Glyph(c.Rarity), c.Name, c.Series, c.Rarity),
		Color: 0x9b59b6,
		Image: &discordgo.MessageEmbedImage{URL: c.MediaURL},
	}
}

// Deliver posts a character card to channelID, trying strategies in order:
// video when the media looks like one, then photo, then text-only. Each
// failure is logged and the next strategy is tried; the error returned is the
// last strategy's.
func (a *Announcer) Deliver(ctx context.Context, channelID, heading string, c domain.Character) (*discordgo.Message, error) {
	log := logger.FromContext(ctx)

	type strategy struct {
		name string
		send func() (*discordgo.Message, error)
	}

	var strategies []strategy
	if isVideoURL(c.MediaURL) {
		strategies = append(strategies, strategy{StrategyVideo, func() (*discordgo.Message, error) {
			// Discord renders video links inline; embeds cannot carry video.
			return a.sender.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
				Content: fmt.Sprintf("**%s**\n%s", heading, c.MediaURL),
				Embeds:  []*discordgo.MessageEmbed{card("", c)},
			})
		}})
	}
	strategies = append(strategies,
		strategy{StrategyPhoto, func() (*discordgo.Message, error) {
			return a.sender.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
				Embeds: []*discordgo.MessageEmbed{card(heading, c)},
			})
		}},
		strategy{StrategyText, func() (*discordgo.Message, error) {
			return a.sender.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
				Content: fmt.Sprintf("**%s**\n%s %s (%s · %s)",
					heading, rarity.Glyph(c.Rarity), c.Name, c.Series, c.Rarity),
			})
		}},
	)

	var lastErr error
	for _, st := range strategies {
		msg, err := st.send()
		if err == nil {
			return msg, nil
		}
		lastErr = &StrategyError{Strategy: st.name, Err: err}
		log.Warn("Announcement delivery degraded", "strategy", st.name, "channel_id", channelID, "error", err)
	}
	return nil, lastErr
}

// AnnounceNewCharacter posts an upload card to the catalog channel and
// returns the message id for later edits.
func (a *Announcer) AnnounceNewCharacter(ctx context.Context, c domain.Character) (string, error) {
	if a.catalogChannelID == "" {
		return "", nil
	}
	msg, err := a.Deliver(ctx, a.catalogChannelID, "New character added", c)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// EditAnnouncement rewrites an upload card in place after a catalog edit.
func (a *Announcer) EditAnnouncement(_ context.Context, messageID string, c domain.Character) error {
	if a.catalogChannelID == "" {
		return nil
	}
	_, err := a.sender.ChannelMessageEditEmbed(a.catalogChannelID, messageID, card("New character added", c))
	if err != nil {
		return fmt.Errorf("failed to edit announcement %s: %w", messageID, err)
	}
	return nil
}
