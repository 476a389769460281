package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/metrics"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/trade"
)

// tradeComponentPrefix tags the offer buttons' custom ids:
// trade:<sessionID>:confirm|cancel.
const tradeComponentPrefix = "trade"

// offerEmbed renders a pending trade or gift for the recipient.
func offerEmbed(session *trade.Session, proposerName, recipientName string) *discordgo.MessageEmbed {
	o := session.Offered
	var title, desc string
	if session.Kind == trade.KindGift {
		title = "🎁 Gift Offer"
		desc = fmt.Sprintf("**%s** wants to give **%s** %s `%s` **%s** (%s).",
			proposerName, recipientName, rarity.Glyph(o.Rarity), o.ID, o.Name, o.Series)
	} else {
		r := session.Requested
		title = "🤝 Trade Offer"
		desc = fmt.Sprintf("**%s** offers %s `%s` **%s** (%s)\nin exchange for **%s**'s %s `%s` **%s** (%s).",
			proposerName, rarity.Glyph(o.Rarity), o.ID, o.Name, o.Series,
			recipientName, rarity.Glyph(r.Rarity), r.ID, r.Name, r.Series)
	}
	return createEmbed(title, desc+"\n\nOnly the recipient can accept. Either side can cancel.", 0xe67e22, "")
}

// offerComponents builds the accept/cancel buttons for a session.
func offerComponents(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Accept",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("%s:%s:confirm", tradeComponentPrefix, sessionID),
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("%s:%s:cancel", tradeComponentPrefix, sessionID),
				},
			},
		},
	}
}

// sendOffer posts the offer embed with its buttons on the deferred interaction.
func sendOffer(s *discordgo.Session, i *discordgo.InteractionCreate, session *trade.Session, recipient *discordgo.User) {
	embed := offerEmbed(session, displayName(i), recipient.Username)
	components := offerComponents(session.ID)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}); err != nil {
		slog.Error("Failed to send offer", "error", err)
	}
}

// TradeCommand returns the two-way trade command and handler
func TradeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "trade",
		Description: "Offer one of your characters for one of theirs",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "with",
				Description: "Who to trade with",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "offer",
				Description: "Id of your character to give",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "for",
				Description: "Id of their character you want",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		opts := optionMap(i)
		recipient := opts["with"].UserValue(s)
		offeredID := opts["offer"].StringValue()
		requestedID := opts["for"].StringValue()

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		session, err := svc.Trade.ProposeTrade(ctx, user.ID, recipient.ID, offeredID, requestedID)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendOffer(s, i, session, recipient)
	}

	return cmd, handler
}

// GiftCommand returns the one-way gift command and handler
func GiftCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "gift",
		Description: "Give one of your characters away",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "to",
				Description: "Who receives the gift",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "offer",
				Description: "Id of your character to give",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		opts := optionMap(i)
		recipient := opts["to"].UserValue(s)
		offeredID := opts["offer"].StringValue()

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		session, err := svc.Trade.ProposeGift(ctx, user.ID, recipient.ID, offeredID)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendOffer(s, i, session, recipient)
	}

	return cmd, handler
}

// TradeComponent handles the accept/cancel buttons on an offer.
func TradeComponent() (string, ComponentHandler) {
	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, args []string) {
		if len(args) != 2 {
			return
		}
		sessionID, action := args[0], args[1]
		user := getInteractionUser(i)
		if user == nil {
			return
		}
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

		var embed *discordgo.MessageEmbed
		switch action {
		case "confirm":
			session, err := svc.Trade.Confirm(ctx, sessionID, user.ID)
			if err != nil {
				respondEphemeral(s, i, formatFriendlyError(err.Error()))
				return
			}
			metrics.RecordTrade(string(session.Kind))
			o := session.Offered
			desc := fmt.Sprintf("%s `%s` **%s** changed hands.", rarity.Glyph(o.Rarity), o.ID, o.Name)
			if session.Kind == trade.KindTrade {
				r := session.Requested
				desc += fmt.Sprintf("\n%s `%s` **%s** went the other way.", rarity.Glyph(r.Rarity), r.ID, r.Name)
			}
			embed = createEmbed("✅ Deal!", desc, 0x2ecc71, "")
		case "cancel":
			if err := svc.Trade.Cancel(ctx, sessionID, user.ID); err != nil {
				respondEphemeral(s, i, formatFriendlyError(err.Error()))
				return
			}
			embed = createEmbed("🚫 Offer Withdrawn", "This offer is no longer on the table.", 0x95a5a6, "")
		default:
			return
		}

		// Replace the offer message so the buttons disappear.
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: []discordgo.MessageComponent{},
			},
		}); err != nil {
			slog.Error("Failed to update offer message", "error", err)
		}
	}

	return tradeComponentPrefix, handler
}

// respondEphemeral answers a component interaction with a private message,
// leaving the original offer untouched.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to respond to component", "error", err)
	}
}
