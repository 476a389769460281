package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/metrics"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services)

// ComponentHandler handles a message component interaction. The args are the
// colon-separated custom id segments after the prefix.
type ComponentHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, args []string)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands   map[string]*discordgo.ApplicationCommand
	Handlers   map[string]CommandHandler
	Components map[string]ComponentHandler // by custom id prefix
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:   make(map[string]*discordgo.ApplicationCommand),
		Handlers:   make(map[string]CommandHandler),
		Components: make(map[string]ComponentHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterComponent adds a handler for component custom ids starting with
// prefix.
func (r *CommandRegistry) RegisterComponent(prefix string, handler ComponentHandler) {
	r.Components[prefix] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := r.Handlers[name]; ok {
			metrics.RecordCommand(name, "handled")
			h(s, i, svc)
		}
	case discordgo.InteractionMessageComponent:
		parts := strings.Split(i.MessageComponentData().CustomID, ":")
		if h, ok := r.Components[parts[0]]; ok {
			metrics.RecordCommand(parts[0], "component")
			h(s, i, svc, parts[1:])
		}
	}
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getInteractionUser extracts the user from an interaction, handling both
// guild and DM contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// displayName prefers the guild nickname over the account username.
func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	u := getInteractionUser(i)
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// getOptions extracts command options from an interaction.
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionMap indexes options by name for commands with optional arguments.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := getOptions(i)
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// respondError sends a generic error message on a deferred interaction.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError formats the error message before responding.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondError(s, i, formatFriendlyError(message))
}

// formatFriendlyError maps domain error text to user-facing messages.
func formatFriendlyError(msg string) string {
	switch {
	case strings.Contains(msg, domain.ErrMsgUserNotFound):
		return MsgUserNotFound
	case strings.Contains(msg, domain.ErrMsgCharacterNotFound):
		return MsgCharacterNotFound
	case strings.Contains(msg, domain.ErrMsgNotOwned):
		return MsgNotOwned
	case strings.Contains(msg, domain.ErrMsgInvalidRarity):
		return MsgInvalidRarity
	case strings.Contains(msg, domain.ErrMsgNoPendingSession):
		return MsgNoPendingSession
	case strings.Contains(msg, domain.ErrMsgNotYourSession):
		return MsgNotYourSession
	case strings.Contains(msg, domain.ErrMsgSelfTarget):
		return MsgSelfTarget
	case strings.Contains(msg, domain.ErrMsgAlreadyLocked):
		return MsgAlreadyLocked
	case strings.Contains(msg, domain.ErrMsgNotLocked):
		return MsgNotLocked
	case strings.Contains(msg, domain.ErrMsgInvalidInput):
		return "❌ " + msg
	default:
		return "❌ " + msg
	}
}

// sendEmbed sends an embed on a deferred interaction, logging send errors.
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// Footer constants for standardized embed footers.
const (
	FooterGachaBot      = "GachaBot"
	FooterGachaBotAdmin = "GachaBot Admin"
)

// createEmbed creates a standard embed with optional footer customization.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterGachaBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// requireAdmin rejects the interaction unless the caller is a configured
// admin. The response is sent on the deferred interaction.
func requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) bool {
	user := getInteractionUser(i)
	if user == nil || !svc.Config.IsAdmin(user.ID) {
		respondError(s, i, MsgAdminOnly)
		return false
	}
	return true
}
