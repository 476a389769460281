// Package discord is the bot's chat transport: slash commands, component
// interactions and the message stream feeding the spawn counter.
package discord

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/announce"
	"github.com/osse101/GachaBot_Go/internal/catalog"
	"github.com/osse101/GachaBot_Go/internal/claim"
	"github.com/osse101/GachaBot_Go/internal/config"
	"github.com/osse101/GachaBot_Go/internal/harem"
	"github.com/osse101/GachaBot_Go/internal/repository"
	"github.com/osse101/GachaBot_Go/internal/spamguard"
	"github.com/osse101/GachaBot_Go/internal/spawn"
	"github.com/osse101/GachaBot_Go/internal/trade"
)

// Services bundles everything the command handlers call into.
type Services struct {
	Config      *config.Config
	Spawn       *spawn.Service
	Claim       claim.Service
	Harem       harem.Service
	Catalog     catalog.Service
	Trade       trade.Service
	Spam        *spamguard.Service
	Announcer   *announce.Announcer
	Leaderboard repository.Leaderboard
}

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Registry *CommandRegistry
	Services *Services
}

// New creates a new Discord bot
func New(token string, services *Services) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents |= discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	return &Bot{
		Session:  s,
		Registry: NewCommandRegistry(),
		Services: services,
	}, nil
}

// Start opens the gateway connection and wires the handlers.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)
	b.Session.AddHandler(b.messageCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.Session.Close()
}

// Wait blocks until a shutdown signal is received.
func (b *Bot) Wait() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	b.Wait()
	return nil
}

// RegisterCommands pushes the registry's command set to Discord. The bulk
// overwrite replaces whatever was registered before.
func (b *Bot) RegisterCommands() error {
	appID := b.Session.State.User.ID

	desired := make([]*discordgo.ApplicationCommand, 0, len(b.Registry.Commands))
	for _, cmd := range b.Registry.Commands {
		desired = append(desired, cmd)
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(appID, "", desired); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	slog.Info("Commands registered", "count", len(desired))
	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Services)
	}
}
