package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/osse101/GachaBot_Go/internal/announce"
	"github.com/osse101/GachaBot_Go/internal/catalog"
	"github.com/osse101/GachaBot_Go/internal/claim"
	"github.com/osse101/GachaBot_Go/internal/config"
	"github.com/osse101/GachaBot_Go/internal/database/mongodb"
	"github.com/osse101/GachaBot_Go/internal/discord"
	"github.com/osse101/GachaBot_Go/internal/harem"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/server"
	"github.com/osse101/GachaBot_Go/internal/spamguard"
	"github.com/osse101/GachaBot_Go/internal/spawn"
	"github.com/osse101/GachaBot_Go/internal/trade"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := mongodb.NewClient(ctx, mongodb.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	cancel()
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			slog.Error("Failed to close MongoDB client", "error", err)
		}
	}()

	catalogRepo := store.Catalog()
	inventoryRepo := store.Inventory()
	leaderboardRepo := store.Leaderboard()
	settingsRepo := store.Settings()
	locksRepo := store.SpawnLocks()

	spamSvc := spamguard.NewService()
	spawnSvc, err := spawn.NewService(catalogRepo, locksRepo, settingsRepo)
	if err != nil {
		slog.Error("Failed to create spawn service", "error", err)
		os.Exit(1)
	}

	// The announcer needs the Discord session, so it and the catalog service
	// are wired after the bot is created. Handlers only run once the gateway
	// is open, well after both fields are set.
	services := &discord.Services{
		Config:      cfg,
		Spawn:       spawnSvc,
		Claim:       claim.NewService(spawnSvc, spamSvc, inventoryRepo, leaderboardRepo),
		Harem:       harem.NewService(inventoryRepo, catalogRepo),
		Trade:       trade.NewService(inventoryRepo),
		Spam:        spamSvc,
		Leaderboard: leaderboardRepo,
	}

	bot, err := discord.New(cfg.DiscordToken, services)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}
	services.Announcer = announce.New(bot.Session, cfg.CatalogChannelID)
	services.Catalog = catalog.NewService(catalogRepo, inventoryRepo, locksRepo, settingsRepo, services.Announcer)

	discord.RegisterAll(bot.Registry)

	ops := server.NewServer(cfg.Port, cfg.ServiceName, cfg.Version, store)
	go func() {
		if err := ops.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Ops server failed", "error", err)
			os.Exit(1)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ops.Stop(ctx); err != nil {
			slog.Error("Failed to stop ops server", "error", err)
		}
	}()

	if err := bot.Start(); err != nil {
		slog.Error("Bot failed to start", "error", err)
		os.Exit(1)
	}
	defer bot.Stop()

	if err := bot.RegisterCommands(); err != nil {
		// The bot can still serve whatever was registered on a previous run.
		slog.Error("Failed to register commands", "error", err)
	}

	bot.Wait()
}
