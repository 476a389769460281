// Package mongodb implements the repository interfaces on MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	collCharacters  = "characters"
	collUsers       = "users"
	collGroupBoard  = "group_leaderboard"
	collGlobalBoard = "global_leaderboard"
	collSettings    = "settings"
	collSpawnLocks  = "spawn_locks"
	collSequences   = "sequences"
)

const connectTimeout = 10 * time.Second

// Config holds the MongoDB connection settings.
type Config struct {
	URI      string
	Database string
}

// Client wraps one MongoDB connection and hands out repositories bound to it.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: cli, db: cli.Database(cfg.Database)}, nil
}

// Ping verifies connectivity, used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Catalog returns the character catalog repository.
func (c *Client) Catalog() *CatalogRepo {
	return &CatalogRepo{
		characters: c.db.Collection(collCharacters),
		sequences:  c.db.Collection(collSequences),
	}
}

// Inventory returns the per-user collection repository.
func (c *Client) Inventory() *InventoryRepo {
	return &InventoryRepo{users: c.db.Collection(collUsers)}
}

// Leaderboard returns the claim counter repository.
func (c *Client) Leaderboard() *LeaderboardRepo {
	return &LeaderboardRepo{
		group:  c.db.Collection(collGroupBoard),
		global: c.db.Collection(collGlobalBoard),
	}
}

// Settings returns the per-chat configuration repository.
func (c *Client) Settings() *SettingsRepo {
	return &SettingsRepo{settings: c.db.Collection(collSettings)}
}

// SpawnLocks returns the spawn lock repository.
func (c *Client) SpawnLocks() *SpawnLocksRepo {
	return &SpawnLocksRepo{locks: c.db.Collection(collSpawnLocks)}
}
