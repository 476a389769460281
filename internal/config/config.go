package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DiscordToken     string
	CatalogChannelID string // channel where uploaded characters are announced
	AdminUserIDs     []string
	MongoURI         string
	MongoDatabase    string
	Port             int
	LogLevel         string
	LogFormat        string
	ServiceName      string
	Version          string
	Environment      string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		CatalogChannelID: getEnv("CATALOG_CHANNEL_ID", ""),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DB", "gachabot"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		ServiceName:      getEnv("SERVICE_NAME", "gacha-bot"),
		Version:          getEnv("VERSION", "dev"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
	}

	if admins := getEnv("ADMIN_USER_IDS", ""); admins != "" {
		for _, id := range strings.Split(admins, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.AdminUserIDs = append(cfg.AdminUserIDs, id)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Startup is the only place these can fail loudly
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable must be set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable must be set")
	}
	// Trailing commas show up when URIs are pasted from cluster dashboards
	cfg.MongoURI = strings.TrimRight(strings.TrimSpace(cfg.MongoURI), ",")
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is empty after trimming")
	}

	return cfg, nil
}

// IsAdmin reports whether the given platform user id is configured as admin.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
