package mongodb

import "github.com/osse101/GachaBot_Go/internal/repository"

// Compile-time checks that the repos satisfy the repository contracts.
var (
	_ repository.Catalog     = (*CatalogRepo)(nil)
	_ repository.Inventory   = (*InventoryRepo)(nil)
	_ repository.Leaderboard = (*LeaderboardRepo)(nil)
	_ repository.Settings    = (*SettingsRepo)(nil)
	_ repository.SpawnLocks  = (*SpawnLocksRepo)(nil)
)
