package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/GachaBot_Go/internal/domain"
)

// LeaderboardRepo implements repository.Leaderboard over two collections:
// one counter per (group, user) and one per group.
type LeaderboardRepo struct {
	group  *mongo.Collection
	global *mongo.Collection
}

func (r *LeaderboardRepo) IncGroupUser(ctx context.Context, groupID, userID, username, displayName string) error {
	_, err := r.group.UpdateOne(ctx,
		bson.M{"group_id": groupID, "user_id": userID},
		bson.M{
			"$set": bson.M{"username": username, "display_name": displayName},
			"$inc": bson.M{"count": 1},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to count claim for user %s in group %s: %w", userID, groupID, err)
	}
	return nil
}

func (r *LeaderboardRepo) IncGlobalGroup(ctx context.Context, groupID, groupName string) error {
	_, err := r.global.UpdateOne(ctx,
		bson.M{"group_id": groupID},
		bson.M{
			"$set": bson.M{"group_name": groupName},
			"$inc": bson.M{"count": 1},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to count claim for group %s: %w", groupID, err)
	}
	return nil
}

func (r *LeaderboardRepo) TopGroups(ctx context.Context, limit int) ([]domain.GlobalEntry, error) {
	cur, err := r.global.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"count": -1}).SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to query global leaderboard: %w", err)
	}
	var out []domain.GlobalEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode global leaderboard: %w", err)
	}
	return out, nil
}

func (r *LeaderboardRepo) TopGroupUsers(ctx context.Context, groupID string, limit int) ([]domain.GroupEntry, error) {
	cur, err := r.group.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.M{"count": -1}).SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to query group leaderboard: %w", err)
	}
	var out []domain.GroupEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode group leaderboard: %w", err)
	}
	return out, nil
}
