package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/GachaBot_Go/internal/domain"
)

// SpawnLocksRepo implements repository.SpawnLocks.
type SpawnLocksRepo struct {
	locks *mongo.Collection
}

// Lock records a spawn lock. $setOnInsert keeps a concurrent double-lock from
// overwriting the original locker.
func (r *SpawnLocksRepo) Lock(ctx context.Context, lock domain.SpawnLock) error {
	res, err := r.locks.UpdateOne(ctx,
		bson.M{"character_id": lock.CharacterID},
		bson.M{"$setOnInsert": lock},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to lock character %s: %w", lock.CharacterID, err)
	}
	if res.UpsertedCount == 0 {
		return domain.ErrAlreadyLocked
	}
	return nil
}

func (r *SpawnLocksRepo) Unlock(ctx context.Context, characterID string) (*domain.SpawnLock, error) {
	var lock domain.SpawnLock
	err := r.locks.FindOneAndDelete(ctx, bson.M{"character_id": characterID}).Decode(&lock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotLocked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unlock character %s: %w", characterID, err)
	}
	return &lock, nil
}

func (r *SpawnLocksRepo) LockedIDs(ctx context.Context) ([]string, error) {
	values, err := r.locks.Distinct(ctx, "character_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list locked characters: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SpawnLocksRepo) All(ctx context.Context) ([]domain.SpawnLock, error) {
	cur, err := r.locks.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"character_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list spawn locks: %w", err)
	}
	var out []domain.SpawnLock
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode spawn locks: %w", err)
	}
	return out, nil
}
