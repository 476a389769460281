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

// InventoryRepo implements repository.Inventory.
type InventoryRepo struct {
	users *mongo.Collection
}

func (r *InventoryRepo) FindOne(ctx context.Context, userID string) (*domain.UserRecord, error) {
	var rec domain.UserRecord
	err := r.users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return &rec, nil
}

func (r *InventoryRepo) UpsertIdentity(ctx context.Context, userID, username, displayName string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"username": username, "display_name": displayName}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert identity for %s: %w", userID, err)
	}
	return nil
}

func (r *InventoryRepo) PushCharacter(ctx context.Context, userID string, c domain.Character) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"characters": c}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to push character to %s: %w", userID, err)
	}
	return nil
}

func (r *InventoryRepo) IncDailyClaim(ctx context.Context, userID, date string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$inc": bson.M{"daily_claims." + date: 1}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to count daily claim for %s: %w", userID, err)
	}
	return nil
}

func (r *InventoryRepo) SetFavorite(ctx context.Context, userID, characterID string) error {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"favorite_id": characterID}},
	)
	if err != nil {
		return fmt.Errorf("failed to set favorite for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *InventoryRepo) SetSortPreference(ctx context.Context, userID string, pref domain.SortPreference) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"sort_preference": pref}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set sort preference for %s: %w", userID, err)
	}
	return nil
}

func (r *InventoryRepo) SetFilter(ctx context.Context, userID string, filter *domain.CollectionFilter) error {
	var update bson.M
	if filter == nil {
		update = bson.M{"$unset": bson.M{"filter": ""}}
	} else {
		update = bson.M{"$set": bson.M{"filter": filter}}
	}
	_, err := r.users.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set filter for %s: %w", userID, err)
	}
	return nil
}

func (r *InventoryRepo) ReplaceCharacters(ctx context.Context, userID string, characters []domain.Character) error {
	if characters == nil {
		characters = []domain.Character{}
	}
	res, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"characters": characters}},
	)
	if err != nil {
		return fmt.Errorf("failed to replace characters for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RenameCharacter rewrites the embedded copies of one character across every
// user record. Empty newName or newSeries leaves that field alone.
func (r *InventoryRepo) RenameCharacter(ctx context.Context, characterID, newName, newSeries string) error {
	set := bson.M{}
	if newName != "" {
		set["characters.$[c].name"] = newName
	}
	if newSeries != "" {
		set["characters.$[c].series"] = newSeries
	}
	if len(set) == 0 {
		return nil
	}

	_, err := r.users.UpdateMany(ctx,
		bson.M{"characters.id": characterID},
		bson.M{"$set": set},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"c.id": characterID}},
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to propagate rename of %s: %w", characterID, err)
	}
	return nil
}
