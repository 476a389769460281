package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

// CatalogRepo implements repository.Catalog.
type CatalogRepo struct {
	characters *mongo.Collection
	sequences  *mongo.Collection
}

// filterQuery translates a CharacterFilter into a Mongo query document.
func filterQuery(f repository.CharacterFilter) bson.M {
	q := bson.M{}
	if len(f.RarityIn) > 0 || len(f.RarityNotIn) > 0 {
		// One clause document so in/nin can combine instead of clobbering.
		clause := bson.M{}
		if len(f.RarityIn) > 0 {
			clause["$in"] = f.RarityIn
		}
		if len(f.RarityNotIn) > 0 {
			clause["$nin"] = f.RarityNotIn
		}
		q["rarity"] = clause
	}
	if len(f.ExcludeIDs) > 0 {
		q["id"] = bson.M{"$nin": f.ExcludeIDs}
	}
	if f.Series != "" {
		q["series"] = f.Series
	}
	if f.NameQuery != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.NameQuery), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"series": re},
		}
	}
	return q
}

func (r *CatalogRepo) Find(ctx context.Context, filter repository.CharacterFilter) ([]domain.Character, error) {
	cur, err := r.characters.Find(ctx, filterQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	var out []domain.Character
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode characters: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) FindOne(ctx context.Context, id string) (*domain.Character, error) {
	var c domain.Character
	err := r.characters.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character %s: %w", id, err)
	}
	return &c, nil
}

func (r *CatalogRepo) Count(ctx context.Context, filter repository.CharacterFilter) (int64, error) {
	n, err := r.characters.CountDocuments(ctx, filterQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return n, nil
}

func (r *CatalogRepo) DistinctRarities(ctx context.Context, filter repository.CharacterFilter) ([]rarity.Rarity, error) {
	values, err := r.characters.Distinct(ctx, "rarity", filterQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list rarities: %w", err)
	}
	out := make([]rarity.Rarity, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, rarity.Rarity(s))
		}
	}
	return out, nil
}

func (r *CatalogRepo) SampleRandom(ctx context.Context, filter repository.CharacterFilter, n int) ([]domain.Character, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filterQuery(filter)}},
		{{Key: "$sample", Value: bson.M{"size": n}}},
	}
	cur, err := r.characters.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample characters: %w", err)
	}
	var out []domain.Character
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sampled characters: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) Insert(ctx context.Context, c domain.Character) error {
	if _, err := r.characters.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert character: %w", err)
	}
	return nil
}

func (r *CatalogRepo) UpdateField(ctx context.Context, id, field, value string) error {
	res, err := r.characters.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to update character %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

func (r *CatalogRepo) SetAnnouncementID(ctx context.Context, id, announcementID string) error {
	res, err := r.characters.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"announcement_id": announcementID}})
	if err != nil {
		return fmt.Errorf("failed to store announcement id: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

func (r *CatalogRepo) Delete(ctx context.Context, id string) (*domain.Character, error) {
	var c domain.Character
	err := r.characters.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete character %s: %w", id, err)
	}
	return &c, nil
}

// NextSequence atomically increments and returns the named counter.
func (r *CatalogRepo) NextSequence(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := r.sequences.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return doc.Value, nil
}
