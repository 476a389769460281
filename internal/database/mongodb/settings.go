package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultFrequency is the spawn cadence for chats with no stored setting.
const defaultFrequency = 100

// SettingsRepo implements repository.Settings.
type SettingsRepo struct {
	settings *mongo.Collection
}

type chatSettings struct {
	ChatID    string `bson:"chat_id"`
	Frequency int    `bson:"frequency"`
}

func (r *SettingsRepo) Frequency(ctx context.Context, chatID string) (int, error) {
	var doc chatSettings
	err := r.settings.FindOne(ctx, bson.M{"chat_id": chatID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return defaultFrequency, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load settings for chat %s: %w", chatID, err)
	}
	if doc.Frequency < 1 {
		return defaultFrequency, nil
	}
	return doc.Frequency, nil
}

func (r *SettingsRepo) SetFrequency(ctx context.Context, chatID string, n int) error {
	_, err := r.settings.UpdateOne(ctx,
		bson.M{"chat_id": chatID},
		bson.M{"$set": bson.M{"frequency": n}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store frequency for chat %s: %w", chatID, err)
	}
	return nil
}
