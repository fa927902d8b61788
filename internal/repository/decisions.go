package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
)

const decisionsCollection = "decisions"

// DecisionRepository is the decision log: one document per engine turn.
type DecisionRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewDecisionRepository(log *zap.SugaredLogger, mongo *mongo.Database) *DecisionRepository {
	return &DecisionRepository{
		log:   log,
		mongo: mongo,
	}
}

func (d *DecisionRepository) PutDecision(ctx context.Context, record game.DecisionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := d.mongo.Collection(decisionsCollection).InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert decision of game %s: %w", record.GameID, err)
	}

	d.log.Debugf("decision of game %s at move %d stored", record.GameID, record.MovesPlayed)
	return nil
}

// GetDecisionsByGame returns the game's decisions in the order they were made.
func (d *DecisionRepository) GetDecisionsByGame(ctx context.Context, gameID string) ([]game.DecisionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "moves_played", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := d.mongo.Collection(decisionsCollection).Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions of game %s: %w", gameID, err)
	}
	defer cursor.Close(ctx)

	var records []game.DecisionRecord
	for cursor.Next(ctx) {
		var record game.DecisionRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode decision of game %s: %w", gameID, err)
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ownErrors.ErrGameNotFound
	}
	return records, nil
}
