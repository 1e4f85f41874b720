package repository

import (
	"context"
	"fmt"
	"time"

	"progression-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AchievementRepository struct {
	Col *mongo.Collection
}

func NewAchievementRepository(db *mongo.Database) *AchievementRepository {
	return &AchievementRepository{Col: db.Collection("achievements")}
}

// AwardOnce inserts the achievement unless the user already holds one of the
// same type. The upsert with $setOnInsert is a single conditional write, so
// concurrent evaluations of the same rule award exactly once. Returns true
// when this call created the award.
func (r *AchievementRepository) AwardOnce(ctx context.Context, userID, achievementType string, xpReward int, earnedAt time.Time) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"user_id": userID, "achievement_type": achievementType},
		bson.M{"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"user_id":   userID,
			"achievement_type": achievementType,
			"earned_at": earnedAt,
			"xp_reward": xpReward,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to award %s: %w", achievementType, err)
	}
	return res.UpsertedCount == 1, nil
}

func (r *AchievementRepository) FindByUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var achievements []models.Achievement
	for cur.Next(ctx) {
		var a models.Achievement
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, cur.Err()
}
