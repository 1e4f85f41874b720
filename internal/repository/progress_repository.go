package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"progression-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressRepository owns the per-user progress documents (ledger + embedded
// streak state), one document per user keyed by user_id.
type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("user_progress")}
}

// GetOrCreate returns the user's progress document, creating an empty one on
// first activity. The upsert makes concurrent first calls converge on a
// single document.
func (r *ProgressRepository) GetOrCreate(ctx context.Context, userID string) (*models.UserProgress, error) {
	now := time.Now()
	seed := bson.M{
		"user_id":                 userID,
		"total_xp":                0,
		"level":                   1,
		"total_questions_correct": 0,
		"total_quizzes_completed": 0,
		"subject_progress":        bson.M{},
		"quiz_attempts":           bson.A{},
		"streak": models.StreakState{
			CurrentMultiplier: 1.0,
			Milestones:        []models.StreakMilestone{},
		},
		"created_at": now,
		"updated_at": now,
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var progress models.UserProgress
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": seed},
		opts,
	).Decode(&progress)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for %s: %w", userID, err)
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ClaimAttempt reserves the attempt slot for (userID, quizID) with a single
// conditional write: the placeholder is pushed only if no attempt with that
// quiz id exists yet. Mongo applies filter and push atomically on the one
// document, which closes the race between concurrent submissions. Returns
// ErrDuplicateSubmission when the slot is already taken.
func (r *ProgressRepository) ClaimAttempt(ctx context.Context, userID string, placeholder models.QuizAttempt) error {
	placeholder.Claimed = true
	res, err := r.Col.UpdateOne(ctx,
		bson.M{
			"user_id":                userID,
			"quiz_attempts.quiz_id": bson.M{"$ne": placeholder.QuizID},
		},
		bson.M{
			"$push": bson.M{"quiz_attempts": placeholder},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to claim attempt: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrDuplicateSubmission
	}
	return nil
}

// FinalizeUpdate carries everything a finalize writes in one atomic step.
type FinalizeUpdate struct {
	Attempt          models.QuizAttempt // fully scored, Claimed cleared
	Streak           models.StreakState
	SubjectProgress  models.SubjectProgress
	Level            int
	XPDelta          int // quiz XP plus any milestone XP
	QuestionsCorrect int
}

// FinalizeAttempt transitions the claimed placeholder into the scored record
// and applies the whole ledger delta in a single UpdateOne, so a reader never
// observes XP without the attempt or vice versa. The filter requires the
// claimed placeholder to still be present; a zero MatchedCount means the
// claim vanished and the finalize must not be applied.
func (r *ProgressRepository) FinalizeAttempt(ctx context.Context, userID string, update FinalizeUpdate) error {
	update.Attempt.Claimed = false
	res, err := r.Col.UpdateOne(ctx,
		bson.M{
			"user_id": userID,
			"quiz_attempts": bson.M{"$elemMatch": bson.M{
				"quiz_id": update.Attempt.QuizID,
				"claimed": true,
			}},
		},
		bson.M{
			"$set": bson.M{
				"quiz_attempts.$": update.Attempt,
				"streak":          update.Streak,
				"subject_progress." + update.Attempt.Subject: update.SubjectProgress,
				"level":      update.Level,
				"updated_at": time.Now(),
			},
			"$inc": bson.M{
				"total_xp":                update.XPDelta,
				"total_quizzes_completed": 1,
				"total_questions_correct": update.QuestionsCorrect,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to finalize attempt: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("finalize: claimed attempt for quiz %s not found: %w", update.Attempt.QuizID, models.ErrAttemptNotFound)
	}
	return nil
}

// AddXP credits XP outside the finalize path (badge rewards). Level is
// recomputed from the resulting total.
func (r *ProgressRepository) AddXP(ctx context.Context, userID string, xp int) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var after models.UserProgress
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$inc": bson.M{"total_xp": xp}},
		opts,
	).Decode(&after)
	if err != nil {
		return fmt.Errorf("failed to add xp: %w", err)
	}
	level := models.LevelForXP(after.TotalXP)
	if level != after.Level {
		_, err = r.Col.UpdateOne(ctx,
			bson.M{"user_id": userID},
			bson.M{"$set": bson.M{"level": level}},
		)
	}
	return err
}

// SpendXPOnFreeze deducts the freeze price and grants a freeze in one
// conditional write. Fails when the user cannot afford it or already holds
// the maximum number of freezes.
func (r *ProgressRepository) SpendXPOnFreeze(ctx context.Context, userID string, cost, maxFreezes int) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{
			"user_id":                   userID,
			"total_xp":                  bson.M{"$gte": cost},
			"streak.freezes_available": bson.M{"$lt": maxFreezes},
		},
		bson.M{
			"$inc": bson.M{
				"total_xp":                 -cost,
				"streak.freezes_available": 1,
			},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to grant freeze: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrFreezeUnavailable
	}
	return nil
}
