package service

import (
	"context"
	"time"

	"progression-service/internal/models"
	"progression-service/internal/repository"
)

// Storage interfaces consumed by the services. The mongo repositories are
// the production implementations; tests plug in in-memory fakes.

type ProgressStore interface {
	GetOrCreate(ctx context.Context, userID string) (*models.UserProgress, error)
	FindByUser(ctx context.Context, userID string) (*models.UserProgress, error)
	ClaimAttempt(ctx context.Context, userID string, placeholder models.QuizAttempt) error
	FinalizeAttempt(ctx context.Context, userID string, update repository.FinalizeUpdate) error
	AddXP(ctx context.Context, userID string, xp int) error
	SpendXPOnFreeze(ctx context.Context, userID string, cost, maxFreezes int) error
}

type QuizStore interface {
	GetQuizWithQuestions(ctx context.Context, quizID string) (*models.Quiz, []models.Question, error)
}

type AchievementStore interface {
	AwardOnce(ctx context.Context, userID, achievementType string, xpReward int, earnedAt time.Time) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]models.Achievement, error)
}
