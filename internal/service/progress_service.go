package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"progression-service/internal/models"
	"progression-service/internal/repository"
	"progression-service/internal/streak"
)

// FreezeCostXP is the XP price of one purchased streak freeze.
const FreezeCostXP = 500

// QuizResultInput is one graded quiz submission to fold into the ledger.
type QuizResultInput struct {
	QuizID           string
	Subject          string
	QuestionsCorrect int
	QuestionsTotal   int
	TimeTakenSeconds int
	Results          []models.QuestionResult
	Now              time.Time
}

// QuizResultOutcome reports what the ledger transition produced.
type QuizResultOutcome struct {
	Score         int                      `json:"score"`
	XPEarned      int                      `json:"xp_earned"`
	NewLevel      int                      `json:"new_level"`
	CurrentStreak int                      `json:"current_streak"`
	TotalXP       int                      `json:"total_xp"`
	Multiplier    float64                  `json:"multiplier"`
	NewMilestones []models.StreakMilestone `json:"new_milestones"`
}

// ProgressService maintains the per-user ledger: XP, level, subject
// aggregates, attempt history and streak state.
type ProgressService struct {
	Store   ProgressStore
	Tracker *streak.Tracker
}

func NewProgressService(store ProgressStore, tracker *streak.Tracker) *ProgressService {
	if tracker == nil {
		tracker = streak.NewTracker(nil)
	}
	return &ProgressService{Store: store, Tracker: tracker}
}

// ApplyQuizResult finalizes the claimed attempt for input.QuizID and applies
// the full ledger delta (XP, level, subject aggregates, streak) as one
// atomic storage write. The attempt must have been claimed beforehand.
func (s *ProgressService) ApplyQuizResult(ctx context.Context, userID string, input QuizResultInput) (*QuizResultOutcome, error) {
	if input.QuestionsTotal <= 0 {
		return nil, models.ErrNoQuestions
	}

	progress, err := s.Store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	score := int(math.Round(100 * float64(input.QuestionsCorrect) / float64(input.QuestionsTotal)))

	streakState := progress.Streak
	streakRes := s.Tracker.Update(&streakState, input.Now)

	xpEarned := models.QuizXP(score, input.QuestionsTotal, streakRes.Multiplier)
	xpDelta := xpEarned
	for _, m := range streakRes.NewMilestones {
		xpDelta += m.RewardXP
	}

	newTotal := progress.TotalXP + xpDelta
	level := models.LevelForXP(newTotal)

	sp := progress.SubjectProgress[input.Subject]
	sp.AverageScore = runningMean(sp.AverageScore, sp.QuizzesCompleted, score)
	sp.QuizzesCompleted++
	sp.QuestionsCorrect += input.QuestionsCorrect
	sp.QuestionsAttempted += input.QuestionsTotal
	sp.TimeSpentSeconds += input.TimeTakenSeconds
	if score > sp.BestScore {
		sp.BestScore = score
	}

	attempt := models.QuizAttempt{
		QuizID:           input.QuizID,
		Subject:          input.Subject,
		Score:            score,
		TimeTakenSeconds: input.TimeTakenSeconds,
		QuestionsCorrect: input.QuestionsCorrect,
		QuestionsTotal:   input.QuestionsTotal,
		CompletedAt:      input.Now,
		Results:          input.Results,
	}

	err = s.Store.FinalizeAttempt(ctx, userID, repository.FinalizeUpdate{
		Attempt:          attempt,
		Streak:           streakState,
		SubjectProgress:  sp,
		Level:            level,
		XPDelta:          xpDelta,
		QuestionsCorrect: input.QuestionsCorrect,
	})
	if err != nil {
		return nil, fmt.Errorf("apply quiz result: %w", err)
	}

	return &QuizResultOutcome{
		Score:         score,
		XPEarned:      xpEarned,
		NewLevel:      level,
		CurrentStreak: streakState.CurrentStreak,
		TotalXP:       newTotal,
		Multiplier:    streakRes.Multiplier,
		NewMilestones: streakRes.NewMilestones,
	}, nil
}

// Summary returns the user's ledger for the progress endpoint.
func (s *ProgressService) Summary(ctx context.Context, userID string) (*models.UserProgress, error) {
	return s.Store.FindByUser(ctx, userID)
}

// Streak returns the user's streak state, creating the progress document on
// first access.
func (s *ProgressService) Streak(ctx context.Context, userID string) (*models.StreakState, error) {
	progress, err := s.Store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &progress.Streak, nil
}

// BuyFreeze spends XP on one streak freeze.
func (s *ProgressService) BuyFreeze(ctx context.Context, userID string) error {
	if _, err := s.Store.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.Store.SpendXPOnFreeze(ctx, userID, FreezeCostXP, streak.DefaultConfig().MaxFreezes)
}

func runningMean(mean float64, n, sample int) float64 {
	return (mean*float64(n) + float64(sample)) / float64(n+1)
}
