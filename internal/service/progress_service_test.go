package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"progression-service/internal/models"
	"progression-service/internal/streak"
)

func applyResult(t *testing.T, svc *ProgressService, store *memProgressStore, userID, quizID string, correct, total, timeTaken int, now time.Time) *QuizResultOutcome {
	t.Helper()
	if _, err := store.GetOrCreate(context.Background(), userID); err != nil {
		t.Fatalf("get or create: %v", err)
	}
	err := store.ClaimAttempt(context.Background(), userID, models.QuizAttempt{QuizID: quizID, Subject: "math"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	outcome, err := svc.ApplyQuizResult(context.Background(), userID, QuizResultInput{
		QuizID:           quizID,
		Subject:          "math",
		QuestionsCorrect: correct,
		QuestionsTotal:   total,
		TimeTakenSeconds: timeTaken,
		Now:              now,
	})
	if err != nil {
		t.Fatalf("apply quiz result: %v", err)
	}
	return outcome
}

func TestSubjectAggregatesAcrossQuizzes(t *testing.T) {
	store := newMemProgressStore()
	svc := NewProgressService(store, streak.NewTracker(nil))
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	applyResult(t, svc, store, "u1", "quiz-a", 6, 10, 120, now) // 60%
	applyResult(t, svc, store, "u1", "quiz-b", 9, 10, 100, now) // 90%

	p := store.get("u1")
	sp := p.SubjectProgress["math"]
	if sp.QuizzesCompleted != 2 {
		t.Errorf("expected 2 quizzes, got %d", sp.QuizzesCompleted)
	}
	if sp.AverageScore != 75 {
		t.Errorf("expected running mean 75, got %v", sp.AverageScore)
	}
	if sp.BestScore != 90 {
		t.Errorf("expected best 90, got %d", sp.BestScore)
	}
	if sp.QuestionsCorrect != 15 || sp.QuestionsAttempted != 20 {
		t.Errorf("unexpected question counters: %+v", sp)
	}
	if sp.TimeSpentSeconds != 220 {
		t.Errorf("expected 220s spent, got %d", sp.TimeSpentSeconds)
	}
	if p.TotalQuizzesCompleted != 2 || p.TotalQuestionsCorrect != 15 {
		t.Errorf("unexpected ledger totals: %+v", p)
	}
}

func TestApplyQuizResultWithoutClaimFails(t *testing.T) {
	store := newMemProgressStore()
	svc := NewProgressService(store, streak.NewTracker(nil))
	if _, err := store.GetOrCreate(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.ApplyQuizResult(context.Background(), "u1", QuizResultInput{
		QuizID:           "quiz-a",
		Subject:          "math",
		QuestionsCorrect: 5,
		QuestionsTotal:   10,
		Now:              time.Now(),
	})
	if !errors.Is(err, models.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestMilestoneXPIsCreditedWithQuizXP(t *testing.T) {
	store := newMemProgressStore()
	svc := NewProgressService(store, streak.NewTracker(nil))
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	yesterday := now.AddDate(0, 0, -1)
	store.seed(&models.UserProgress{
		UserID:          "u1",
		Level:           1,
		SubjectProgress: map[string]models.SubjectProgress{},
		Streak: models.StreakState{
			CurrentStreak:     6,
			LongestStreak:     6,
			LastActivityDate:  &yesterday,
			CurrentMultiplier: 1.1,
			Milestones:        []models.StreakMilestone{{Days: 3}},
		},
	})

	outcome := applyResult(t, svc, store, "u1", "quiz-a", 10, 10, 60, now)

	if outcome.CurrentStreak != 7 {
		t.Fatalf("expected streak 7, got %d", outcome.CurrentStreak)
	}
	// Quiz XP: (100 + 20) * 1.25 = 150. Plus the 7-day milestone's 100.
	if outcome.XPEarned != 150 {
		t.Errorf("expected 150 quiz xp, got %d", outcome.XPEarned)
	}
	if outcome.TotalXP != 250 {
		t.Errorf("expected total 250 including milestone xp, got %d", outcome.TotalXP)
	}
	p := store.get("u1")
	if p.TotalXP != 250 {
		t.Errorf("stored total %d, want 250", p.TotalXP)
	}
}

func TestBuyFreeze(t *testing.T) {
	store := newMemProgressStore()
	svc := NewProgressService(store, streak.NewTracker(nil))

	// Broke user cannot buy.
	if err := svc.BuyFreeze(context.Background(), "u1"); !errors.Is(err, models.ErrFreezeUnavailable) {
		t.Fatalf("expected ErrFreezeUnavailable, got %v", err)
	}

	p := store.get("u1")
	p.TotalXP = 2000
	store.seed(p)

	if err := svc.BuyFreeze(context.Background(), "u1"); err != nil {
		t.Fatalf("buy freeze: %v", err)
	}
	after := store.get("u1")
	if after.TotalXP != 1500 {
		t.Errorf("expected 1500 xp after purchase, got %d", after.TotalXP)
	}
	if after.Streak.FreezesAvailable != 1 {
		t.Errorf("expected 1 freeze, got %d", after.Streak.FreezesAvailable)
	}

	// Cap at three.
	after.Streak.FreezesAvailable = 3
	store.seed(after)
	if err := svc.BuyFreeze(context.Background(), "u1"); !errors.Is(err, models.ErrFreezeUnavailable) {
		t.Fatalf("expected cap rejection, got %v", err)
	}
}
