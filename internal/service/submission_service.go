package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"progression-service/internal/badges"
	"progression-service/internal/leaderboard"
	"progression-service/internal/models"
)

// SubmitResult is the payload returned for one scored submission.
type SubmitResult struct {
	Score            int                      `json:"score"`
	QuestionsCorrect int                      `json:"questions_correct"`
	QuestionsTotal   int                      `json:"questions_total"`
	TimeTakenSeconds int                      `json:"time_taken_seconds"`
	Results          []models.QuestionResult  `json:"results"`
	XPEarned         int                      `json:"xp_earned"`
	NewLevel         int                      `json:"new_level"`
	CurrentStreak    int                      `json:"current_streak"`
	TotalXP          int                      `json:"total_xp"`
	Multiplier       float64                  `json:"multiplier"`
	NewMilestones    []models.StreakMilestone `json:"new_milestones"`
	NewBadges        []models.Achievement     `json:"new_badges"`
}

// EventSink receives fire-and-forget domain events. The amqp publisher
// implements it; a nil sink disables publishing.
type EventSink interface {
	Publish(eventType string, payload interface{}) error
}

// SubmissionService orchestrates one quiz submission: claim, grade,
// finalize, badges. The attempt lifecycle per (user, quiz) is
// NotStarted -> Claimed -> Finalized, and Finalized is terminal.
type SubmissionService struct {
	Quizzes  QuizStore
	Progress ProgressStore
	Ledger   *ProgressService
	Badges   *BadgeService
	Board    *leaderboard.Board
	Events   EventSink

	// now is swappable in tests.
	now func() time.Time
}

func NewSubmissionService(quizzes QuizStore, progress ProgressStore, ledger *ProgressService, badgeSvc *BadgeService, board *leaderboard.Board, events EventSink) *SubmissionService {
	return &SubmissionService{
		Quizzes:  quizzes,
		Progress: progress,
		Ledger:   ledger,
		Badges:   badgeSvc,
		Board:    board,
		Events:   events,
		now:      time.Now,
	}
}

// Submit scores one quiz submission exactly once per (user, quiz).
//
// The claim step is a single conditional write; if it reports the slot as
// taken the submission fails with ErrDuplicateSubmission and has no side
// effects. Any failure after a successful claim leaves the attempt in the
// claimed state: it is not silently released, and the review endpoint
// surfaces it as "in review" instead of re-scoring.
func (s *SubmissionService) Submit(ctx context.Context, userID, quizID string, answers map[string]string, timeTaken int) (*SubmitResult, error) {
	quiz, questions, err := s.Quizzes.GetQuizWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.ErrNoQuestions
	}

	if _, err := s.Progress.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	err = s.Progress.ClaimAttempt(ctx, userID, models.QuizAttempt{
		QuizID:  quizID,
		Subject: quiz.Subject,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	results, correct := grade(questions, answers)

	outcome, err := s.Ledger.ApplyQuizResult(ctx, userID, QuizResultInput{
		QuizID:           quizID,
		Subject:          quiz.Subject,
		QuestionsCorrect: correct,
		QuestionsTotal:   len(questions),
		TimeTakenSeconds: timeTaken,
		Results:          results,
		Now:              now,
	})
	if err != nil {
		// Claim stays in place; review reports the attempt as in review.
		log.Printf("finalize failed for user %s quiz %s, attempt left claimed: %v", userID, quizID, err)
		return nil, fmt.Errorf("finalize submission: %w", err)
	}

	result := &SubmitResult{
		Score:            outcome.Score,
		QuestionsCorrect: correct,
		QuestionsTotal:   len(questions),
		TimeTakenSeconds: timeTaken,
		Results:          results,
		XPEarned:         outcome.XPEarned,
		NewLevel:         outcome.NewLevel,
		CurrentStreak:    outcome.CurrentStreak,
		TotalXP:          outcome.TotalXP,
		Multiplier:       outcome.Multiplier,
		NewMilestones:    outcome.NewMilestones,
	}

	bctx := badges.Context{
		QuizCompleted: true,
		Score:         outcome.Score,
		TimeTaken:     timeTaken,
		Subject:       quiz.Subject,
		Now:           now,
	}
	if snapshot, err := s.Progress.FindByUser(ctx, userID); err != nil {
		log.Printf("badge evaluation skipped for user %s: %v", userID, err)
	} else {
		result.NewBadges = append(result.NewBadges, s.Badges.EvaluateAndAward(ctx, userID, snapshot, bctx)...)
	}
	result.NewBadges = append(result.NewBadges, s.Badges.AwardMilestoneBadges(ctx, userID, outcome.NewMilestones, bctx)...)

	if s.Board != nil {
		if err := s.Board.Record(ctx, userID, outcome.TotalXP); err != nil {
			log.Printf("leaderboard update failed for user %s: %v", userID, err)
		}
	}
	s.publish("quiz.completed", map[string]interface{}{
		"user_id": userID,
		"quiz_id": quizID,
		"score":   outcome.Score,
	})
	for _, badge := range result.NewBadges {
		s.publish("badge.awarded", map[string]interface{}{
			"user_id": userID,
			"badge":   badge.AchievementType,
		})
	}
	for _, m := range outcome.NewMilestones {
		s.publish("streak.milestone", map[string]interface{}{
			"user_id": userID,
			"days":    m.Days,
		})
	}

	return result, nil
}

// Review returns the stored results of a finalized attempt. A claimed but
// unfinalized attempt (crash during scoring) reports ErrAttemptPending so
// clients poll instead of resubmitting.
func (s *SubmissionService) Review(ctx context.Context, userID, quizID string) (*models.QuizAttempt, error) {
	progress, err := s.Progress.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	attempt := progress.FindAttempt(quizID)
	if attempt == nil {
		return nil, models.ErrAttemptNotFound
	}
	if attempt.Claimed {
		return nil, models.ErrAttemptPending
	}
	return attempt, nil
}

// RecordBattle awards battle badges for an externally decided quiz battle.
func (s *SubmissionService) RecordBattle(ctx context.Context, userID string, won bool) ([]models.Achievement, error) {
	snapshot, err := s.Progress.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	awarded := s.Badges.EvaluateAndAward(ctx, userID, snapshot, badges.Context{
		IsBattle: true,
		Won:      won,
		Now:      s.now(),
	})
	return awarded, nil
}

func (s *SubmissionService) publish(eventType string, payload interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, payload); err != nil {
		log.Printf("event %s not published: %v", eventType, err)
	}
}

// grade resolves each submitted answer against the question's correct
// choice. Answers match by choice id or choice text, since clients send
// either. Missing answers count as incorrect.
func grade(questions []models.Question, answers map[string]string) ([]models.QuestionResult, int) {
	results := make([]models.QuestionResult, 0, len(questions))
	correct := 0
	for i := range questions {
		q := &questions[i]
		userAnswer := answers[q.ID]
		correctOpt := q.CorrectOption()

		qr := models.QuestionResult{
			QuestionID:  q.ID,
			UserAnswer:  userAnswer,
			Explanation: q.Explanation,
		}
		if correctOpt != nil {
			qr.CorrectAnswer = correctOpt.Text
			qr.IsCorrect = answerMatches(userAnswer, correctOpt)
		}
		if qr.IsCorrect {
			correct++
		}
		results = append(results, qr)
	}
	return results, correct
}

func answerMatches(answer string, opt *models.Option) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	return answer == opt.ID || strings.EqualFold(answer, opt.Text)
}
