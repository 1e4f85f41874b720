package models

import (
	"math"
	"time"
)

type SubjectProgress struct {
	QuestionsCorrect   int     `bson:"questions_correct" json:"questions_correct"`
	QuestionsAttempted int     `bson:"questions_attempted" json:"questions_attempted"`
	AverageScore       float64 `bson:"average_score" json:"average_score"`
	BestScore          int     `bson:"best_score" json:"best_score"`
	QuizzesCompleted   int     `bson:"quizzes_completed" json:"quizzes_completed"`
	TimeSpentSeconds   int     `bson:"time_spent_seconds" json:"time_spent_seconds"`
}

type QuestionResult struct {
	QuestionID    string `bson:"question_id" json:"question_id"`
	UserAnswer    string `bson:"user_answer" json:"user_answer"`
	CorrectAnswer string `bson:"correct_answer" json:"correct_answer"`
	IsCorrect     bool   `bson:"is_correct" json:"is_correct"`
	Explanation   string `bson:"explanation" json:"explanation"`
}

// QuizAttempt lives inside the user's progress document. An attempt starts
// as a claimed placeholder (Claimed=true, zero score) and is finalized in
// place once grading completes. At most one attempt per quiz id exists for
// a given user.
type QuizAttempt struct {
	QuizID           string           `bson:"quiz_id" json:"quiz_id"`
	Subject          string           `bson:"subject" json:"subject"`
	Score            int              `bson:"score" json:"score"`
	TimeTakenSeconds int              `bson:"time_taken_seconds" json:"time_taken_seconds"`
	QuestionsCorrect int              `bson:"questions_correct" json:"questions_correct"`
	QuestionsTotal   int              `bson:"questions_total" json:"questions_total"`
	CompletedAt      time.Time        `bson:"completed_at" json:"completed_at"`
	Claimed          bool             `bson:"claimed" json:"claimed"`
	Results          []QuestionResult `bson:"results" json:"results"`
}

// UserProgress is the per-user ledger document: XP, level, per-subject
// aggregates, attempt history and the embedded streak state. One document
// per user, keyed by user_id.
type UserProgress struct {
	ID                    string                     `bson:"_id,omitempty" json:"id"`
	UserID                string                     `bson:"user_id" json:"user_id"`
	TotalXP               int                        `bson:"total_xp" json:"total_xp"`
	Level                 int                        `bson:"level" json:"level"`
	TotalQuestionsCorrect int                        `bson:"total_questions_correct" json:"total_questions_correct"`
	TotalQuizzesCompleted int                        `bson:"total_quizzes_completed" json:"total_quizzes_completed"`
	SubjectProgress       map[string]SubjectProgress `bson:"subject_progress" json:"subject_progress"`
	QuizAttempts          []QuizAttempt              `bson:"quiz_attempts" json:"quiz_attempts"`
	Streak                StreakState                `bson:"streak" json:"streak"`
	CreatedAt             time.Time                  `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time                  `bson:"updated_at" json:"updated_at"`
}

// FindAttempt returns the attempt for the given quiz id, or nil.
func (p *UserProgress) FindAttempt(quizID string) *QuizAttempt {
	for i := range p.QuizAttempts {
		if p.QuizAttempts[i].QuizID == quizID {
			return &p.QuizAttempts[i]
		}
	}
	return nil
}

// QuizXP computes the XP earned for one quiz: a base amount that grows with
// the percentage score and the quiz length, scaled by the streak multiplier.
func QuizXP(score, questionsTotal int, multiplier float64) int {
	base := score + 2*questionsTotal
	return int(math.Round(float64(base) * multiplier))
}

// LevelForXP derives the user's level from total XP. Level 1 starts at 0 XP;
// each level costs progressively more (level n begins at 100*(n-1)^2 XP).
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return 1 + int(math.Sqrt(float64(totalXP)/100.0))
}
