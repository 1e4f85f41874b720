package models

import "time"

type Option struct {
	ID        string `bson:"id" json:"id"`
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct"`
}

type Question struct {
	ID      string   `bson:"_id,omitempty" json:"id"`
	QuizID  string   `bson:"quiz_id" json:"quiz_id"`
	Content string   `bson:"content" json:"content"`
	Options []Option `bson:"options" json:"options"`
	// CorrectAnswer holds the correct choice text for legacy question
	// documents that predate the per-option is_correct flag.
	CorrectAnswer string `bson:"correct_answer" json:"correct_answer"`
	Explanation   string `bson:"explanation" json:"explanation"`
	Subject       string `bson:"subject" json:"subject"`
	Points        int    `bson:"points" json:"points"`
}

// CorrectOption returns the marked correct choice, falling back to matching
// CorrectAnswer against option text for legacy documents.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	if q.CorrectAnswer != "" {
		for i := range q.Options {
			if q.Options[i].Text == q.CorrectAnswer {
				return &q.Options[i]
			}
		}
	}
	return nil
}

type Quiz struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Subject       string    `bson:"subject" json:"subject"`
	Difficulty    string    `bson:"difficulty" json:"difficulty"`
	TimeLimitSecs int       `bson:"time_limit_seconds" json:"time_limit_seconds"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
