package models

import "errors"

var (
	// ErrDuplicateSubmission is returned when a user already holds an attempt
	// (claimed or finalized) for the quiz.
	ErrDuplicateSubmission = errors.New("quiz already completed")
	// ErrQuizNotFound indicates the quiz does not exist or is not published.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound indicates no attempt exists for the user and quiz.
	ErrAttemptNotFound = errors.New("quiz attempt not found")
	// ErrProgressNotFound indicates the user has no progress document yet.
	ErrProgressNotFound = errors.New("user progress not found")
	// ErrNoQuestions indicates a quiz with an empty question set was submitted.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrAttemptPending marks an attempt that was claimed but never finalized
	// (crash or storage failure during scoring); it is surfaced as "in review".
	ErrAttemptPending = errors.New("quiz attempt is still being processed")
	// ErrFreezeUnavailable is returned when a freeze purchase cannot be
	// satisfied (not enough XP, or the freeze cap is already held).
	ErrFreezeUnavailable = errors.New("streak freeze unavailable")
)
