package handlers

import (
	"context"
	"errors"
	"net/http"

	"progression-service/internal/models"
	"progression-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Submissions *service.SubmissionService
}

func NewQuizHandler(submissions *service.SubmissionService) *QuizHandler {
	return &QuizHandler{Submissions: submissions}
}

// SubmitQuiz scores a quiz submission. A repeat submission for the same quiz
// is rejected; a finalize failure leaves the attempt claimed and the client
// is told to poll the review endpoint instead of resubmitting.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	quizID := c.Param("id")
	userID := c.GetHeader("X-User-ID")

	var req struct {
		Answers   map[string]string `json:"answers" binding:"required"`
		TimeTaken int               `json:"time_taken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid submission format",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Submissions.Submit(context.Background(), userID, quizID, req.Answers, req.TimeTaken)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, models.ErrDuplicateSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"message": "already completed"})
	case errors.Is(err, models.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
	case errors.Is(err, models.ErrNoQuestions):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Quiz has no questions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to score submission",
			"hint":  "Do not resubmit; poll the review endpoint for this quiz",
		})
	}
}

// ReviewQuiz returns the stored results of the caller's finalized attempt.
func (h *QuizHandler) ReviewQuiz(c *gin.Context) {
	quizID := c.Param("id")
	userID := c.GetHeader("X-User-ID")

	attempt, err := h.Submissions.Review(context.Background(), userID, quizID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, attempt)
	case errors.Is(err, models.ErrAttemptPending):
		c.JSON(http.StatusAccepted, gin.H{"status": "in review"})
	case errors.Is(err, models.ErrAttemptNotFound), errors.Is(err, models.ErrProgressNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No attempt found for this quiz"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// RecordBattle records the outcome of a quiz battle for badge purposes.
func (h *QuizHandler) RecordBattle(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")

	var req struct {
		Won bool `json:"won"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	awarded, err := h.Submissions.RecordBattle(context.Background(), userID, req.Won)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_badges": awarded})
}
