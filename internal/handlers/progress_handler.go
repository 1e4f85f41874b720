package handlers

import (
	"context"
	"errors"
	"net/http"

	"progression-service/internal/models"
	"progression-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	progress, err := h.Service.Summary(context.Background(), userID)
	if errors.Is(err, models.ErrProgressNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User progress not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *ProgressHandler) GetStreak(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	streakState, err := h.Service.Streak(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streakState)
}

func (h *ProgressHandler) BuyFreeze(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	err := h.Service.BuyFreeze(context.Background(), userID)
	if errors.Is(err, models.ErrFreezeUnavailable) {
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough XP, or freeze limit reached"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Streak freeze added"})
}
