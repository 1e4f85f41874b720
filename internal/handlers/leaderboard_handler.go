package handlers

import (
	"context"
	"net/http"
	"strconv"

	"progression-service/internal/leaderboard"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	Board *leaderboard.Board
}

func NewLeaderboardHandler(board *leaderboard.Board) *LeaderboardHandler {
	return &LeaderboardHandler{Board: board}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.Board.Top(context.Background(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"total":       len(entries),
	})
}
