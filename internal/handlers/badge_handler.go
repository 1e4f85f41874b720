package handlers

import (
	"context"
	"net/http"

	"progression-service/internal/service"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	Service *service.BadgeService
}

func NewBadgeHandler(s *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{Service: s}
}

// GetBadges returns the caller's earned/locked badge collection with stats.
func (h *BadgeHandler) GetBadges(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	collection, err := h.Service.Collection(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, collection)
}

// GetCatalog returns the static badge catalog.
func (h *BadgeHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Engine.Catalog())
}
