package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service      *service.InventoryService
	defaultCount int
}

func NewInventoryHandler(service *service.InventoryService, defaultCount int) *InventoryHandler {
	if defaultCount <= 0 {
		defaultCount = 30
	}
	return &InventoryHandler{service: service, defaultCount: defaultCount}
}

func (h *InventoryHandler) parseCount(c *gin.Context) int {
	count := h.defaultCount
	if v, err := strconv.Atoi(c.DefaultQuery("count", "")); err == nil && v > 0 {
		count = v
	}
	return count
}

func (h *InventoryHandler) GetItems(c *gin.Context) {
	count := h.parseCount(c)
	items, err := h.service.GenerateItems(c.Request.Context(), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	count := h.parseCount(c)
	summary, err := h.service.Summary(c.Request.Context(), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

type previewRequest struct {
	Item       domain.InventoryItem `json:"item" binding:"required"`
	ActionType string               `json:"action_type" binding:"required"`
}

// PreviewAction builds the payload and projected effect for a candidate
// action. Items are session-scoped, so the client sends its item snapshot
// and the path id just names the SKU being previewed.
func (h *InventoryHandler) PreviewAction(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if id := c.Param("id"); id != req.Item.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id does not match path"})
		return
	}

	actionType, ok := domain.ParseActionType(req.ActionType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action type: " + req.ActionType})
		return
	}

	payload, effect, hasActive, err := h.service.PreviewAction(c.Request.Context(), req.Item, actionType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to preview action", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"action_payload":    payload,
		"action_effect":     effect,
		"has_active_action": hasActive,
	})
}
