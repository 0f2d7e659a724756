package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/andresuchdata/stockpilot/internal/service"
	"github.com/gin-gonic/gin"
)

type ActionHandler struct {
	service *service.ActionService
}

func NewActionHandler(service *service.ActionService) *ActionHandler {
	return &ActionHandler{service: service}
}

type confirmRequest struct {
	Item       domain.InventoryItem `json:"item" binding:"required"`
	ActionType string               `json:"action_type" binding:"required"`
	Notes      string               `json:"notes"`
}

func (h *ActionHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actionType, ok := domain.ParseActionType(req.ActionType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action type: " + req.ActionType})
		return
	}

	entry, err := h.service.Confirm(c.Request.Context(), req.Item, actionType, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm action", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// parseTimeParam accepts RFC 3339 timestamps and plain dates.
func parseTimeParam(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

func (h *ActionHandler) List(c *gin.Context) {
	filter := domain.ActionLogFilter{
		ActionType: strings.TrimSpace(c.Query("action_type")),
		Status:     strings.TrimSpace(c.Query("status")),
		Category:   strings.TrimSpace(c.Query("category")),
		Region:     strings.TrimSpace(c.Query("region")),
	}

	var (
		logs []domain.ActionLog
		err  error
	)

	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from != "" || to != "" {
		start := time.Time{}
		if from != "" {
			if start, err = parseTimeParam(from); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date: " + from})
				return
			}
		}
		end := time.Now().UTC()
		if to != "" {
			if end, err = parseTimeParam(to); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date: " + to})
				return
			}
			// A bare date means the whole day.
			if len(to) == len("2006-01-02") {
				end = end.Add(24*time.Hour - time.Nanosecond)
			}
		}
		logs, err = h.service.ListByDateRange(c.Request.Context(), filter, start, end)
	} else {
		logs, err = h.service.List(c.Request.Context(), filter)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list actions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"actions": logs,
		"total":   len(logs),
	})
}

func (h *ActionHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch action", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ActionHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	status, ok := domain.ParseActionStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status: " + req.Status})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// SimulateOutcome rolls and attaches the outcome. Precondition failures
// come back as client errors so the UI can surface a warning instead of
// treating them as server faults.
func (h *ActionHandler) SimulateOutcome(c *gin.Context) {
	entry, err := h.service.SimulateOutcome(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
		case errors.Is(err, service.ErrNoBeforeSnapshot):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no before snapshot recorded for this action"})
		case errors.Is(err, repository.ErrOutcomeExists):
			c.JSON(http.StatusConflict, gin.H{"error": "outcome already recorded for this action"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to simulate outcome", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

type evaluationRequest struct {
	Result      string `json:"result" binding:"required"`
	Learnings   string `json:"learnings"`
	NextActions string `json:"next_actions"`
}

func (h *ActionHandler) Evaluate(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result := domain.OutcomeLabel(strings.ToLower(strings.TrimSpace(req.Result)))
	switch result {
	case domain.OutcomeImproved, domain.OutcomeNeutral, domain.OutcomeWorsened:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown result: " + req.Result})
		return
	}

	entry, err := h.service.Evaluate(c.Request.Context(), c.Param("id"), result, req.Learnings, req.NextActions)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach evaluation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *ActionHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear actions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
