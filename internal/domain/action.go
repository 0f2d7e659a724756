// internal/domain/action.go
package domain

import (
	"strings"
	"time"
)

// ActionType is the kind of mitigation applied to a SKU.
type ActionType string

const (
	ActionReplenishmentAdjust ActionType = "replenishment_adjust"
	ActionTransfer            ActionType = "transfer"
	ActionMarkdownPromo       ActionType = "markdown_promo"
)

// ParseActionType returns the action type for a given string (case-insensitive).
func ParseActionType(s string) (ActionType, bool) {
	switch ActionType(strings.ToLower(strings.TrimSpace(s))) {
	case ActionReplenishmentAdjust:
		return ActionReplenishmentAdjust, true
	case ActionTransfer:
		return ActionTransfer, true
	case ActionMarkdownPromo:
		return ActionMarkdownPromo, true
	}
	return "", false
}

type ReplenishmentDirection string

const (
	ReplenishmentIncrease ReplenishmentDirection = "increase"
	ReplenishmentDecrease ReplenishmentDirection = "decrease"
)

type PromoType string

const (
	PromoMarkdown  PromoType = "markdown"
	PromoPromotion PromoType = "promotion"
)

// ActionPayload is a tagged union keyed by Kind. Exactly one variant is
// populated; consumers must dispatch on Kind, never on field presence.
type ActionPayload struct {
	Kind          ActionType            `json:"kind"`
	Replenishment *ReplenishmentPayload `json:"replenishment,omitempty"`
	Transfer      *TransferPayload      `json:"transfer,omitempty"`
	MarkdownPromo *MarkdownPromoPayload `json:"markdown_promo,omitempty"`
}

type ReplenishmentPayload struct {
	Direction        ReplenishmentDirection `json:"direction"`
	CurrentAmount    int                    `json:"currentAmount"`
	ProposedAmount   int                    `json:"proposedAmount"`
	PercentageChange int                    `json:"percentageChange"` // signed
}

type TransferPayload struct {
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
	Quantity     int    `json:"quantity"`
}

type MarkdownPromoPayload struct {
	DiscountRate int       `json:"discountRate"` // percent
	PromoType    PromoType `json:"promoType"`
}

// ActionStatus is the lifecycle state of a logged action.
type ActionStatus string

const (
	StatusProposed  ActionStatus = "proposed"
	StatusApproved  ActionStatus = "approved"
	StatusExecuted  ActionStatus = "executed"
	StatusCancelled ActionStatus = "cancelled"
	StatusEvaluated ActionStatus = "evaluated"
)

// ParseActionStatus returns the status for a given string (case-insensitive).
func ParseActionStatus(s string) (ActionStatus, bool) {
	switch ActionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusProposed:
		return StatusProposed, true
	case StatusApproved:
		return StatusApproved, true
	case StatusExecuted:
		return StatusExecuted, true
	case StatusCancelled:
		return StatusCancelled, true
	case StatusEvaluated:
		return StatusEvaluated, true
	}
	return "", false
}

// IsActive reports whether the status still blocks new actions on the SKU.
func (s ActionStatus) IsActive() bool {
	return s == StatusProposed || s == StatusApproved
}

// OutcomeLabel is the categorical result of simulating an action's effect.
type OutcomeLabel string

const (
	OutcomeImproved OutcomeLabel = "improved"
	OutcomeNeutral  OutcomeLabel = "neutral"
	OutcomeWorsened OutcomeLabel = "worsened"
)

// EvaluationMetrics holds the mock quantitative deltas attached to a
// manual evaluation. Fields are pointers so absent metrics stay absent.
type EvaluationMetrics struct {
	StockChange       *int `json:"stockChange,omitempty"`
	StockoutReduction *int `json:"stockoutReduction,omitempty"`
	SalesChange       *int `json:"salesChange,omitempty"`
	MarginChange      *int `json:"marginChange,omitempty"`
}

// Evaluation is a manually authored qualitative review of an executed
// action, separate from outcome simulation.
type Evaluation struct {
	Result      OutcomeLabel      `json:"result"`
	MockMetrics EvaluationMetrics `json:"mockMetrics"`
	Learnings   string            `json:"learnings"`
	NextActions string            `json:"nextActions"`
	EvaluatedAt time.Time         `json:"evaluatedAt"`
}

// ActionLog is the durable unit of record for one confirmed action.
type ActionLog struct {
	ActionID          string           `json:"action_id" db:"action_id"`
	Timestamp         time.Time        `json:"timestamp" db:"timestamp"`
	SKUID             string           `json:"sku_id" db:"sku_id"`
	SKUName           string           `json:"sku_name" db:"sku_name"`
	Category          string           `json:"category" db:"category"`
	Region            string           `json:"region" db:"region"`
	Store             string           `json:"store,omitempty" db:"store"`
	ActionType        ActionType       `json:"action_type" db:"action_type"`
	ActionPayload     ActionPayload    `json:"action_payload"`
	RationaleMetrics  RationaleMetrics `json:"rationale_metrics"`
	Status            ActionStatus     `json:"status" db:"status"`
	Owner             string           `json:"owner" db:"owner"`
	Notes             string           `json:"notes,omitempty" db:"notes"`
	Evaluation        *Evaluation      `json:"evaluation,omitempty"`
	KPISnapshotBefore *KPISnapshot     `json:"kpi_snapshot_before,omitempty"`
	KPISnapshotAfter  *KPISnapshot     `json:"kpi_snapshot_after,omitempty"`
	OutcomeLabel      OutcomeLabel     `json:"outcome_label,omitempty"`
	AutoComment       string           `json:"auto_comment,omitempty"`
}

// ActionLogFilter narrows log listings. Empty fields match everything.
type ActionLogFilter struct {
	ActionType string `json:"action_type"`
	Status     string `json:"status"`
	Category   string `json:"category"`
	Region     string `json:"region"`
}
