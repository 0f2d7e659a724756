// internal/domain/models.go
package domain

// SKU identifies one product at one location.
type SKU struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Region   string `json:"region"`
	Store    string `json:"store,omitempty"`
}

// InventoryItem is one SKU-location combination under analysis.
// Risk scores and the priority score are always clamped to [0,100];
// turnover is 0 when stock is 0; history series hold exactly 30
// non-negative points.
type InventoryItem struct {
	SKU
	CurrentStock          int                `json:"currentStock"`
	SalesVelocity         float64            `json:"salesVelocity"` // units per day
	LeadTimeDays          int                `json:"leadTimeDays"`
	InventoryTurnoverDays int                `json:"inventoryTurnoverDays"`
	StockoutRisk          int                `json:"stockoutRisk"`        // 0-100
	ExcessInventoryRisk   int                `json:"excessInventoryRisk"` // 0-100
	PriorityScore         int                `json:"priorityScore"`
	DemandForecast        []int              `json:"demandForecast"`
	StockHistory          []int              `json:"stockHistory"`
	SalesHistory          []int              `json:"salesHistory"`
	RecommendedAction     *RecommendedAction `json:"recommendedAction,omitempty"`
	HasActiveAction       bool               `json:"hasActiveAction"`
	ActionEffect          *ActionEffect      `json:"actionEffect,omitempty"`
}

// RecommendedAction is the single suggestion attached to an item when a
// risk threshold is crossed.
type RecommendedAction struct {
	Type        ActionType     `json:"type"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Priority    ActionPriority `json:"priority"`
}

type ActionPriority string

const (
	PriorityHigh   ActionPriority = "high"
	PriorityMedium ActionPriority = "medium"
	PriorityLow    ActionPriority = "low"
)

// ActionEffect is the pre-commit projection shown before an action is
// confirmed. It is never persisted.
type ActionEffect struct {
	ProjectedStockoutRisk int    `json:"projectedStockoutRisk"`
	ProjectedExcessRisk   int    `json:"projectedExcessRisk"`
	ExpectedImpact        string `json:"expectedImpact"`
}

// KPISnapshot freezes the item metrics at a point in time. A before
// snapshot is captured at action confirmation; the after snapshot is
// written once by outcome simulation.
type KPISnapshot struct {
	StockoutRisk          int     `json:"stockoutRisk"`
	ExcessInventoryRisk   int     `json:"excessInventoryRisk"`
	InventoryTurnoverDays int     `json:"inventoryTurnoverDays"`
	SalesVelocity         float64 `json:"salesVelocity"`
	CurrentStock          int     `json:"currentStock"`
}

// RationaleMetrics is the frozen copy of the item metrics that justified
// an action at proposal time.
type RationaleMetrics struct {
	CurrentStock          int     `json:"currentStock"`
	SalesVelocity         float64 `json:"salesVelocity"`
	LeadTimeDays          int     `json:"leadTimeDays"`
	InventoryTurnoverDays int     `json:"inventoryTurnoverDays"`
	StockoutRisk          int     `json:"stockoutRisk"`
	ExcessInventoryRisk   int     `json:"excessInventoryRisk"`
	PriorityScore         int     `json:"priorityScore"`
}

// InventorySummary aggregates item counts for the dashboard header cards.
type InventorySummary struct {
	TotalItems      int `json:"total_items"`
	HighRiskItems   int `json:"high_risk_items"`
	MediumRiskItems int `json:"medium_risk_items"`
	ActiveItems     int `json:"active_items"`
}
