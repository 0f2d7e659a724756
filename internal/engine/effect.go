// internal/engine/effect.go
package engine

import (
	"fmt"
	"math"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

// ProjectEffect computes the pre-commit projection for a candidate action.
// Deterministic and idempotent: same item, type, and payload always yield
// the same effect. The point values in the impact text are fixed per
// branch rather than derived from the payload magnitude; that is a
// documented simplification of the demo, kept as-is.
func ProjectEffect(item domain.InventoryItem, actionType domain.ActionType, payload domain.ActionPayload) domain.ActionEffect {
	projectedStockout := float64(item.StockoutRisk)
	projectedExcess := float64(item.ExcessInventoryRisk)
	expectedImpact := ""

	switch actionType {
	case domain.ActionReplenishmentAdjust:
		if payload.Replenishment != nil && payload.Replenishment.Direction == domain.ReplenishmentIncrease {
			projectedStockout = math.Max(0, float64(item.StockoutRisk)-35)
			projectedExcess = math.Min(100, float64(item.ExcessInventoryRisk)+10)
			expectedImpact = fmt.Sprintf(
				"Raising the order quantity by %d%% should cut stockout risk by about 35pt",
				payload.Replenishment.PercentageChange)
		} else {
			projectedStockout = math.Min(100, float64(item.StockoutRisk)+15)
			projectedExcess = math.Max(0, float64(item.ExcessInventoryRisk)-25)
			expectedImpact = "Reducing the order quantity should cut excess inventory risk by about 25pt"
		}

	case domain.ActionTransfer:
		projectedStockout = math.Max(0, float64(item.StockoutRisk)-30)
		quantity := 0
		if payload.Transfer != nil {
			quantity = payload.Transfer.Quantity
		}
		expectedImpact = fmt.Sprintf(
			"Moving %d units should cut stockout risk by about 30pt", quantity)

	case domain.ActionMarkdownPromo:
		projectedExcess = math.Max(0, float64(item.ExcessInventoryRisk)-40)
		discountRate := 0
		if payload.MarkdownPromo != nil {
			discountRate = payload.MarkdownPromo.DiscountRate
		}
		expectedImpact = fmt.Sprintf(
			"A %d%% markdown should cut excess inventory risk by about 40pt and lift sales velocity",
			discountRate)
	}

	return domain.ActionEffect{
		ProjectedStockoutRisk: roundHalfUp(projectedStockout),
		ProjectedExcessRisk:   roundHalfUp(projectedExcess),
		ExpectedImpact:        expectedImpact,
	}
}
