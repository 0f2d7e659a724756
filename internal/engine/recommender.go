// internal/engine/recommender.go
package engine

import "github.com/andresuchdata/stockpilot/internal/domain"

// Recommend picks at most one mitigation from the risk thresholds.
// Precedence matters: a high stockout risk wins over a high excess risk,
// and the transfer band is the open interval (40,60), so a stockout risk
// of exactly 60 yields no recommendation.
func Recommend(stockoutRisk, excessRisk int) *domain.RecommendedAction {
	if stockoutRisk > 60 {
		priority := domain.PriorityMedium
		if stockoutRisk > 80 {
			priority = domain.PriorityHigh
		}
		return &domain.RecommendedAction{
			Type:        domain.ActionReplenishmentAdjust,
			Label:       "Increase order",
			Description: "Stockout risk is high; raising the order quantity is recommended",
			Priority:    priority,
		}
	}

	if excessRisk > 60 {
		priority := domain.PriorityMedium
		if excessRisk > 80 {
			priority = domain.PriorityHigh
		}
		return &domain.RecommendedAction{
			Type:        domain.ActionMarkdownPromo,
			Label:       "Markdown / promo",
			Description: "Inventory turnover is slow; consider a markdown or promotion",
			Priority:    priority,
		}
	}

	if stockoutRisk > 40 && stockoutRisk < 60 {
		return &domain.RecommendedAction{
			Type:        domain.ActionTransfer,
			Label:       "Stock transfer",
			Description: "Transferring stock from another location can avert the stockout",
			Priority:    domain.PriorityMedium,
		}
	}

	return nil
}
