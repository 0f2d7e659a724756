// internal/engine/payload.go
package engine

import "github.com/andresuchdata/stockpilot/internal/domain"

// Transfers always originate from the central warehouse in this demo.
const warehouseLabel = "Warehouse"

// BuildPayload computes the concrete parameters proposed for an action.
// It is a pure function of the item and the requested type: no randomness,
// and the type is caller-selected, independent of the recommender.
func BuildPayload(item domain.InventoryItem, actionType domain.ActionType) domain.ActionPayload {
	switch actionType {
	case domain.ActionReplenishmentAdjust:
		currentAmount := roundHalfUp(item.SalesVelocity * float64(item.LeadTimeDays))
		direction := domain.ReplenishmentDecrease
		percentageChange := -30
		if item.StockoutRisk > 50 {
			direction = domain.ReplenishmentIncrease
			percentageChange = 50
		}
		proposedAmount := roundHalfUp(float64(currentAmount) * (1 + float64(percentageChange)/100))

		return domain.ActionPayload{
			Kind: domain.ActionReplenishmentAdjust,
			Replenishment: &domain.ReplenishmentPayload{
				Direction:        direction,
				CurrentAmount:    currentAmount,
				ProposedAmount:   proposedAmount,
				PercentageChange: percentageChange,
			},
		}

	case domain.ActionTransfer:
		destination := item.Store
		if destination == "" {
			destination = item.Region
		}
		return domain.ActionPayload{
			Kind: domain.ActionTransfer,
			Transfer: &domain.TransferPayload{
				FromLocation: warehouseLabel,
				ToLocation:   destination,
				Quantity:     roundHalfUp(item.SalesVelocity * 7),
			},
		}

	case domain.ActionMarkdownPromo:
		discountRate := 20
		if item.ExcessInventoryRisk > 70 {
			discountRate = 30
		}
		promoType := domain.PromoPromotion
		if item.ExcessInventoryRisk > 80 {
			promoType = domain.PromoMarkdown
		}
		return domain.ActionPayload{
			Kind: domain.ActionMarkdownPromo,
			MarkdownPromo: &domain.MarkdownPromoPayload{
				DiscountRate: discountRate,
				PromoType:    promoType,
			},
		}
	}

	return domain.ActionPayload{Kind: actionType}
}
