// internal/engine/comment.go
package engine

import (
	"strings"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

// GenerateComment synthesizes the evaluation comment for a simulated
// outcome. Fully determined by the before/after deltas: the same
// snapshots always produce the same text.
func GenerateComment(actionType domain.ActionType, before, after domain.KPISnapshot) string {
	stockoutDiff := before.StockoutRisk - after.StockoutRisk
	excessDiff := before.ExcessInventoryRisk - after.ExcessInventoryRisk
	turnoverDiff := before.InventoryTurnoverDays - after.InventoryTurnoverDays

	var comments []string

	switch actionType {
	case domain.ActionReplenishmentAdjust:
		if stockoutDiff > 30 {
			comments = append(comments, "Stockout risk was at a high level but dropped sharply after the order increase.")
		} else if stockoutDiff > 10 {
			comments = append(comments, "Stockout risk is trending down after the order adjustment.")
		} else {
			comments = append(comments, "The order was adjusted but the drop in stockout risk was limited.")
		}

		if turnoverDiff < -10 {
			comments = append(comments, "Inventory turnover days increased; watch for excess inventory risk.")
		} else {
			comments = append(comments, "Next, look at options for shortening the lead time.")
		}

	case domain.ActionTransfer:
		if stockoutDiff > 20 {
			comments = append(comments, "The transfer corrected the imbalance between locations and stockout risk fell.")
		} else {
			comments = append(comments, "The transfer went through, but stockout signals at high-demand stores still need monitoring.")
		}

		comments = append(comments, "Check the impact on the source location as well.")

	case domain.ActionMarkdownPromo:
		if excessDiff > 30 {
			comments = append(comments, "Excess inventory improved and sales velocity picked up.")
		} else if excessDiff > 10 {
			comments = append(comments, "Stock is trending down after the markdown, but the sales velocity lift fell short of expectations.")
		} else {
			comments = append(comments, "The markdown had limited effect; revisit the discount rate and product placement.")
		}

		if turnoverDiff > 20 {
			comments = append(comments, "Inventory turnover improved substantially; check the impact on gross margin.")
		}
	}

	return strings.Join(comments, " ")
}
