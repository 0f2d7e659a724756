// internal/service/sample_data.go
package service

import (
	"context"
	"time"

	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/rs/zerolog/log"
)

// SeedSampleLogs writes three example entries so a fresh install has
// something to show on the actions page. No-op when the store already
// holds data.
func (s *ActionService) SeedSampleLogs(ctx context.Context) error {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	day := 24 * time.Hour

	for _, entry := range sampleLogs(now, day) {
		if err := s.repo.Save(ctx, entry); err != nil {
			return err
		}
	}
	s.invalidateSummaries(ctx)

	log.Info().Int("count", 3).Msg("seeded sample action logs")
	return nil
}

func sampleLogs(now time.Time, day time.Duration) []domain.ActionLog {
	return []domain.ActionLog{
		{
			ActionID:   "sample-001",
			Timestamp:  now.Add(-5 * day),
			SKUID:      "SKU-0001",
			SKUName:    "apparel_item1",
			Category:   "apparel",
			Region:     "Tokyo",
			Store:      "Main Store",
			ActionType: domain.ActionReplenishmentAdjust,
			ActionPayload: domain.ActionPayload{
				Kind: domain.ActionReplenishmentAdjust,
				Replenishment: &domain.ReplenishmentPayload{
					Direction:        domain.ReplenishmentIncrease,
					CurrentAmount:    100,
					ProposedAmount:   150,
					PercentageChange: 50,
				},
			},
			RationaleMetrics: domain.RationaleMetrics{
				CurrentStock:          45,
				SalesVelocity:         8.5,
				LeadTimeDays:          7,
				InventoryTurnoverDays: 5,
				StockoutRisk:          85,
				ExcessInventoryRisk:   10,
				PriorityScore:         82,
			},
			Status: domain.StatusExecuted,
			Owner:  "inventory-ops-a",
			Notes:  "Approved a larger order due to high stockout risk",
			Evaluation: &domain.Evaluation{
				Result: domain.OutcomeImproved,
				MockMetrics: domain.EvaluationMetrics{
					StockoutReduction: intPtr(65),
					StockChange:       intPtr(105),
					SalesChange:       intPtr(12),
				},
				Learnings:   "The larger order avoided a stockout and sales rose 12%.",
				NextActions: "Watch other SKUs with similar sales velocity more closely",
				EvaluatedAt: now.Add(-2 * day),
			},
		},
		{
			ActionID:   "sample-002",
			Timestamp:  now.Add(-3 * day),
			SKUID:      "SKU-0015",
			SKUName:    "food_item15",
			Category:   "food",
			Region:     "Osaka",
			ActionType: domain.ActionMarkdownPromo,
			ActionPayload: domain.ActionPayload{
				Kind: domain.ActionMarkdownPromo,
				MarkdownPromo: &domain.MarkdownPromoPayload{
					DiscountRate: 20,
					PromoType:    domain.PromoMarkdown,
				},
			},
			RationaleMetrics: domain.RationaleMetrics{
				CurrentStock:          450,
				SalesVelocity:         2.1,
				LeadTimeDays:          5,
				InventoryTurnoverDays: 214,
				StockoutRisk:          5,
				ExcessInventoryRisk:   88,
				PriorityScore:         71,
			},
			Status: domain.StatusExecuted,
			Owner:  "inventory-ops-b",
			Notes:  "Marked down due to slow turnover and approaching expiry",
			Evaluation: &domain.Evaluation{
				Result: domain.OutcomeImproved,
				MockMetrics: domain.EvaluationMetrics{
					StockChange:  intPtr(-180),
					SalesChange:  intPtr(45),
					MarginChange: intPtr(-8),
				},
				Learnings:   "The markdown cleared stock but cut into margin. Deciding earlier matters.",
				NextActions: "Tighten expiry tracking and act sooner",
				EvaluatedAt: now.Add(-1 * day),
			},
		},
		{
			ActionID:   "sample-003",
			Timestamp:  now.Add(-1 * day),
			SKUID:      "SKU-0023",
			SKUName:    "electronics_item23",
			Category:   "electronics",
			Region:     "Nagoya",
			Store:      "Station Store",
			ActionType: domain.ActionTransfer,
			ActionPayload: domain.ActionPayload{
				Kind: domain.ActionTransfer,
				Transfer: &domain.TransferPayload{
					FromLocation: "Warehouse",
					ToLocation:   "Station Store",
					Quantity:     30,
				},
			},
			RationaleMetrics: domain.RationaleMetrics{
				CurrentStock:          12,
				SalesVelocity:         3.2,
				LeadTimeDays:          10,
				InventoryTurnoverDays: 4,
				StockoutRisk:          72,
				ExcessInventoryRisk:   15,
				PriorityScore:         68,
			},
			Status: domain.StatusApproved,
			Owner:  "inventory-ops-c",
			Notes:  "Warehouse has stock on hand, covering with a transfer",
		},
	}
}

func intPtr(v int) *int { return &v }
