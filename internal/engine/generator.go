// internal/engine/generator.go
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

const historyPoints = 30

var (
	categories = []string{"apparel", "food", "electronics", "household", "cosmetics", "books"}
	regions    = []string{"Tokyo", "Osaka", "Nagoya", "Fukuoka", "Sapporo"}
	stores     = []string{"Main Store", "Station Store", "Suburban Store", "Warehouse"}
)

// Generator synthesizes inventory items with plausible baseline metrics,
// derived risk scores, and 30-day history series. Output is stateless:
// every call produces a fresh batch sorted by priority score.
type Generator struct {
	rnd    Rand
	scorer *Scorer
}

func NewGenerator(rnd Rand) *Generator {
	return &Generator{rnd: rnd, scorer: NewScorer(rnd)}
}

// Generate builds count items. Velocity is floored at 0.1 so turnover
// stays well-defined whenever stock is positive.
func (g *Generator) Generate(count int) []domain.InventoryItem {
	items := make([]domain.InventoryItem, 0, count)

	for i := 0; i < count; i++ {
		category := categories[uniformInt(g.rnd, 0, len(categories))]
		region := regions[uniformInt(g.rnd, 0, len(regions))]
		store := ""
		if g.rnd.Float64() > 0.3 {
			store = stores[uniformInt(g.rnd, 0, len(stores))]
		}

		velocity := math.Max(0.1, normal(g.rnd, 5, 3))
		stock := math.Max(0, normal(g.rnd, velocity*15, velocity*10))
		leadTimeDays := uniformInt(g.rnd, 3, 14)

		turnoverDays := 0.0
		if stock > 0 {
			turnoverDays = stock / velocity
		}

		stockoutRisk := g.scorer.StockoutRisk(stock, velocity, leadTimeDays)
		excessRisk := g.scorer.ExcessRisk(turnoverDays)
		priority := g.scorer.PriorityScore(stockoutRisk, excessRisk, velocity, category)

		items = append(items, domain.InventoryItem{
			SKU: domain.SKU{
				ID:       fmt.Sprintf("SKU-%04d", i+1),
				Name:     fmt.Sprintf("%s_item%d", category, i+1),
				Category: category,
				Region:   region,
				Store:    store,
			},
			CurrentStock:          roundHalfUp(stock),
			SalesVelocity:         round1(velocity),
			LeadTimeDays:          leadTimeDays,
			InventoryTurnoverDays: roundHalfUp(turnoverDays),
			StockoutRisk:          stockoutRisk,
			ExcessInventoryRisk:   excessRisk,
			PriorityScore:         roundHalfUp(priority),
			DemandForecast:        g.history(velocity, velocity*0.3),
			StockHistory:          g.history(stock, stock*0.2),
			SalesHistory:          g.history(velocity, velocity*0.4),
			RecommendedAction:     Recommend(stockoutRisk, excessRisk),
			HasActiveAction:       false,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})

	return items
}

// history produces a 30-point random walk from base, floored at zero.
func (g *Generator) history(base, volatility float64) []int {
	series := make([]int, 0, historyPoints)
	current := base

	for i := 0; i < historyPoints; i++ {
		current = math.Max(0, current+normal(g.rnd, 0, volatility))
		series = append(series, roundHalfUp(current))
	}

	return series
}
