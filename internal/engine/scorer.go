// internal/engine/scorer.go
package engine

import "math"

const (
	categoryFood    = "food"
	categoryApparel = "apparel"

	// Sentinel days-until-stockout when nothing is selling.
	neverStockoutDays = 999
)

// Scorer derives risk scores from baseline item attributes. The banded
// scores carry intra-band jitter on purpose: monotone in expectation but
// noisy, so generated data does not look unrealistically smooth.
type Scorer struct {
	rnd Rand
}

func NewScorer(rnd Rand) *Scorer {
	return &Scorer{rnd: rnd}
}

// StockoutRisk maps days-until-stockout against lead-time safety bands to
// a 0-100 score.
func (s *Scorer) StockoutRisk(stock, velocity float64, leadTimeDays int) int {
	daysUntilStockout := float64(neverStockoutDays)
	if velocity > 0 {
		daysUntilStockout = stock / velocity
	}
	safetyBuffer := float64(leadTimeDays) * 1.5

	switch {
	case daysUntilStockout < float64(leadTimeDays):
		return int(math.Min(100, float64(90+uniformInt(s.rnd, 0, 10))))
	case daysUntilStockout < safetyBuffer:
		return uniformInt(s.rnd, 50, 80)
	case daysUntilStockout < safetyBuffer*2:
		return uniformInt(s.rnd, 20, 50)
	default:
		return uniformInt(s.rnd, 0, 20)
	}
}

// ExcessRisk maps inventory turnover days to a 0-100 overstock score.
func (s *Scorer) ExcessRisk(turnoverDays float64) int {
	switch {
	case turnoverDays > 180:
		return int(math.Min(100, float64(80+uniformInt(s.rnd, 0, 20))))
	case turnoverDays > 90:
		return uniformInt(s.rnd, 50, 80)
	case turnoverDays > 60:
		return uniformInt(s.rnd, 20, 50)
	default:
		return uniformInt(s.rnd, 0, 20)
	}
}

// PriorityScore combines both risks with velocity and category bonuses
// plus Gaussian noise, clamped to [0,100].
func (s *Scorer) PriorityScore(stockoutRisk, excessRisk int, velocity float64, category string) float64 {
	score := float64(stockoutRisk)*0.4 + float64(excessRisk)*0.3

	// Fast movers first
	if velocity > 10 {
		score += 20
	} else if velocity > 5 {
		score += 10
	}

	// Perishables and seasonal stock get a bump
	if category == categoryFood {
		score += 15
	} else if category == categoryApparel {
		score += 10
	}

	score += normal(s.rnd, 0, 5)

	return clamp(score, 0, 100)
}
