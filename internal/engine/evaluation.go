// internal/engine/evaluation.go
package engine

import (
	"github.com/andresuchdata/stockpilot/internal/domain"
)

// MockEvaluationMetrics builds the mock quantitative deltas attached to a
// manual evaluation. The shape of each metric follows the chosen result
// and the rationale metrics frozen at proposal time.
func (s *Simulator) MockEvaluationMetrics(metrics domain.RationaleMetrics, actionType domain.ActionType, result domain.OutcomeLabel) domain.EvaluationMetrics {
	improved := result == domain.OutcomeImproved
	neutral := result == domain.OutcomeNeutral

	out := domain.EvaluationMetrics{}

	switch actionType {
	case domain.ActionReplenishmentAdjust:
		if improved {
			out.StockoutReduction = intPtr(roundHalfUp(float64(metrics.StockoutRisk)*0.6 + s.rnd.Float64()*20))
			out.StockChange = intPtr(roundHalfUp(float64(metrics.CurrentStock)*0.4 + s.rnd.Float64()*50))
			out.SalesChange = intPtr(roundHalfUp(5 + s.rnd.Float64()*15))
		} else if neutral {
			out.StockoutReduction = intPtr(roundHalfUp(s.rnd.Float64() * 20))
			out.StockChange = intPtr(roundHalfUp(s.rnd.Float64()*30 - 15))
			out.SalesChange = intPtr(roundHalfUp(s.rnd.Float64()*10 - 5))
		} else {
			out.StockoutReduction = intPtr(-roundHalfUp(s.rnd.Float64() * 10))
			out.StockChange = intPtr(-roundHalfUp(s.rnd.Float64() * 30))
			out.SalesChange = intPtr(-roundHalfUp(s.rnd.Float64() * 10))
		}

	case domain.ActionTransfer:
		if improved {
			out.StockoutReduction = intPtr(roundHalfUp(float64(metrics.StockoutRisk) * 0.5))
			out.SalesChange = intPtr(roundHalfUp(8 + s.rnd.Float64()*12))
		} else if neutral {
			out.StockoutReduction = intPtr(roundHalfUp(s.rnd.Float64() * 15))
			out.SalesChange = intPtr(roundHalfUp(s.rnd.Float64()*8 - 4))
		} else {
			out.StockoutReduction = intPtr(-roundHalfUp(s.rnd.Float64() * 5))
			out.SalesChange = intPtr(-roundHalfUp(s.rnd.Float64() * 8))
		}

	case domain.ActionMarkdownPromo:
		if improved {
			out.StockChange = intPtr(-roundHalfUp(float64(metrics.CurrentStock)*0.4 + s.rnd.Float64()*100))
			out.SalesChange = intPtr(roundHalfUp(20 + s.rnd.Float64()*30))
			out.MarginChange = intPtr(-roundHalfUp(5 + s.rnd.Float64()*10))
		} else if neutral {
			out.StockChange = intPtr(-roundHalfUp(s.rnd.Float64() * 50))
			out.SalesChange = intPtr(roundHalfUp(s.rnd.Float64()*15 - 5))
			out.MarginChange = intPtr(-roundHalfUp(s.rnd.Float64() * 8))
		} else {
			out.StockChange = intPtr(roundHalfUp(s.rnd.Float64() * 20))
			out.SalesChange = intPtr(-roundHalfUp(s.rnd.Float64() * 10))
			out.MarginChange = intPtr(-roundHalfUp(10 + s.rnd.Float64()*10))
		}
	}

	return out
}

func intPtr(v int) *int {
	return &v
}
