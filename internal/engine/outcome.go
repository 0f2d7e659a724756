// internal/engine/outcome.go
package engine

import (
	"math"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

// Simulator rolls post-action outcomes against a before snapshot.
// It is stateless: the write-once rule for after snapshots is enforced by
// the log store, not here.
type Simulator struct {
	rnd Rand
}

func NewSimulator(rnd Rand) *Simulator {
	return &Simulator{rnd: rnd}
}

// SimulateOutcome draws one roll and applies outcome-specific deltas to
// the before snapshot. The outcome split is fixed at 70% improved,
// 20% neutral, 10% worsened.
func (s *Simulator) SimulateOutcome(before domain.KPISnapshot, actionType domain.ActionType) (domain.KPISnapshot, domain.OutcomeLabel) {
	stockoutRisk := float64(before.StockoutRisk)
	excessRisk := float64(before.ExcessInventoryRisk)
	turnoverDays := float64(before.InventoryTurnoverDays)
	salesVelocity := before.SalesVelocity
	stock := float64(before.CurrentStock)

	roll := s.rnd.Float64()
	improved := roll < 0.7
	neutral := roll >= 0.7 && roll < 0.9

	switch actionType {
	case domain.ActionReplenishmentAdjust:
		if improved {
			stockoutRisk = math.Max(0, stockoutRisk-30-s.rnd.Float64()*20)
			stock += math.Round(salesVelocity * 10 * s.randomFactor())
		} else if neutral {
			stockoutRisk = math.Max(0, stockoutRisk-10)
			stock += math.Round(salesVelocity * 5)
		} else {
			stockoutRisk = math.Min(100, stockoutRisk+5)
			excessRisk = math.Min(100, excessRisk+10)
		}

	case domain.ActionTransfer:
		if improved {
			stockoutRisk = math.Max(0, stockoutRisk-25-s.rnd.Float64()*15)
			stock += math.Round(salesVelocity * 7 * s.randomFactor())
		} else if neutral {
			stockoutRisk = math.Max(0, stockoutRisk-10)
			stock += math.Round(salesVelocity * 3)
		} else {
			stockoutRisk = math.Min(100, stockoutRisk+5)
		}

	case domain.ActionMarkdownPromo:
		if improved {
			excessRisk = math.Max(0, excessRisk-35-s.rnd.Float64()*20)
			salesVelocity *= 1.2 + s.rnd.Float64()*0.3
			turnoverDays = math.Max(1, turnoverDays-40-s.rnd.Float64()*20)
		} else if neutral {
			excessRisk = math.Max(0, excessRisk-10)
			salesVelocity *= 1.1
			turnoverDays = math.Max(1, turnoverDays-15)
		} else {
			excessRisk = math.Max(0, excessRisk-5)
			salesVelocity *= 0.95
		}
	}

	after := domain.KPISnapshot{
		StockoutRisk:          roundHalfUp(stockoutRisk),
		ExcessInventoryRisk:   roundHalfUp(excessRisk),
		InventoryTurnoverDays: roundHalfUp(turnoverDays),
		SalesVelocity:         round1(salesVelocity),
		CurrentStock:          roundHalfUp(stock),
	}

	label := domain.OutcomeWorsened
	if improved {
		label = domain.OutcomeImproved
	} else if neutral {
		label = domain.OutcomeNeutral
	}

	return after, label
}

// randomFactor draws a multiplier in [0.85, 1.15).
func (s *Simulator) randomFactor() float64 {
	return s.rnd.Float64()*0.3 + 0.85
}
