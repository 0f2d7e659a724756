package engine

import (
	"testing"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

func TestMockEvaluationMetricsReplenishmentImproved(t *testing.T) {
	sim := NewSimulator(&seqRand{vals: []float64{0.5}})
	metrics := domain.RationaleMetrics{CurrentStock: 100, StockoutRisk: 85}

	out := sim.MockEvaluationMetrics(metrics, domain.ActionReplenishmentAdjust, domain.OutcomeImproved)
	if out.StockoutReduction == nil || *out.StockoutReduction != 61 { // 85*0.6 + 10
		t.Errorf("stockoutReduction = %v, want 61", out.StockoutReduction)
	}
	if out.StockChange == nil || *out.StockChange != 65 { // 100*0.4 + 25
		t.Errorf("stockChange = %v, want 65", out.StockChange)
	}
	if out.SalesChange == nil || *out.SalesChange != 13 { // 5 + 7.5 rounded
		t.Errorf("salesChange = %v, want 13", out.SalesChange)
	}
	if out.MarginChange != nil {
		t.Errorf("marginChange = %v, want nil for replenishment", out.MarginChange)
	}
}

func TestMockEvaluationMetricsTransfer(t *testing.T) {
	sim := NewSimulator(&seqRand{vals: []float64{0.5}})
	metrics := domain.RationaleMetrics{StockoutRisk: 85}

	out := sim.MockEvaluationMetrics(metrics, domain.ActionTransfer, domain.OutcomeImproved)
	if out.StockoutReduction == nil || *out.StockoutReduction != 43 { // 85*0.5 rounded
		t.Errorf("stockoutReduction = %v, want 43", out.StockoutReduction)
	}
	if out.SalesChange == nil || *out.SalesChange != 14 { // 8 + 6
		t.Errorf("salesChange = %v, want 14", out.SalesChange)
	}
	if out.StockChange != nil || out.MarginChange != nil {
		t.Errorf("transfer should not set stockChange or marginChange: %+v", out)
	}
}

func TestMockEvaluationMetricsMarkdownSigns(t *testing.T) {
	metrics := domain.RationaleMetrics{CurrentStock: 300}

	improved := NewSimulator(&seqRand{vals: []float64{0.5}}).
		MockEvaluationMetrics(metrics, domain.ActionMarkdownPromo, domain.OutcomeImproved)
	if improved.StockChange == nil || *improved.StockChange >= 0 {
		t.Errorf("improved markdown stockChange = %v, want negative", improved.StockChange)
	}
	if improved.SalesChange == nil || *improved.SalesChange <= 0 {
		t.Errorf("improved markdown salesChange = %v, want positive", improved.SalesChange)
	}
	if improved.MarginChange == nil || *improved.MarginChange >= 0 {
		t.Errorf("improved markdown marginChange = %v, want negative", improved.MarginChange)
	}

	worsened := NewSimulator(&seqRand{vals: []float64{0.5}}).
		MockEvaluationMetrics(metrics, domain.ActionMarkdownPromo, domain.OutcomeWorsened)
	if worsened.SalesChange == nil || *worsened.SalesChange > 0 {
		t.Errorf("worsened markdown salesChange = %v, want non-positive", worsened.SalesChange)
	}
	if worsened.MarginChange == nil || *worsened.MarginChange >= 0 {
		t.Errorf("worsened markdown marginChange = %v, want negative", worsened.MarginChange)
	}
}
