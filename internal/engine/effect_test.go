package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

func TestProjectEffectReplenishmentIncrease(t *testing.T) {
	item := domain.InventoryItem{
		SalesVelocity:       8.5,
		LeadTimeDays:        7,
		StockoutRisk:        80,
		ExcessInventoryRisk: 20,
	}
	payload := BuildPayload(item, domain.ActionReplenishmentAdjust)

	effect := ProjectEffect(item, domain.ActionReplenishmentAdjust, payload)
	if effect.ProjectedStockoutRisk != 45 {
		t.Errorf("projected stockout = %d, want 45", effect.ProjectedStockoutRisk)
	}
	if effect.ProjectedExcessRisk != 30 {
		t.Errorf("projected excess = %d, want 30", effect.ProjectedExcessRisk)
	}
	if !strings.Contains(effect.ExpectedImpact, "50%") {
		t.Errorf("impact %q should mention the 50%% change", effect.ExpectedImpact)
	}
}

func TestProjectEffectReplenishmentDecrease(t *testing.T) {
	item := domain.InventoryItem{
		SalesVelocity:       2,
		LeadTimeDays:        5,
		StockoutRisk:        50,
		ExcessInventoryRisk: 80,
	}
	payload := BuildPayload(item, domain.ActionReplenishmentAdjust)

	effect := ProjectEffect(item, domain.ActionReplenishmentAdjust, payload)
	if effect.ProjectedStockoutRisk != 65 {
		t.Errorf("projected stockout = %d, want 65", effect.ProjectedStockoutRisk)
	}
	if effect.ProjectedExcessRisk != 55 {
		t.Errorf("projected excess = %d, want 55", effect.ProjectedExcessRisk)
	}
}

func TestProjectEffectTransferClampsAtZero(t *testing.T) {
	item := domain.InventoryItem{
		SalesVelocity:       4,
		StockoutRisk:        25,
		ExcessInventoryRisk: 33,
	}
	payload := BuildPayload(item, domain.ActionTransfer)

	effect := ProjectEffect(item, domain.ActionTransfer, payload)
	if effect.ProjectedStockoutRisk != 0 {
		t.Errorf("projected stockout = %d, want 0 (clamped)", effect.ProjectedStockoutRisk)
	}
	if effect.ProjectedExcessRisk != 33 {
		t.Errorf("projected excess = %d, want unchanged 33", effect.ProjectedExcessRisk)
	}
	if !strings.Contains(effect.ExpectedImpact, "28 units") {
		t.Errorf("impact %q should mention the transfer quantity", effect.ExpectedImpact)
	}
}

func TestProjectEffectMarkdownLeavesStockoutUnchanged(t *testing.T) {
	item := domain.InventoryItem{
		StockoutRisk:        40,
		ExcessInventoryRisk: 90,
	}
	payload := BuildPayload(item, domain.ActionMarkdownPromo)

	effect := ProjectEffect(item, domain.ActionMarkdownPromo, payload)
	if effect.ProjectedStockoutRisk != 40 {
		t.Errorf("projected stockout = %d, want unchanged 40", effect.ProjectedStockoutRisk)
	}
	if effect.ProjectedExcessRisk != 50 {
		t.Errorf("projected excess = %d, want 50", effect.ProjectedExcessRisk)
	}
}

func TestProjectEffectIdempotent(t *testing.T) {
	item := domain.InventoryItem{
		SKU:                 domain.SKU{Region: "Tokyo"},
		SalesVelocity:       5.5,
		LeadTimeDays:        8,
		StockoutRisk:        66,
		ExcessInventoryRisk: 44,
	}

	for _, actionType := range []domain.ActionType{
		domain.ActionReplenishmentAdjust,
		domain.ActionTransfer,
		domain.ActionMarkdownPromo,
	} {
		payload := BuildPayload(item, actionType)
		a := ProjectEffect(item, actionType, payload)
		b := ProjectEffect(item, actionType, payload)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: effects differ across calls: %+v vs %+v", actionType, a, b)
		}
	}
}
