package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/engine"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/andresuchdata/stockpilot/internal/repository/jsonfile"
)

// fixedRand makes engine rolls deterministic in service tests.
type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

// spySummaryCache records invalidations so tests can assert that log
// mutations drop cached summaries.
type spySummaryCache struct {
	invalidations int
}

func (c *spySummaryCache) GetSummary(ctx context.Context, itemCount int) (*domain.InventorySummary, bool, error) {
	return nil, false, nil
}

func (c *spySummaryCache) SetSummary(ctx context.Context, itemCount int, summary domain.InventorySummary) error {
	return nil
}

func (c *spySummaryCache) InvalidateSummaries(ctx context.Context) error {
	c.invalidations++
	return nil
}

func newActionService(t *testing.T, rnd engine.Rand) (*ActionService, *jsonfile.Store) {
	t.Helper()
	store, err := jsonfile.NewStore(filepath.Join(t.TempDir(), "action_logs.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewActionService(store, engine.NewSimulator(rnd), "inventory-ops", &spySummaryCache{}), store
}

func testItem() domain.InventoryItem {
	return domain.InventoryItem{
		SKU: domain.SKU{
			ID:       "SKU-0001",
			Name:     "apparel_item1",
			Category: "apparel",
			Region:   "Tokyo",
			Store:    "Main Store",
		},
		CurrentStock:          45,
		SalesVelocity:         8.5,
		LeadTimeDays:          7,
		InventoryTurnoverDays: 5,
		StockoutRisk:          85,
		ExcessInventoryRisk:   10,
		PriorityScore:         82,
	}
}

func TestConfirm(t *testing.T) {
	svc, store := newActionService(t, fixedRand{v: 0.5})
	ctx := context.Background()

	entry, err := svc.Confirm(ctx, testItem(), domain.ActionReplenishmentAdjust, "high stockout risk")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if entry.ActionID == "" {
		t.Error("actionID should be generated")
	}
	if entry.Status != domain.StatusApproved {
		t.Errorf("status = %s, want approved", entry.Status)
	}
	if entry.Owner != "inventory-ops" {
		t.Errorf("owner = %s, want inventory-ops", entry.Owner)
	}
	if entry.ActionPayload.Kind != domain.ActionReplenishmentAdjust || entry.ActionPayload.Replenishment == nil {
		t.Fatalf("payload = %+v, want replenishment", entry.ActionPayload)
	}
	if entry.ActionPayload.Replenishment.ProposedAmount != 90 {
		t.Errorf("proposedAmount = %d, want 90", entry.ActionPayload.Replenishment.ProposedAmount)
	}
	if entry.KPISnapshotBefore == nil {
		t.Fatal("before snapshot missing")
	}
	if entry.KPISnapshotBefore.StockoutRisk != 85 || entry.KPISnapshotBefore.CurrentStock != 45 {
		t.Errorf("before snapshot = %+v, want item state frozen", entry.KPISnapshotBefore)
	}
	if entry.RationaleMetrics.PriorityScore != 82 {
		t.Errorf("rationale priorityScore = %d, want 82", entry.RationaleMetrics.PriorityScore)
	}

	persisted, err := store.GetByID(ctx, entry.ActionID)
	if err != nil {
		t.Fatalf("confirmed entry not persisted: %v", err)
	}
	if persisted.SKUID != "SKU-0001" {
		t.Errorf("persisted skuID = %s", persisted.SKUID)
	}
}

func TestSimulateOutcomeFlow(t *testing.T) {
	// 0.75 rolls the neutral branch, which draws nothing else.
	svc, _ := newActionService(t, fixedRand{v: 0.75})
	ctx := context.Background()

	entry, err := svc.Confirm(ctx, testItem(), domain.ActionReplenishmentAdjust, "")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	got, err := svc.SimulateOutcome(ctx, entry.ActionID)
	if err != nil {
		t.Fatalf("SimulateOutcome: %v", err)
	}

	if got.OutcomeLabel != domain.OutcomeNeutral {
		t.Errorf("label = %s, want neutral", got.OutcomeLabel)
	}
	if got.KPISnapshotAfter == nil {
		t.Fatal("after snapshot missing")
	}
	if got.KPISnapshotAfter.StockoutRisk != 75 { // 85 - 10
		t.Errorf("after stockoutRisk = %d, want 75", got.KPISnapshotAfter.StockoutRisk)
	}
	if got.KPISnapshotAfter.CurrentStock != 88 { // 45 + round(8.5 * 5)
		t.Errorf("after currentStock = %d, want 88", got.KPISnapshotAfter.CurrentStock)
	}
	if got.AutoComment == "" {
		t.Error("auto comment missing")
	}
	if got.Status != domain.StatusEvaluated {
		t.Errorf("status = %s, want evaluated", got.Status)
	}

	_, err = svc.SimulateOutcome(ctx, entry.ActionID)
	if !errors.Is(err, repository.ErrOutcomeExists) {
		t.Fatalf("re-simulation err = %v, want ErrOutcomeExists", err)
	}
}

func TestSimulateOutcomeRequiresBeforeSnapshot(t *testing.T) {
	svc, store := newActionService(t, fixedRand{v: 0.5})
	ctx := context.Background()

	entry := domain.ActionLog{
		ActionID:   "legacy-1",
		SKUID:      "SKU-0009",
		ActionType: domain.ActionTransfer,
		Status:     domain.StatusApproved,
	}
	if err := store.Save(ctx, entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := svc.SimulateOutcome(ctx, "legacy-1")
	if !errors.Is(err, ErrNoBeforeSnapshot) {
		t.Fatalf("err = %v, want ErrNoBeforeSnapshot", err)
	}
}

func TestSimulateOutcomeNotFound(t *testing.T) {
	svc, _ := newActionService(t, fixedRand{v: 0.5})

	_, err := svc.SimulateOutcome(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEvaluateAdvancesApprovedToExecuted(t *testing.T) {
	svc, _ := newActionService(t, fixedRand{v: 0.5})
	ctx := context.Background()

	entry, err := svc.Confirm(ctx, testItem(), domain.ActionTransfer, "")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	got, err := svc.Evaluate(ctx, entry.ActionID, domain.OutcomeImproved, "transfer worked", "repeat for similar SKUs")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if got.Evaluation == nil {
		t.Fatal("evaluation missing")
	}
	if got.Evaluation.Result != domain.OutcomeImproved {
		t.Errorf("result = %s, want improved", got.Evaluation.Result)
	}
	if got.Evaluation.Learnings != "transfer worked" {
		t.Errorf("learnings = %q", got.Evaluation.Learnings)
	}
	if got.Evaluation.MockMetrics.StockoutReduction == nil {
		t.Error("mock metrics should carry a stockout reduction for an improved transfer")
	}
	if got.Status != domain.StatusExecuted {
		t.Errorf("status = %s, want executed", got.Status)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	svc, store := newActionService(t, fixedRand{v: 0.5})
	ctx := context.Background()

	for _, entry := range sampleLogs(time.Now().UTC(), 24*time.Hour) {
		if err := store.Save(ctx, entry); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	logs, err := svc.List(ctx, domain.ActionLogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("got %d logs, want 3", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i-1].Timestamp.Before(logs[i].Timestamp) {
			t.Fatalf("logs not sorted newest first: %v before %v", logs[i-1].Timestamp, logs[i].Timestamp)
		}
	}
}

func TestMutationsInvalidateCachedSummaries(t *testing.T) {
	store, err := jsonfile.NewStore(filepath.Join(t.TempDir(), "action_logs.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	spy := &spySummaryCache{}
	svc := NewActionService(store, engine.NewSimulator(fixedRand{v: 0.75}), "inventory-ops", spy)
	ctx := context.Background()

	entry, err := svc.Confirm(ctx, testItem(), domain.ActionReplenishmentAdjust, "")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if spy.invalidations != 1 {
		t.Fatalf("invalidations after confirm = %d, want 1", spy.invalidations)
	}

	if err := svc.UpdateStatus(ctx, entry.ActionID, domain.StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if spy.invalidations != 2 {
		t.Fatalf("invalidations after status update = %d, want 2", spy.invalidations)
	}

	if _, err := svc.SimulateOutcome(ctx, entry.ActionID); err != nil {
		t.Fatalf("SimulateOutcome: %v", err)
	}
	if spy.invalidations != 3 {
		t.Fatalf("invalidations after outcome = %d, want 3", spy.invalidations)
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if spy.invalidations != 4 {
		t.Fatalf("invalidations after clear = %d, want 4", spy.invalidations)
	}

	// A failed mutation must not invalidate.
	if err := svc.UpdateStatus(ctx, "missing", domain.StatusCancelled); err == nil {
		t.Fatal("UpdateStatus on missing entry should fail")
	}
	if spy.invalidations != 4 {
		t.Fatalf("invalidations after failed update = %d, want 4", spy.invalidations)
	}
}

func TestListByDateRange(t *testing.T) {
	svc, store := newActionService(t, fixedRand{v: 0.5})
	ctx := context.Background()
	now := time.Now().UTC()

	old := rangeLog("action-old", now.Add(-10*24*time.Hour), "apparel")
	mid := rangeLog("action-mid", now.Add(-2*24*time.Hour), "food")
	recent := rangeLog("action-recent", now.Add(-1*24*time.Hour), "apparel")
	for _, entry := range []domain.ActionLog{old, mid, recent} {
		if err := store.Save(ctx, entry); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	logs, err := svc.ListByDateRange(ctx, domain.ActionLogFilter{}, now.Add(-3*24*time.Hour), now)
	if err != nil {
		t.Fatalf("ListByDateRange: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if logs[0].ActionID != "action-recent" || logs[1].ActionID != "action-mid" {
		t.Fatalf("wrong order: %s, %s", logs[0].ActionID, logs[1].ActionID)
	}

	logs, err = svc.ListByDateRange(ctx, domain.ActionLogFilter{Category: "food"}, now.Add(-3*24*time.Hour), now)
	if err != nil {
		t.Fatalf("ListByDateRange with filter: %v", err)
	}
	if len(logs) != 1 || logs[0].ActionID != "action-mid" {
		t.Fatalf("filtered range = %+v, want only action-mid", logs)
	}
}

func rangeLog(actionID string, ts time.Time, category string) domain.ActionLog {
	return domain.ActionLog{
		ActionID:   actionID,
		Timestamp:  ts,
		SKUID:      "SKU-0001",
		Category:   category,
		Region:     "Tokyo",
		ActionType: domain.ActionTransfer,
		Status:     domain.StatusApproved,
	}
}

func TestSeedSampleLogs(t *testing.T) {
	svc, store := newActionService(t, fixedRand{v: 0.5})
	ctx := context.Background()

	if err := svc.SeedSampleLogs(ctx); err != nil {
		t.Fatalf("SeedSampleLogs: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d sample logs, want 3", len(all))
	}

	// Idempotent: a second run must not duplicate entries.
	if err := svc.SeedSampleLogs(ctx); err != nil {
		t.Fatalf("second SeedSampleLogs: %v", err)
	}
	all, _ = store.GetAll(ctx)
	if len(all) != 3 {
		t.Fatalf("got %d sample logs after reseed, want 3", len(all))
	}

	sample, err := store.GetByID(ctx, "sample-001")
	if err != nil {
		t.Fatalf("sample-001 missing: %v", err)
	}
	if sample.ActionPayload.Replenishment == nil || sample.ActionPayload.Replenishment.ProposedAmount != 150 {
		t.Errorf("sample-001 payload = %+v", sample.ActionPayload)
	}
	if sample.Evaluation == nil || sample.Evaluation.Result != domain.OutcomeImproved {
		t.Errorf("sample-001 evaluation = %+v", sample.Evaluation)
	}
}
