// internal/service/action_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/stockpilot/internal/cache"
	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/engine"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNoBeforeSnapshot is returned when outcome simulation is requested
// for an entry that never recorded a before snapshot. Older entries
// created before snapshot capture was introduced can hit this.
var ErrNoBeforeSnapshot = errors.New("no before snapshot recorded for action")

// ActionService owns the action log lifecycle: confirmation, status
// transitions, outcome simulation, and manual evaluation. Log mutations
// shift the active counts the dashboard summary reports, so every
// successful mutation drops the cached summaries.
type ActionService struct {
	repo      repository.ActionLogRepository
	simulator *engine.Simulator
	owner     string
	cache     cache.SummaryCache
}

func NewActionService(repo repository.ActionLogRepository, simulator *engine.Simulator, owner string, cacheImpl cache.SummaryCache) *ActionService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	return &ActionService{repo: repo, simulator: simulator, owner: owner, cache: cacheImpl}
}

// invalidateSummaries drops cached dashboard summaries after a log
// mutation. Failures only shorten cache freshness, so they are logged
// and swallowed.
func (s *ActionService) invalidateSummaries(ctx context.Context) {
	if err := s.cache.InvalidateSummaries(ctx); err != nil {
		log.Warn().Err(err).Msg("actions: cache invalidation failed")
	}
}

// Confirm records an approved action for the item. The payload is rebuilt
// from the item (payload building is deterministic) and the before
// snapshot is captured atomically from the item's current state.
func (s *ActionService) Confirm(ctx context.Context, item domain.InventoryItem, actionType domain.ActionType, notes string) (domain.ActionLog, error) {
	payload := engine.BuildPayload(item, actionType)

	before := domain.KPISnapshot{
		StockoutRisk:          item.StockoutRisk,
		ExcessInventoryRisk:   item.ExcessInventoryRisk,
		InventoryTurnoverDays: item.InventoryTurnoverDays,
		SalesVelocity:         item.SalesVelocity,
		CurrentStock:          item.CurrentStock,
	}

	entry := domain.ActionLog{
		ActionID:      newActionID(),
		Timestamp:     time.Now().UTC(),
		SKUID:         item.ID,
		SKUName:       item.Name,
		Category:      item.Category,
		Region:        item.Region,
		Store:         item.Store,
		ActionType:    actionType,
		ActionPayload: payload,
		RationaleMetrics: domain.RationaleMetrics{
			CurrentStock:          item.CurrentStock,
			SalesVelocity:         item.SalesVelocity,
			LeadTimeDays:          item.LeadTimeDays,
			InventoryTurnoverDays: item.InventoryTurnoverDays,
			StockoutRisk:          item.StockoutRisk,
			ExcessInventoryRisk:   item.ExcessInventoryRisk,
			PriorityScore:         item.PriorityScore,
		},
		Status:            domain.StatusApproved,
		Owner:             s.owner,
		Notes:             notes,
		KPISnapshotBefore: &before,
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return domain.ActionLog{}, fmt.Errorf("save action log: %w", err)
	}
	s.invalidateSummaries(ctx)

	log.Info().
		Str("action_id", entry.ActionID).
		Str("sku_id", entry.SKUID).
		Str("action_type", string(actionType)).
		Msg("action confirmed")

	return entry, nil
}

// List returns logs matching the filter, newest first.
func (s *ActionService) List(ctx context.Context, filter domain.ActionLogFilter) ([]domain.ActionLog, error) {
	logs, err := s.repo.Filter(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}

// ListByDateRange returns logs whose timestamps fall inside [start, end],
// narrowed by the filter, newest first.
func (s *ActionService) ListByDateRange(ctx context.Context, filter domain.ActionLogFilter, start, end time.Time) ([]domain.ActionLog, error) {
	logs, err := s.repo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.ActionLog, 0, len(logs))
	for _, entry := range logs {
		if repository.MatchesFilter(entry, filter) {
			matched = append(matched, entry)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	return matched, nil
}

func (s *ActionService) Get(ctx context.Context, actionID string) (*domain.ActionLog, error) {
	return s.repo.GetByID(ctx, actionID)
}

func (s *ActionService) UpdateStatus(ctx context.Context, actionID string, status domain.ActionStatus) error {
	if err := s.repo.UpdateStatus(ctx, actionID, status); err != nil {
		return err
	}
	s.invalidateSummaries(ctx)
	return nil
}

// SimulateOutcome rolls a stochastic outcome against the entry's before
// snapshot and attaches the after snapshot, label, and auto comment.
// Fails soft when the before snapshot is missing or the outcome was
// already recorded; both are recoverable caller mistakes, not crashes.
func (s *ActionService) SimulateOutcome(ctx context.Context, actionID string) (*domain.ActionLog, error) {
	entry, err := s.repo.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}

	if entry.KPISnapshotBefore == nil {
		return nil, ErrNoBeforeSnapshot
	}
	if entry.KPISnapshotAfter != nil {
		return nil, repository.ErrOutcomeExists
	}

	after, label := s.simulator.SimulateOutcome(*entry.KPISnapshotBefore, entry.ActionType)
	comment := engine.GenerateComment(entry.ActionType, *entry.KPISnapshotBefore, after)

	if err := s.repo.AttachOutcome(ctx, actionID, after, label, comment); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx)

	return s.repo.GetByID(ctx, actionID)
}

// Evaluate attaches a manually authored review with generated mock
// metric deltas. An approved entry advances to executed once evaluated.
func (s *ActionService) Evaluate(ctx context.Context, actionID string, result domain.OutcomeLabel, learnings, nextActions string) (*domain.ActionLog, error) {
	entry, err := s.repo.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}

	evaluation := domain.Evaluation{
		Result:      result,
		MockMetrics: s.simulator.MockEvaluationMetrics(entry.RationaleMetrics, entry.ActionType, result),
		Learnings:   learnings,
		NextActions: nextActions,
		EvaluatedAt: time.Now().UTC(),
	}

	if err := s.repo.AttachEvaluation(ctx, actionID, evaluation); err != nil {
		return nil, err
	}

	if entry.Status == domain.StatusApproved {
		if err := s.repo.UpdateStatus(ctx, actionID, domain.StatusExecuted); err != nil {
			return nil, err
		}
		s.invalidateSummaries(ctx)
	}

	return s.repo.GetByID(ctx, actionID)
}

func (s *ActionService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.invalidateSummaries(ctx)
	return nil
}

// newActionID builds a time-based id with a random suffix. Uniqueness is
// all the log requires of it.
func newActionID() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("action-%d-%s", time.Now().UnixMilli(), suffix)
}
