// internal/service/inventory_service.go
package service

import (
	"context"

	"github.com/andresuchdata/stockpilot/internal/cache"
	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/engine"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// InventoryService produces the session item list and dashboard summary.
// Items are generated fresh per request; only the action log persists.
type InventoryService struct {
	generator *engine.Generator
	repo      repository.ActionLogRepository
	cache     cache.SummaryCache
}

func NewInventoryService(generator *engine.Generator, repo repository.ActionLogRepository, cacheImpl cache.SummaryCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	return &InventoryService{generator: generator, repo: repo, cache: cacheImpl}
}

// GenerateItems builds a fresh batch and marks SKUs that already have an
// active (proposed or approved) action in the log. Generation and the log
// read are independent, so they run concurrently.
func (s *InventoryService) GenerateItems(ctx context.Context, count int) ([]domain.InventoryItem, error) {
	var (
		items []domain.InventoryItem
		logs  []domain.ActionLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items = s.generator.Generate(count)
		return nil
	})
	g.Go(func() error {
		var err error
		logs, err = s.repo.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	activeSKUs := make(map[string]bool)
	for _, entry := range logs {
		if entry.Status.IsActive() {
			activeSKUs[entry.SKUID] = true
		}
	}

	for i := range items {
		items[i].HasActiveAction = activeSKUs[items[i].ID]
	}

	return items, nil
}

// PreviewAction builds the payload and projected effect for a candidate
// action without persisting anything.
func (s *InventoryService) PreviewAction(ctx context.Context, item domain.InventoryItem, actionType domain.ActionType) (domain.ActionPayload, domain.ActionEffect, bool, error) {
	payload := engine.BuildPayload(item, actionType)
	effect := engine.ProjectEffect(item, actionType, payload)

	active, err := s.repo.GetActiveBySKU(ctx, item.ID)
	if err != nil {
		return domain.ActionPayload{}, domain.ActionEffect{}, false, err
	}

	return payload, effect, len(active) > 0, nil
}

// Summary generates a batch and aggregates the dashboard header counts.
// Results are cached when a cache backend is configured.
func (s *InventoryService) Summary(ctx context.Context, count int) (domain.InventorySummary, error) {
	if cached, ok, err := s.cache.GetSummary(ctx, count); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get summary failed")
	}

	items, err := s.GenerateItems(ctx, count)
	if err != nil {
		return domain.InventorySummary{}, err
	}

	summary := domain.InventorySummary{TotalItems: len(items)}
	for _, item := range items {
		switch {
		case item.PriorityScore >= 70:
			summary.HighRiskItems++
		case item.PriorityScore >= 40:
			summary.MediumRiskItems++
		}
		if item.HasActiveAction {
			summary.ActiveItems++
		}
	}

	if err := s.cache.SetSummary(ctx, count, summary); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set summary failed")
	}

	return summary, nil
}
