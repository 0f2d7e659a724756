// internal/repository/action_log_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andresuchdata/stockpilot/internal/domain"
)

var (
	// ErrNotFound is returned when no log matches the given action id.
	ErrNotFound = errors.New("action log not found")

	// ErrOutcomeExists is returned when an after snapshot is already
	// attached. Outcome attachment is write-once.
	ErrOutcomeExists = errors.New("outcome already recorded for action")
)

// ActionLogRepository is the durable store of action log entries. Save
// upserts by action id; entries are never deleted individually, only
// bulk-cleared. Concurrent writers are not coordinated: the collection is
// read-modify-written as a whole and the last writer wins.
type ActionLogRepository interface {
	GetAll(ctx context.Context) ([]domain.ActionLog, error)
	GetByID(ctx context.Context, actionID string) (*domain.ActionLog, error)
	GetActiveBySKU(ctx context.Context, skuID string) ([]domain.ActionLog, error)
	Save(ctx context.Context, log domain.ActionLog) error
	UpdateStatus(ctx context.Context, actionID string, status domain.ActionStatus) error
	AttachEvaluation(ctx context.Context, actionID string, evaluation domain.Evaluation) error
	AttachOutcome(ctx context.Context, actionID string, after domain.KPISnapshot, label domain.OutcomeLabel, comment string) error
	Filter(ctx context.Context, filter domain.ActionLogFilter) ([]domain.ActionLog, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.ActionLog, error)
	Clear(ctx context.Context) error
}

// MatchesFilter reports whether a log entry passes the given filter.
// Shared by backends that filter in memory.
func MatchesFilter(log domain.ActionLog, filter domain.ActionLogFilter) bool {
	if filter.ActionType != "" && string(log.ActionType) != filter.ActionType {
		return false
	}
	if filter.Status != "" && string(log.Status) != filter.Status {
		return false
	}
	if filter.Category != "" && log.Category != filter.Category {
		return false
	}
	if filter.Region != "" && log.Region != filter.Region {
		return false
	}
	return true
}
