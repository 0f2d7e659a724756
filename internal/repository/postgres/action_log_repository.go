// internal/repository/postgres/action_log_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS action_logs (
    action_id           TEXT PRIMARY KEY,
    ts                  TIMESTAMPTZ NOT NULL,
    sku_id              TEXT NOT NULL,
    sku_name            TEXT NOT NULL,
    category            TEXT NOT NULL,
    region              TEXT NOT NULL,
    store               TEXT NOT NULL DEFAULT '',
    action_type         TEXT NOT NULL,
    action_payload      JSONB NOT NULL,
    rationale_metrics   JSONB NOT NULL,
    status              TEXT NOT NULL,
    owner               TEXT NOT NULL,
    notes               TEXT NOT NULL DEFAULT '',
    evaluation          JSONB,
    kpi_snapshot_before JSONB,
    kpi_snapshot_after  JSONB,
    outcome_label       TEXT NOT NULL DEFAULT '',
    auto_comment        TEXT NOT NULL DEFAULT ''
)`

type actionLogRow struct {
	ActionID          string    `db:"action_id"`
	Timestamp         time.Time `db:"ts"`
	SKUID             string    `db:"sku_id"`
	SKUName           string    `db:"sku_name"`
	Category          string    `db:"category"`
	Region            string    `db:"region"`
	Store             string    `db:"store"`
	ActionType        string    `db:"action_type"`
	ActionPayload     []byte    `db:"action_payload"`
	RationaleMetrics  []byte    `db:"rationale_metrics"`
	Status            string    `db:"status"`
	Owner             string    `db:"owner"`
	Notes             string    `db:"notes"`
	Evaluation        []byte    `db:"evaluation"`
	KPISnapshotBefore []byte    `db:"kpi_snapshot_before"`
	KPISnapshotAfter  []byte    `db:"kpi_snapshot_after"`
	OutcomeLabel      string    `db:"outcome_label"`
	AutoComment       string    `db:"auto_comment"`
}

type actionLogRepository struct {
	db *sqlx.DB
}

// NewActionLogRepository returns the relational action log backend and
// ensures its table exists.
func NewActionLogRepository(db *sqlx.DB) (repository.ActionLogRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure action_logs table: %w", err)
	}
	return &actionLogRepository{db: db}, nil
}

func (r *actionLogRepository) GetAll(ctx context.Context) ([]domain.ActionLog, error) {
	var rows []actionLogRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM action_logs ORDER BY ts DESC`); err != nil {
		return nil, fmt.Errorf("error getting action logs: %w", err)
	}
	return decodeRows(rows)
}

func (r *actionLogRepository) GetByID(ctx context.Context, actionID string) (*domain.ActionLog, error) {
	var row actionLogRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM action_logs WHERE action_id = $1`, actionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting action log %s: %w", actionID, err)
	}

	entry, err := decodeRow(row)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *actionLogRepository) GetActiveBySKU(ctx context.Context, skuID string) ([]domain.ActionLog, error) {
	var rows []actionLogRow
	query := `SELECT * FROM action_logs WHERE sku_id = $1 AND status IN ($2, $3) ORDER BY ts DESC`
	if err := r.db.SelectContext(ctx, &rows, query, skuID, domain.StatusProposed, domain.StatusApproved); err != nil {
		return nil, fmt.Errorf("error getting active logs for sku %s: %w", skuID, err)
	}
	return decodeRows(rows)
}

func (r *actionLogRepository) Save(ctx context.Context, entry domain.ActionLog) error {
	row, err := encodeRow(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO action_logs (
			action_id, ts, sku_id, sku_name, category, region, store,
			action_type, action_payload, rationale_metrics, status, owner,
			notes, evaluation, kpi_snapshot_before, kpi_snapshot_after,
			outcome_label, auto_comment
		) VALUES (
			:action_id, :ts, :sku_id, :sku_name, :category, :region, :store,
			:action_type, :action_payload, :rationale_metrics, :status, :owner,
			:notes, :evaluation, :kpi_snapshot_before, :kpi_snapshot_after,
			:outcome_label, :auto_comment
		)
		ON CONFLICT (action_id) DO UPDATE SET
			ts = EXCLUDED.ts,
			sku_id = EXCLUDED.sku_id,
			sku_name = EXCLUDED.sku_name,
			category = EXCLUDED.category,
			region = EXCLUDED.region,
			store = EXCLUDED.store,
			action_type = EXCLUDED.action_type,
			action_payload = EXCLUDED.action_payload,
			rationale_metrics = EXCLUDED.rationale_metrics,
			status = EXCLUDED.status,
			owner = EXCLUDED.owner,
			notes = EXCLUDED.notes,
			evaluation = EXCLUDED.evaluation,
			kpi_snapshot_before = EXCLUDED.kpi_snapshot_before,
			kpi_snapshot_after = EXCLUDED.kpi_snapshot_after,
			outcome_label = EXCLUDED.outcome_label,
			auto_comment = EXCLUDED.auto_comment
	`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("error saving action log %s: %w", entry.ActionID, err)
	}
	return nil
}

func (r *actionLogRepository) UpdateStatus(ctx context.Context, actionID string, status domain.ActionStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE action_logs SET status = $1 WHERE action_id = $2`, status, actionID)
	if err != nil {
		return fmt.Errorf("error updating status for %s: %w", actionID, err)
	}
	return requireRow(res, actionID)
}

func (r *actionLogRepository) AttachEvaluation(ctx context.Context, actionID string, evaluation domain.Evaluation) error {
	payload, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE action_logs SET evaluation = $1 WHERE action_id = $2`, payload, actionID)
	if err != nil {
		return fmt.Errorf("error attaching evaluation to %s: %w", actionID, err)
	}
	return requireRow(res, actionID)
}

func (r *actionLogRepository) AttachOutcome(ctx context.Context, actionID string, after domain.KPISnapshot, label domain.OutcomeLabel, comment string) error {
	payload, err := json.Marshal(after)
	if err != nil {
		return fmt.Errorf("encode after snapshot: %w", err)
	}

	// Write-once: only attach when no after snapshot is present yet.
	query := `
		UPDATE action_logs
		SET kpi_snapshot_after = $1, outcome_label = $2, auto_comment = $3, status = $4
		WHERE action_id = $5 AND kpi_snapshot_after IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, payload, label, comment, domain.StatusEvaluated, actionID)
	if err != nil {
		return fmt.Errorf("error attaching outcome to %s: %w", actionID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking outcome update for %s: %w", actionID, err)
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing entry from a second attachment attempt.
	if _, err := r.GetByID(ctx, actionID); err != nil {
		return err
	}
	return repository.ErrOutcomeExists
}

func (r *actionLogRepository) Filter(ctx context.Context, filter domain.ActionLogFilter) ([]domain.ActionLog, error) {
	query := `SELECT * FROM action_logs WHERE 1=1`
	var args []interface{}
	var conditions []string
	argCounter := 1

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	addCondition("action_type", filter.ActionType)
	addCondition("status", filter.Status)
	addCondition("category", filter.Category)
	addCondition("region", filter.Region)

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ts DESC"

	var rows []actionLogRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error filtering action logs: %w", err)
	}
	return decodeRows(rows)
}

func (r *actionLogRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.ActionLog, error) {
	var rows []actionLogRow
	query := `SELECT * FROM action_logs WHERE ts >= $1 AND ts <= $2 ORDER BY ts DESC`
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, fmt.Errorf("error getting action logs by date range: %w", err)
	}
	return decodeRows(rows)
}

func (r *actionLogRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM action_logs`); err != nil {
		return fmt.Errorf("error clearing action logs: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, actionID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update for %s: %w", actionID, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func encodeRow(entry domain.ActionLog) (actionLogRow, error) {
	payload, err := json.Marshal(entry.ActionPayload)
	if err != nil {
		return actionLogRow{}, fmt.Errorf("encode action payload: %w", err)
	}
	metrics, err := json.Marshal(entry.RationaleMetrics)
	if err != nil {
		return actionLogRow{}, fmt.Errorf("encode rationale metrics: %w", err)
	}

	row := actionLogRow{
		ActionID:         entry.ActionID,
		Timestamp:        entry.Timestamp,
		SKUID:            entry.SKUID,
		SKUName:          entry.SKUName,
		Category:         entry.Category,
		Region:           entry.Region,
		Store:            entry.Store,
		ActionType:       string(entry.ActionType),
		ActionPayload:    payload,
		RationaleMetrics: metrics,
		Status:           string(entry.Status),
		Owner:            entry.Owner,
		Notes:            entry.Notes,
		OutcomeLabel:     string(entry.OutcomeLabel),
		AutoComment:      entry.AutoComment,
	}

	if entry.Evaluation != nil {
		if row.Evaluation, err = json.Marshal(entry.Evaluation); err != nil {
			return actionLogRow{}, fmt.Errorf("encode evaluation: %w", err)
		}
	}
	if entry.KPISnapshotBefore != nil {
		if row.KPISnapshotBefore, err = json.Marshal(entry.KPISnapshotBefore); err != nil {
			return actionLogRow{}, fmt.Errorf("encode before snapshot: %w", err)
		}
	}
	if entry.KPISnapshotAfter != nil {
		if row.KPISnapshotAfter, err = json.Marshal(entry.KPISnapshotAfter); err != nil {
			return actionLogRow{}, fmt.Errorf("encode after snapshot: %w", err)
		}
	}

	return row, nil
}

func decodeRow(row actionLogRow) (domain.ActionLog, error) {
	entry := domain.ActionLog{
		ActionID:     row.ActionID,
		Timestamp:    row.Timestamp,
		SKUID:        row.SKUID,
		SKUName:      row.SKUName,
		Category:     row.Category,
		Region:       row.Region,
		Store:        row.Store,
		ActionType:   domain.ActionType(row.ActionType),
		Status:       domain.ActionStatus(row.Status),
		Owner:        row.Owner,
		Notes:        row.Notes,
		OutcomeLabel: domain.OutcomeLabel(row.OutcomeLabel),
		AutoComment:  row.AutoComment,
	}

	if err := json.Unmarshal(row.ActionPayload, &entry.ActionPayload); err != nil {
		return domain.ActionLog{}, fmt.Errorf("decode action payload for %s: %w", row.ActionID, err)
	}
	if err := json.Unmarshal(row.RationaleMetrics, &entry.RationaleMetrics); err != nil {
		return domain.ActionLog{}, fmt.Errorf("decode rationale metrics for %s: %w", row.ActionID, err)
	}

	if len(row.Evaluation) > 0 {
		entry.Evaluation = &domain.Evaluation{}
		if err := json.Unmarshal(row.Evaluation, entry.Evaluation); err != nil {
			return domain.ActionLog{}, fmt.Errorf("decode evaluation for %s: %w", row.ActionID, err)
		}
	}
	if len(row.KPISnapshotBefore) > 0 {
		entry.KPISnapshotBefore = &domain.KPISnapshot{}
		if err := json.Unmarshal(row.KPISnapshotBefore, entry.KPISnapshotBefore); err != nil {
			return domain.ActionLog{}, fmt.Errorf("decode before snapshot for %s: %w", row.ActionID, err)
		}
	}
	if len(row.KPISnapshotAfter) > 0 {
		entry.KPISnapshotAfter = &domain.KPISnapshot{}
		if err := json.Unmarshal(row.KPISnapshotAfter, entry.KPISnapshotAfter); err != nil {
			return domain.ActionLog{}, fmt.Errorf("decode after snapshot for %s: %w", row.ActionID, err)
		}
	}

	return entry, nil
}

func decodeRows(rows []actionLogRow) ([]domain.ActionLog, error) {
	logs := make([]domain.ActionLog, 0, len(rows))
	for _, row := range rows {
		entry, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, nil
}
