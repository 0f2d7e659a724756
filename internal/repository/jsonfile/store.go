// internal/repository/jsonfile/store.go
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/rs/zerolog/log"
)

// Store keeps the whole action log collection in a single JSON document,
// read-modify-written on every save. A corrupt or missing file degrades to
// an empty collection; write failures propagate to the caller. Writers in
// separate processes are not coordinated: last write wins.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return &Store{path: path}, nil
}

func (s *Store) GetAll(ctx context.Context) ([]domain.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(), nil
}

func (s *Store) GetByID(ctx context.Context, actionID string) (*domain.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.readAll() {
		if entry.ActionID == actionID {
			found := entry
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetActiveBySKU(ctx context.Context, skuID string) ([]domain.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []domain.ActionLog
	for _, entry := range s.readAll() {
		if entry.SKUID == skuID && entry.Status.IsActive() {
			active = append(active, entry)
		}
	}
	return active, nil
}

func (s *Store) Save(ctx context.Context, entry domain.ActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.readAll()
	replaced := false
	for i := range logs {
		if logs[i].ActionID == entry.ActionID {
			logs[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, entry)
	}

	return s.writeAll(logs)
}

func (s *Store) UpdateStatus(ctx context.Context, actionID string, status domain.ActionStatus) error {
	return s.update(actionID, func(entry *domain.ActionLog) error {
		entry.Status = status
		return nil
	})
}

func (s *Store) AttachEvaluation(ctx context.Context, actionID string, evaluation domain.Evaluation) error {
	return s.update(actionID, func(entry *domain.ActionLog) error {
		entry.Evaluation = &evaluation
		return nil
	})
}

func (s *Store) AttachOutcome(ctx context.Context, actionID string, after domain.KPISnapshot, label domain.OutcomeLabel, comment string) error {
	return s.update(actionID, func(entry *domain.ActionLog) error {
		if entry.KPISnapshotAfter != nil {
			return repository.ErrOutcomeExists
		}
		entry.KPISnapshotAfter = &after
		entry.OutcomeLabel = label
		entry.AutoComment = comment
		entry.Status = domain.StatusEvaluated
		return nil
	})
}

func (s *Store) Filter(ctx context.Context, filter domain.ActionLogFilter) ([]domain.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.ActionLog
	for _, entry := range s.readAll() {
		if repository.MatchesFilter(entry, filter) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (s *Store) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.ActionLog
	for _, entry := range s.readAll() {
		if !entry.Timestamp.Before(start) && !entry.Timestamp.After(end) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear action log store: %w", err)
	}
	return nil
}

// update applies fn to the matching entry and persists the collection.
func (s *Store) update(actionID string, fn func(*domain.ActionLog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.readAll()
	for i := range logs {
		if logs[i].ActionID == actionID {
			if err := fn(&logs[i]); err != nil {
				return err
			}
			return s.writeAll(logs)
		}
	}
	return repository.ErrNotFound
}

// readAll loads the collection, degrading to empty on a missing or
// unreadable file so the caller never sees a read failure.
func (s *Store) readAll() []domain.ActionLog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("action log store unreadable, treating as empty")
		}
		return nil
	}

	var logs []domain.ActionLog
	if err := json.Unmarshal(data, &logs); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("action log store corrupt, treating as empty")
		return nil
	}
	return logs
}

func (s *Store) writeAll(logs []domain.ActionLog) error {
	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode action logs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write action log store: %w", err)
	}
	return nil
}
