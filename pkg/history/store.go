// Package history persists assistant runs to PostgreSQL.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/database"
)

// Store writes and reads the assistant_runs table.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over a migrated database client.
func NewStore(client *database.Client) *Store {
	return &Store{db: client.DB()}
}

var _ assistant.HistoryRecorder = (*Store)(nil)

// RecordRun inserts one run.
func (s *Store) RecordRun(ctx context.Context, rec *assistant.RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assistant_runs (
			run_id, assistant_name, user_id, team_id, model, input, output, error,
			prompt_tokens, completion_tokens, total_tokens, started_at, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.RunID, rec.AssistantName, rec.UserID, rec.TeamID, rec.Model,
		rec.Input, rec.Output, rec.Error,
		rec.Usage.PromptTokens, rec.Usage.CompletionTokens, rec.Usage.TotalTokens,
		rec.StartedAt, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assistant run %s: %w", rec.RunID, err)
	}
	return nil
}

// ListRuns returns the runs sharing runID in insertion order.
func (s *Store) ListRuns(ctx context.Context, runID string) ([]*assistant.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, assistant_name, user_id, team_id, model, input, output, error,
		       prompt_tokens, completion_tokens, total_tokens, started_at, duration_ms
		FROM assistant_runs
		WHERE run_id = $1
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assistant runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*assistant.RunRecord
	for rows.Next() {
		var (
			rec        assistant.RunRecord
			durationMS int64
		)
		if err := rows.Scan(
			&rec.RunID, &rec.AssistantName, &rec.UserID, &rec.TeamID, &rec.Model,
			&rec.Input, &rec.Output, &rec.Error,
			&rec.Usage.PromptTokens, &rec.Usage.CompletionTokens, &rec.Usage.TotalTokens,
			&rec.StartedAt, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assistant run: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assistant runs: %w", err)
	}
	return runs, nil
}

// DeleteBefore removes runs started before cutoff and returns how many were
// deleted.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assistant_runs WHERE started_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assistant runs: %w", err)
	}
	return res.RowsAffected()
}
