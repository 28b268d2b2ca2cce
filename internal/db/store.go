package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Store persists runs, their step history, and context snapshots.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	RunID       string
	ClientName  string
	CreatedAt   string
	UpdatedAt   string
	Status      string
	CurrentStep int
}

// StepRecord is one executed step within a run.
type StepRecord struct {
	RunID      string
	StepNumber int
	StepName   string
	Status     string
	Errors     []string
	Warnings   []string
	StartedAt  string
	EndedAt    string
}

// CreateRun inserts a new run with its initial context snapshot.
func (s *Store) CreateRun(ctx context.Context, runID, clientName, contextJSON string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, `INSERT INTO runs(run_id, client_name, created_at, updated_at, status, current_step, context_json)
		VALUES(?, ?, ?, ?, ?, 0, ?)`,
		runID, clientName, now, now, RunStatusRunning, contextJSON); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// CommitStep records an executed step and the post-step context snapshot in
// one transaction, so a resume never sees a snapshot without its step.
// current_step advances only for successful steps: a resume picks up at the
// step that failed, not after it.
func (s *Store) CommitStep(ctx context.Context, step StepRecord, contextJSON, runStatus string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin commit step: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO steps(run_id, step_number, step_name, status, errors_json, warnings_json, started_at, ended_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		step.RunID, step.StepNumber, step.StepName, step.Status,
		marshalStrings(step.Errors), marshalStrings(step.Warnings),
		step.StartedAt, step.EndedAt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert step: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	var err2 error
	if step.Status == RunStatusCompleted {
		_, err2 = tx.ExecContext(ctx, `UPDATE runs SET updated_at=?, status=?, current_step=?, context_json=? WHERE run_id=?`,
			now, runStatus, step.StepNumber, contextJSON, step.RunID)
	} else {
		_, err2 = tx.ExecContext(ctx, `UPDATE runs SET updated_at=?, status=?, context_json=? WHERE run_id=?`,
			now, runStatus, contextJSON, step.RunID)
	}
	if err2 != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update run: %w", err2)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit step: %w", err)
	}
	return nil
}

// FinishRun sets the terminal status of a run.
func (s *Store) FinishRun(ctx context.Context, runID, status string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, `UPDATE runs SET status=?, updated_at=? WHERE run_id=?`,
		status, now, runID); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun returns the run record and its latest context snapshot.
func (s *Store) GetRun(ctx context.Context, runID string) (RunRecord, string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT run_id, client_name, created_at, updated_at, status, current_step, context_json
		FROM runs WHERE run_id=?`, runID)
	var r RunRecord
	var contextJSON string
	if err := row.Scan(&r.RunID, &r.ClientName, &r.CreatedAt, &r.UpdatedAt, &r.Status, &r.CurrentStep, &contextJSON); err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, "", fmt.Errorf("run %s not found", runID)
		}
		return RunRecord{}, "", fmt.Errorf("read run: %w", err)
	}
	return r, contextJSON, nil
}

// LatestRunForClient returns the most recent run for a client, or empty
// record when the client has none.
func (s *Store) LatestRunForClient(ctx context.Context, clientName string) (RunRecord, string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT run_id, client_name, created_at, updated_at, status, current_step, context_json
		FROM runs WHERE client_name=? ORDER BY created_at DESC LIMIT 1`, clientName)
	var r RunRecord
	var contextJSON string
	if err := row.Scan(&r.RunID, &r.ClientName, &r.CreatedAt, &r.UpdatedAt, &r.Status, &r.CurrentStep, &contextJSON); err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, "", nil
		}
		return RunRecord{}, "", fmt.Errorf("read latest run: %w", err)
	}
	return r, contextJSON, nil
}

// ListRuns returns runs newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT run_id, client_name, created_at, updated_at, status, current_step FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.ClientName, &r.CreatedAt, &r.UpdatedAt, &r.Status, &r.CurrentStep); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// StepHistory returns the executed steps of a run in execution order.
func (s *Store) StepHistory(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, step_number, step_name, status, errors_json, warnings_json, started_at, ended_at
		FROM steps WHERE run_id=? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var steps []StepRecord
	for rows.Next() {
		var rec StepRecord
		var errorsJSON, warningsJSON sql.NullString
		if err := rows.Scan(&rec.RunID, &rec.StepNumber, &rec.StepName, &rec.Status, &errorsJSON, &warningsJSON, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		rec.Errors = unmarshalStrings(errorsJSON)
		rec.Warnings = unmarshalStrings(warningsJSON)
		steps = append(steps, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// RetentionPolicy controls run cleanup.
type RetentionPolicy struct {
	KeepLast int
	KeepDays int
}

// PruneResult summarizes a prune operation.
type PruneResult struct {
	Considered int
	Kept       int
	Deleted    int
}

// PruneRuns deletes old run records. Running runs are always kept; beyond
// that a run survives if it is within KeepLast newest or newer than
// KeepDays.
func (s *Store) PruneRuns(ctx context.Context, policy RetentionPolicy, dryRun bool) (PruneResult, error) {
	if policy.KeepLast <= 0 && policy.KeepDays <= 0 {
		return PruneResult{}, nil
	}
	cutoff := time.Time{}
	if policy.KeepDays > 0 {
		cutoff = time.Now().UTC().Add(-time.Duration(policy.KeepDays) * 24 * time.Hour)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		return PruneResult{}, err
	}

	res := PruneResult{Considered: len(runs)}
	for idx, run := range runs {
		keep := run.Status == RunStatusRunning
		if !keep && policy.KeepLast > 0 && idx < policy.KeepLast {
			keep = true
		}
		if !keep && policy.KeepDays > 0 {
			createdAt, parseErr := time.Parse(time.RFC3339, run.CreatedAt)
			if parseErr != nil || createdAt.After(cutoff) {
				keep = true
			}
		}
		if keep {
			res.Kept++
			continue
		}
		if !dryRun {
			if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE run_id=?`, run.RunID); err != nil {
				return res, fmt.Errorf("delete run %s: %w", run.RunID, err)
			}
			log.Debug().Str("run_id", run.RunID).Msg("pruned run")
		}
		res.Deleted++
	}
	return res, nil
}

func marshalStrings(values []string) any {
	if len(values) == 0 {
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return string(data)
}

func unmarshalStrings(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(value.String), &out); err != nil {
		return nil
	}
	return out
}
