// Package postgres persists per-trace GateResults to a Postgres trend-history
// table, keyed by run ID and trace name. The core gating pipeline has no
// dependency on this package: it is a pure sink for already-computed results,
// wired in only when GATE_HISTORY_DATABASE_URL is set.
//
// Grounded on adapters/postgres/hypothesis_repository.go's
// sqlx.DB/ExecContext/ON CONFLICT idiom.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gatekeeper/domain/core"
	"gatekeeper/domain/verdict"
	"gatekeeper/internal/errors"
)

// HistoryRepository persists gate run results for trend queries across CI runs.
type HistoryRepository struct {
	db *sqlx.DB
}

// Open connects to dsn and returns a ready HistoryRepository. Callers should
// Close() it when the run completes.
func Open(dsn string) (*HistoryRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError("connecting to history database"), err.Error())
	}
	return &HistoryRepository{db: db}, nil
}

func (r *HistoryRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the gate_results table if it does not already exist.
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS gate_results (
			run_id       TEXT NOT NULL,
			trace_name   TEXT NOT NULL,
			fingerprint  TEXT NOT NULL,
			status       TEXT NOT NULL,
			reason       TEXT NOT NULL,
			inconclusive BOOLEAN NOT NULL,
			details      JSONB NOT NULL,
			recorded_at  TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (run_id, trace_name)
		)`)
	if err != nil {
		return errors.Wrap(errors.DatabaseError("creating gate_results schema"), err.Error())
	}
	return nil
}

// SaveRun persists every result of one orchestrator run.
func (r *HistoryRepository) SaveRun(ctx context.Context, runID core.RunID, fingerprint core.RunFingerprint, results []verdict.GateResult) error {
	recordedAt := time.Now()
	for _, res := range results {
		detailsJSON, err := json.Marshal(res.Details)
		if err != nil {
			return errors.Wrap(errors.InternalError("marshaling gate result details"), err.Error())
		}

		_, err = r.db.ExecContext(ctx, `
			INSERT INTO gate_results (run_id, trace_name, fingerprint, status, reason, inconclusive, details, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (run_id, trace_name) DO UPDATE SET
				fingerprint  = EXCLUDED.fingerprint,
				status       = EXCLUDED.status,
				reason       = EXCLUDED.reason,
				inconclusive = EXCLUDED.inconclusive,
				details      = EXCLUDED.details,
				recorded_at  = EXCLUDED.recorded_at`,
			runID.String(), res.Name, fingerprint.String(), string(res.Status), res.Reason, res.Inconclusive, detailsJSON, recordedAt)
		if err != nil {
			return errors.Wrap(errors.DatabaseError("saving gate result"), err.Error())
		}
	}
	return nil
}

// TraceHistory is one historical row for a named trace.
type TraceHistory struct {
	RunID       string    `db:"run_id"`
	TraceName   string    `db:"trace_name"`
	Fingerprint string    `db:"fingerprint"`
	Status      string    `db:"status"`
	Reason      string    `db:"reason"`
	RecordedAt  time.Time `db:"recorded_at"`
}

// QueryTrend returns up to limit historical rows for name, most recent first.
func (r *HistoryRepository) QueryTrend(ctx context.Context, name string, limit int) ([]TraceHistory, error) {
	var rows []TraceHistory
	err := r.db.SelectContext(ctx, &rows, `
		SELECT run_id, trace_name, fingerprint, status, reason, recorded_at
		FROM gate_results
		WHERE trace_name = $1
		ORDER BY recorded_at DESC
		LIMIT $2`, name, limit)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError("querying trace history"), err.Error())
	}
	return rows, nil
}
