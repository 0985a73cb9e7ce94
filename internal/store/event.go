package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

// sequenceCounter hands out the global sequence number shared by every
// event table, so LLM calls and session transitions can be ordered against
// each other. The mutex serializes within the process; RETURNING makes the
// increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO global_sequence (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// whereBuilder accumulates filter clauses with numbered placeholders, which
// both pgx and modernc sqlite accept.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// apply adds the QueryOpts filters shared by every event table.
func (w *whereBuilder) apply(opts QueryOpts) {
	if opts.After > 0 {
		w.add("sequence > ?", opts.After)
	}
	if opts.Before > 0 {
		w.add("sequence < ?", opts.Before)
	}
	if !opts.From.IsZero() {
		w.add("created_at >= ?", opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		w.add("created_at <= ?", opts.To.UnixMilli())
	}
	if opts.SessionID != "" {
		w.add("session_id = ?", opts.SessionID)
	}
}

// limitClause appends a LIMIT placeholder when limit is positive.
func (w *whereBuilder) limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	w.args = append(w.args, limit)
	return fmt.Sprintf(" LIMIT $%d", len(w.args))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
