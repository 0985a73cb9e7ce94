package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, created_at, session_id, action, level, planned_count, questions_asked, answered, duration_secs)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		seqNum, time.Now().UnixMilli(), data.SessionID, data.Action, data.Level,
		data.PlannedCount, data.QuestionsAsked, data.Answered, data.DurationSecs)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	var w whereBuilder
	w.apply(opts)
	query := `SELECT id, sequence, created_at, session_id, action, level, planned_count,
		questions_asked, answered, duration_secs FROM session_events` + w.String() +
		" ORDER BY sequence DESC" + w.limitClause(opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var rec SessionEventRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &createdAt, &rec.SessionID, &rec.Action,
			&rec.Level, &rec.PlannedCount, &rec.QuestionsAsked, &rec.Answered, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
