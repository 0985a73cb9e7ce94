package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// reviewRepo implements ReviewRepo.
type reviewRepo struct {
	db *sql.DB
}

func (r *reviewRepo) SaveReview(ctx context.Context, rv Review) (int, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return 0, fmt.Errorf("rating %d out of range 1-5", rv.Rating)
	}

	var id int
	err := r.db.QueryRowContext(ctx, `INSERT INTO reviews
		(created_at, session_id, level, rating, comment, average_score)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		time.Now().UnixMilli(), rv.SessionID, rv.Level, rv.Rating,
		strings.TrimSpace(rv.Comment), rv.AverageScore,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save review: %w", err)
	}
	return id, nil
}

func (r *reviewRepo) ListReviews(ctx context.Context, limit int) ([]ReviewRecord, error) {
	var w whereBuilder
	query := `SELECT id, created_at, session_id, level, rating, comment, average_score
		FROM reviews ORDER BY id DESC` + w.limitClause(limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var out []ReviewRecord
	for rows.Next() {
		var rec ReviewRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &createdAt, &rec.SessionID, &rec.Level, &rec.Rating,
			&rec.Comment, &rec.AverageScore); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rec.Timestamp = time.UnixMilli(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *reviewRepo) Stats(ctx context.Context) (ReviewStats, error) {
	stats := ReviewStats{ByLevelCount: map[string]int{}}

	rows, err := r.db.QueryContext(ctx, `SELECT level, COUNT(*),
		COALESCE(SUM(rating), 0), COALESCE(SUM(average_score), 0)
		FROM reviews GROUP BY level`)
	if err != nil {
		return stats, fmt.Errorf("query review stats: %w", err)
	}
	defer rows.Close()

	var ratingSum, scoreSum float64
	for rows.Next() {
		var level string
		var count int
		var rs, ss float64
		if err := rows.Scan(&level, &count, &rs, &ss); err != nil {
			return stats, fmt.Errorf("scan review stats: %w", err)
		}
		stats.ByLevelCount[level] = count
		stats.Count += count
		ratingSum += rs
		scoreSum += ss
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}
	if stats.Count > 0 {
		stats.AvgRating = ratingSum / float64(stats.Count)
		stats.AvgScore = scoreSum / float64(stats.Count)
	}
	return stats, nil
}
