// Package repo provides clickhouse access for search telemetry stats
package repo

import (
	"context"

	"shopguide/internal/platform/store"
)

// Repo is the minimal persistence surface for stats
type Repo interface {
	Steps(ctx context.Context, start, end, category string) ([]RowStep, error)
	Categories(ctx context.Context, start, end string, limit int) ([]RowCategory, error)
}

// RowStep is a searches-per-step row
type RowStep struct {
	Step       int64
	Searches   int64
	AvgResults float64
	Sampled    int64
}

// RowCategory is a searches-per-category row
type RowCategory struct {
	Category     string
	Searches     int64
	NoResults    int64
	Degraded     int64
	Relaxed      int64
	AvgElapsedMS float64
}

type queries struct{ ch store.Clickhouse }

// NewCH returns a Repo over the search_events table
func NewCH(ch store.Clickhouse) Repo { return &queries{ch: ch} }

func (r *queries) Steps(ctx context.Context, start, end, category string) ([]RowStep, error) {
	const sql = `
SELECT toInt64(step), toInt64(count()), avg(results), toInt64(countIf(sampled))
FROM search_events
WHERE toDate(at) BETWEEN toDate(?) AND toDate(?)
AND (? = '' OR lower(category) = lower(?))
GROUP BY step
ORDER BY step ASC
`
	rows, err := r.ch.Query(ctx, sql, start, end, category, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowStep
	for rows.Next() {
		var rr RowStep
		if err := rows.Scan(&rr.Step, &rr.Searches, &rr.AvgResults, &rr.Sampled); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Categories(ctx context.Context, start, end string, limit int) ([]RowCategory, error) {
	const sql = `
SELECT category,
	toInt64(count()),
	toInt64(countIf(results = 0)),
	toInt64(countIf(degraded)),
	toInt64(countIf(step > 1)),
	avg(elapsed_ms)
FROM search_events
WHERE toDate(at) BETWEEN toDate(?) AND toDate(?)
GROUP BY category
ORDER BY count() DESC, category ASC
LIMIT ?
`
	rows, err := r.ch.Query(ctx, sql, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowCategory
	for rows.Next() {
		var rr RowCategory
		if err := rows.Scan(&rr.Category, &rr.Searches, &rr.NoResults, &rr.Degraded, &rr.Relaxed, &rr.AvgElapsedMS); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
