// Package service contains stats workflows
package service

import (
	"context"
	"time"

	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/api/stats/domain"
	"shopguide/internal/services/api/stats/repo"
)

const defaultCategoryLimit = 50

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo repo.Repo
}

// New constructs a stats service; a nil repo answers every call with Unavailable
func New(r repo.Repo) *Svc { return &Svc{Repo: r} }

// Steps returns how often each relaxation step answered a search
func (s *Svc) Steps(ctx context.Context, in domain.StepsInput) ([]domain.StepRow, error) {
	if err := s.check(in.Range); err != nil {
		return nil, err
	}
	rows, err := s.Repo.Steps(ctx, in.Range.Start, in.Range.End, in.Category)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "stats steps query failed")
	}
	out := make([]domain.StepRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.StepRow{
			Step:       int(r.Step),
			Searches:   r.Searches,
			AvgResults: r.AvgResults,
			Sampled:    r.Sampled,
		})
	}
	return out, nil
}

// Categories returns per category search volume and relaxation counts
func (s *Svc) Categories(ctx context.Context, in domain.CategoriesInput) ([]domain.CategoryRow, error) {
	if err := s.check(in.Range); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultCategoryLimit
	}
	rows, err := s.Repo.Categories(ctx, in.Range.Start, in.Range.End, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "stats categories query failed")
	}
	out := make([]domain.CategoryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CategoryRow{
			Category:     r.Category,
			Searches:     r.Searches,
			NoResults:    r.NoResults,
			Degraded:     r.Degraded,
			Relaxed:      r.Relaxed,
			AvgElapsedMS: r.AvgElapsedMS,
		})
	}
	return out, nil
}

func (s *Svc) check(tr domain.TimeRange) error {
	if s.Repo == nil {
		return perr.Unavailablef("search telemetry is not configured")
	}
	start, err := time.Parse(time.DateOnly, tr.Start)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("bad start date"), "range.start")
	}
	end, err := time.Parse(time.DateOnly, tr.End)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("bad end date"), "range.end")
	}
	if end.Before(start) {
		return perr.WithField(perr.InvalidArgf("end before start"), "range.end")
	}
	return nil
}
