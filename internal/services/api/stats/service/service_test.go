package service

import (
	"context"
	"errors"
	"testing"

	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/api/stats/domain"
	"shopguide/internal/services/api/stats/repo"
)

type fakeRepo struct {
	limit int
	cat   string
	err   error
}

func (f *fakeRepo) Steps(_ context.Context, _, _, category string) ([]repo.RowStep, error) {
	f.cat = category
	return []repo.RowStep{{Step: 2, Searches: 3, AvgResults: 4, Sampled: 1}}, f.err
}

func (f *fakeRepo) Categories(_ context.Context, _, _ string, limit int) ([]repo.RowCategory, error) {
	f.limit = limit
	return []repo.RowCategory{{Category: "Books", Searches: 9}}, f.err
}

var august = domain.TimeRange{Start: "2025-08-01", End: "2025-08-31"}

func TestSteps(t *testing.T) {
	r := &fakeRepo{}
	got, err := New(r).Steps(context.Background(), domain.StepsInput{Range: august, Category: "Books"})
	if err != nil {
		t.Fatalf("Steps: %v", err)
	}
	if len(got) != 1 || got[0].Step != 2 || r.cat != "Books" {
		t.Fatalf("got %+v cat=%q", got, r.cat)
	}
}

func TestCategories_DefaultLimit(t *testing.T) {
	r := &fakeRepo{}
	if _, err := New(r).Categories(context.Background(), domain.CategoriesInput{Range: august}); err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if r.limit != defaultCategoryLimit {
		t.Fatalf("limit = %d", r.limit)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		svc  *Svc
		rng  domain.TimeRange
		code perr.ErrorCode
	}{
		{"no repo", New(nil), august, perr.ErrorCodeUnavailable},
		{"bad start", New(&fakeRepo{}), domain.TimeRange{Start: "08/01", End: "2025-08-31"}, perr.ErrorCodeInvalidArgument},
		{"inverted", New(&fakeRepo{}), domain.TimeRange{Start: "2025-09-01", End: "2025-08-31"}, perr.ErrorCodeInvalidArgument},
		{"query failed", New(&fakeRepo{err: errors.New("down")}), august, perr.ErrorCodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Steps(context.Background(), domain.StepsInput{Range: tt.rng})
			if !perr.IsCode(err, tt.code) {
				t.Fatalf("code = %v, want %v (%v)", perr.CodeOf(err), tt.code, err)
			}
		})
	}
}
