package service

import (
	"context"

	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/search/domain"
)

// runState is shared by every store query of one search call
type runState struct {
	// specsDisabled is set once the store rejected spec predicates
	specsDisabled bool
}

// runStep executes one ladder step, stratified when a ceiling is active
func (s *Service) runStep(ctx context.Context, run *runState, base domain.Predicate, limit int) ([]domain.Product, bool, error) {
	if base.PriceMaxCents != nil {
		ps, err := s.stratified(ctx, run, base, limit)
		return ps, true, err
	}
	ps, err := s.pool(ctx, run, base, limit)
	return ps, false, err
}

// stratified splits [floor, ceiling] into equal bands and draws from each
// so the cheapest band cannot crowd out the rest
func (s *Service) stratified(ctx context.Context, run *runState, base domain.Predicate, limit int) ([]domain.Product, error) {
	lo := int64(0)
	if base.PriceMinCents != nil {
		lo = *base.PriceMinCents
	}
	hi := *base.PriceMaxCents
	if hi < lo {
		lo, hi = hi, lo
	}

	perBand := max(limit/s.cfg.Bands, s.cfg.MinPerBand)
	width := float64(hi-lo) / float64(s.cfg.Bands)

	seen := make(map[string]struct{})
	var out []domain.Product
	for i := 0; i < s.cfg.Bands; i++ {
		bandLo := lo + int64(width*float64(i))
		bandHi := hi
		last := i == s.cfg.Bands-1
		if !last {
			bandHi = lo + int64(width*float64(i+1))
		}
		if !last && bandHi <= bandLo {
			continue
		}

		p := base
		p.PriceMinCents = &bandLo
		p.PriceMaxCents = &bandHi
		p.MaxExclusive = !last
		p.Order = domain.OrderPriceAsc
		p.Limit = perBand

		rows, err := s.query(ctx, run, p)
		if err != nil {
			return nil, err
		}
		out = appendUnique(out, seen, rows)
	}
	return s.finish(out, limit), nil
}

// pool draws an oversized stable candidate set and samples from it
func (s *Service) pool(ctx context.Context, run *runState, base domain.Predicate, limit int) ([]domain.Product, error) {
	p := base
	p.Order = domain.OrderStable
	p.Limit = min(s.cfg.PoolFactor*limit, s.cfg.PoolCap)

	rows, err := s.query(ctx, run, p)
	if err != nil {
		return nil, err
	}
	out := appendUnique(nil, make(map[string]struct{}), rows)
	return s.finish(out, limit), nil
}

// query runs one predicate; a store that rejects the spec predicates gets one
// retry without them and spec predicates stay off for the rest of the call
func (s *Service) query(ctx context.Context, run *runState, p domain.Predicate) ([]map[string]any, error) {
	if run.specsDisabled {
		p = p.WithoutSpecs()
	}
	rows, err := s.store.Query(ctx, p)
	if err == nil {
		return rows, nil
	}
	if !p.HasSpecs() || !perr.IsUnsupportedPredicate(err) || ctx.Err() != nil {
		return nil, perr.SearchFailed(err, "search.query")
	}

	s.log.Warn().Err(err).Msg("store rejected spec predicates, retrying stripped")
	run.specsDisabled = true

	rows, err = s.store.Query(ctx, p.WithoutSpecs())
	if err != nil {
		return nil, perr.SearchFailed(err, "search.query_stripped")
	}
	return rows, nil
}

func (s *Service) finish(ps []domain.Product, limit int) []domain.Product {
	s.shuffle(len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
	if len(ps) > limit {
		ps = ps[:limit]
	}
	return ps
}

func appendUnique(out []domain.Product, seen map[string]struct{}, rows []map[string]any) []domain.Product {
	for _, r := range rows {
		p := domain.ProductFromRow(r)
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
