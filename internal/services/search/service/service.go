// Package service implements the search relaxation engine
package service

import (
	"context"
	"math/rand/v2"
	"time"

	"shopguide/internal/core/filters"
	perr "shopguide/internal/platform/errors"
	"shopguide/internal/platform/logger"
	"shopguide/internal/services/search/domain"
)

// Config holds the relaxation and sampling policy
type Config struct {
	DefaultLimit int
	MaxLimit     int

	// FloorRatio synthesizes a floor from a lone ceiling
	FloorRatio float64
	// CategoryFloors in cents keyed by lower case category
	CategoryFloors map[string]int64

	Bands      int
	MinPerBand int
	PoolFactor int
	PoolCap    int
}

// DefaultConfig returns the documented policy
func DefaultConfig() Config {
	return Config{
		DefaultLimit:   12,
		MaxLimit:       60,
		FloorRatio:     0.5,
		CategoryFloors: map[string]int64{"electronics": 5000},
		Bands:          4,
		MinPerBand:     5,
		PoolFactor:     3,
		PoolCap:        300,
	}
}

// Option customizes a Service
type Option func(*Service)

// WithSink records telemetry per search
func WithSink(sink domain.EventSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithShuffle replaces the shuffle used to randomize result order
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(s *Service) { s.shuffle = fn }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// Service implements domain.ServicePort
type Service struct {
	store   domain.StorePort
	sink    domain.EventSink
	cfg     Config
	shuffle func(n int, swap func(i, j int))
	log     *logger.Logger
	now     func() time.Time
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs a Service over store
func New(store domain.StorePort, cfg Config, opts ...Option) *Service {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.Bands <= 0 {
		cfg.Bands = def.Bands
	}
	if cfg.MinPerBand <= 0 {
		cfg.MinPerBand = def.MinPerBand
	}
	if cfg.PoolFactor <= 0 {
		cfg.PoolFactor = def.PoolFactor
	}
	if cfg.PoolCap <= 0 {
		cfg.PoolCap = def.PoolCap
	}
	s := &Service{
		store:   store,
		cfg:     cfg,
		shuffle: rand.Shuffle,
		log:     logger.Named("search"),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search walks the relaxation ladder and returns the first non empty step
func (s *Service) Search(ctx context.Context, f filters.SearchFilters, limit int, excludeIDs []string) (domain.Outcome, error) {
	start := s.now()
	f = f.Clone()
	limit = s.clampLimit(limit)

	run := &runState{}
	var out domain.Outcome
	for _, r := range s.ladder(f, excludeIDs) {
		if err := ctx.Err(); err != nil {
			return domain.Outcome{}, perr.SearchFailed(err, "search.ladder")
		}
		products, sampled, err := s.runStep(ctx, run, r.pred, limit)
		if err != nil {
			return domain.Outcome{}, err
		}
		s.log.Debug().Int("step", r.step).Int("rows", len(products)).Bool("sampled", sampled).Msg("ladder step")
		if len(products) > 0 {
			out = domain.Outcome{Products: products, Step: r.step, Sampled: sampled}
			break
		}
		if r.step == maxSteps {
			out = domain.Outcome{Products: []domain.Product{}, NoResults: true}
		}
	}

	s.log.Info().
		Str("category", f.Category).
		Int("step", out.Step).
		Int("results", len(out.Products)).
		Bool("no_results", out.NoResults).
		Bool("degraded", run.specsDisabled).
		Msg("search complete")
	s.record(ctx, f, out, limit, run.specsDisabled, start)
	return out, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

func (s *Service) record(ctx context.Context, f filters.SearchFilters, out domain.Outcome, limit int, degraded bool, start time.Time) {
	if s.sink == nil {
		return
	}
	var pt string
	if len(f.ProductTypes) > 0 {
		pt = f.ProductTypes[0]
	}
	ev := domain.Event{
		At:          start.UTC(),
		Category:    f.Category,
		ProductType: pt,
		Step:        out.Step,
		Sampled:     out.Sampled,
		Results:     len(out.Products),
		Limit:       limit,
		HadPrice:    f.HasPriceRange(),
		Degraded:    degraded,
		ElapsedMS:   s.now().Sub(start).Milliseconds(),
	}
	if err := s.sink.Record(ctx, ev); err != nil {
		s.log.Warn().Err(err).Msg("search telemetry dropped")
	}
}
