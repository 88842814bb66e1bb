package module

import (
	"strconv"
	"time"

	"shopguide/internal/core/filters"
	"shopguide/internal/platform/config"
	"shopguide/internal/platform/logger"
	"shopguide/internal/services/search/service"
)

// Options holds configuration settings for the search module
type Options struct {
	Service     service.Config
	CatalogPath string

	// StatementTimeout bounds each postgres product query; zero disables it
	StatementTimeout time.Duration
}

// FromConfig reads SEARCH_* settings; category floors are dollars keyed by category
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SEARCH_")
	def := service.DefaultConfig()

	floors := map[string]int64{}
	for k, v := range sc.MayKV("CATEGORY_FLOORS", map[string]string{"electronics": "50"}) {
		dollars, err := strconv.ParseFloat(v, 64)
		if err != nil || dollars < 0 {
			logger.Get().Warn().Str("category", k).Str("value", v).Msg("invalid category floor; skipped")
			continue
		}
		floors[k] = filters.Cents(dollars)
	}

	return Options{
		Service: service.Config{
			DefaultLimit:   sc.MayCount("DEFAULT_LIMIT", def.DefaultLimit),
			MaxLimit:       sc.MayCount("MAX_LIMIT", def.MaxLimit),
			FloorRatio:     sc.MayRatio("FLOOR_RATIO", def.FloorRatio),
			CategoryFloors: floors,
			Bands:          sc.MayCount("BANDS", def.Bands),
			MinPerBand:     sc.MayCount("MIN_PER_BAND", def.MinPerBand),
			PoolFactor:     sc.MayCount("POOL_FACTOR", def.PoolFactor),
			PoolCap:        sc.MayCount("POOL_CAP", def.PoolCap),
		},
		CatalogPath:      sc.MayString("CATALOG_PATH", ""),
		StatementTimeout: sc.MayDuration("STATEMENT_TIMEOUT", 2*time.Second),
	}
}
