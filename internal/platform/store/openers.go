package store

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	chx "shopguide/internal/platform/store/ch"
	"shopguide/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

// pool readiness defaults for openPG
var (
	pingAttempts = 20
	pingTimeout  = 3 * time.Second
	pingBackoff  = 150 * time.Millisecond
	pingCeiling  = 2 * time.Second
)

// openPG opens the pool and publishes the adapter once a ping succeeds
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}
	attempts := cmp.Or(cfg.PG.ConnectRetries, pingAttempts)
	timeout := cmp.Or(cfg.PG.PingTimeout, pingTimeout)
	if err := retryPing(ctx, attempts, timeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	a := newPGAdapter(p)
	s.PG = a
	return a, nil
}

// retryPing calls ping up to attempts times with doubling waits capped at pingCeiling
func retryPing(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	var err error
	wait := pingBackoff
	for attempt := 1; attempt <= attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, pingCeiling)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, err)
}

// openCH opens a lazy clickhouse connection, reachability is left to Guard
func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	role := cfg.CH.Role
	if role == "" {
		role = cfg.AppName
	}
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: role})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

// openRedis connects and pings once, sessions are useless without it
func openRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	opt := &redis.Options{
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
	}
	if strings.HasPrefix(cfg.RDS.Addr, "redis://") || strings.HasPrefix(cfg.RDS.Addr, "rediss://") {
		parsed, err := redis.ParseURL(cfg.RDS.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		opt = parsed
	}
	rdb := redis.NewClient(opt)

	toCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(toCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opt.Addr, err)
	}
	return rdb, nil
}
