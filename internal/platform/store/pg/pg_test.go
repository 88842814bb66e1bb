package pg

import (
	"context"
	"errors"
	"testing"

	"shopguide/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_PoolConfig(t *testing.T) {
	testkit.Serial(t)

	var got *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		got = pc
		return &pgxpool.Pool{}, nil
	})

	cfg := Config{URL: "postgres://u:p@catalog:5432/shop?sslmode=disable", AppName: "shopguide-api", MaxConns: 6, SlowMs: 250}
	mutated := false
	p, err := Open(context.Background(), cfg, nil, func(*pgxpool.Config) { mutated = true })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !mutated {
		t.Fatalf("mutator not applied")
	}
	if got.MaxConns != 6 || got.ConnConfig.RuntimeParams["application_name"] != "shopguide-api" {
		t.Fatalf("max=%d app=%q", got.MaxConns, got.ConnConfig.RuntimeParams["application_name"])
	}
	if p.SlowMs != 250 || p.Pool == nil {
		t.Fatalf("unexpected PG %+v", p)
	}
}

func TestOpen_PoolError(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("dial refused")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@catalog:5432/shop"}, nil, nil); err == nil {
		t.Fatalf("expected pool error")
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
