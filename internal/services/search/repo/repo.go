// Package repo provides product store and telemetry implementations for search
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopguide/internal/modkit/repokit"
	"shopguide/internal/platform/store"
	"shopguide/internal/services/search/domain"
)

type binder struct{}

// NewPG returns a binder for the Postgres product store
func NewPG() repokit.Binder[domain.StorePort] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorePort { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

// StatementTimeout returns a begin hook bounding every statement in the tx
func StatementTimeout(d time.Duration) repokit.BeginHook {
	sql := fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds())
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, sql)
		return err
	}
}

type txStore struct{ tx repokit.TxRunner }

// NewPGTx returns a product store that runs each query in its own read
// transaction, bounded by timeout when it is positive
func NewPGTx(tx repokit.TxRunner, timeout time.Duration) domain.StorePort {
	if timeout > 0 {
		tx = repokit.WithBeginHooks(tx, StatementTimeout(timeout))
	}
	return &txStore{tx: tx}
}

// Query implements domain.StorePort
func (s *txStore) Query(ctx context.Context, p domain.Predicate) ([]map[string]any, error) {
	var out []map[string]any
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		var err error
		out, err = NewPG().Bind(q).Query(ctx, p)
		return err
	})
	return out, err
}

const productColumns = `id, name, category, product_type, brand, gpu_vendor, cpu_vendor,
	color, price_cents, genre, format, specs`

// spec predicate column expressions over the specs document
var specExpr = map[string]string{
	domain.SpecRAMGB:        "(p.specs->>'ram_gb')::numeric",
	domain.SpecStorageGB:    "(p.specs->>'storage_gb')::numeric",
	domain.SpecScreenIn:     "(p.specs->>'screen_in')::numeric",
	domain.SpecBatteryHours: "(p.specs->>'battery_hours')::numeric",
}

// Query implements domain.StorePort
func (s *pg) Query(ctx context.Context, p domain.Predicate) ([]map[string]any, error) {
	sql, args := buildQuery(p)
	return store.Maps(ctx, s.q, sql, args...)
}

// buildQuery renders p as SQL with numbered args
func buildQuery(p domain.Predicate) (string, []any) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT " + productColumns + "\nFROM products p\nWHERE true\n")

	if p.Category != "" {
		sb.WriteString("  AND lower(p.category) = lower(" + arg(p.Category) + ")\n")
	}
	anyOf := func(col string, vals []string) {
		if len(vals) == 0 {
			return
		}
		sb.WriteString("  AND lower(p." + col + ") = ANY(" + arg(lowerAll(vals)) + ")\n")
	}
	anyOf("product_type", p.ProductTypes)
	anyOf("brand", p.Brands)
	anyOf("gpu_vendor", p.GPUVendors)
	anyOf("cpu_vendor", p.CPUVendors)
	anyOf("color", p.Colors)

	if p.Genre != "" {
		sb.WriteString("  AND lower(p.genre) = lower(" + arg(p.Genre) + ")\n")
	}
	if p.Format != "" {
		sb.WriteString("  AND lower(p.format) = lower(" + arg(p.Format) + ")\n")
	}
	if p.PriceMinCents != nil {
		sb.WriteString("  AND p.price_cents >= " + arg(*p.PriceMinCents) + "\n")
	}
	if p.PriceMaxCents != nil {
		op := "<="
		if p.MaxExclusive {
			op = "<"
		}
		sb.WriteString("  AND p.price_cents " + op + " " + arg(*p.PriceMaxCents) + "\n")
	}

	spec := func(key, op string, v *float64) {
		if v == nil {
			return
		}
		sb.WriteString("  AND " + specExpr[key] + " " + op + " " + arg(*v) + "\n")
	}
	spec(domain.SpecRAMGB, ">=", p.Specs.MinRAMGB)
	spec(domain.SpecStorageGB, ">=", p.Specs.MinStorageGB)
	spec(domain.SpecScreenIn, ">=", p.Specs.MinScreenIn)
	spec(domain.SpecScreenIn, "<=", p.Specs.MaxScreenIn)
	spec(domain.SpecBatteryHours, ">=", p.Specs.MinBatteryHours)

	if len(p.ExcludeIDs) > 0 {
		sb.WriteString("  AND NOT (p.id = ANY(" + arg(p.ExcludeIDs) + "))\n")
	}

	switch p.Order {
	case domain.OrderPriceAsc:
		sb.WriteString("ORDER BY p.price_cents ASC, p.id\n")
	default:
		sb.WriteString("ORDER BY p.id\n")
	}
	if p.Limit > 0 {
		sb.WriteString("LIMIT " + arg(p.Limit))
	}
	return sb.String(), args
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
