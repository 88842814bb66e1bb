package domain

import (
	"context"

	"shopguide/internal/core/filters"
)

// StorePort is the product store capability
// implementations return rows as raw attribute maps and must tolerate
// the same predicate being retried with spec predicates stripped
type StorePort interface {
	Query(ctx context.Context, p Predicate) ([]map[string]any, error)
}

// EventSink records search telemetry; failures never affect results
type EventSink interface {
	Record(ctx context.Context, e Event) error
}

// ServicePort is the inbound search capability
type ServicePort interface {
	Search(ctx context.Context, f filters.SearchFilters, limit int, excludeIDs []string) (Outcome, error)
}
