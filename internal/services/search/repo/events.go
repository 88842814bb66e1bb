package repo

import (
	"context"

	"shopguide/internal/platform/store"
	"shopguide/internal/services/search/domain"
)

// EventsTable is the ClickHouse table search telemetry lands in
const EventsTable = "search_events"

// EventsDDL creates EventsTable
const EventsDDL = `CREATE TABLE IF NOT EXISTS search_events (
	at           DateTime64(3, 'UTC'),
	category     LowCardinality(String),
	product_type LowCardinality(String),
	step         UInt8,
	sampled      Bool,
	results      UInt16,
	lim          UInt16,
	had_price    Bool,
	degraded     Bool,
	elapsed_ms   UInt32
) ENGINE = MergeTree
ORDER BY (category, at)
TTL toDateTime(at) + INTERVAL 90 DAY`

// EnsureEventsTable creates EventsTable when it is missing
func EnsureEventsTable(ctx context.Context, ch store.Clickhouse) error {
	return ch.Exec(ctx, EventsDDL)
}

// CHSink writes search events to ClickHouse
type CHSink struct {
	ch store.Clickhouse
}

// NewCHSink returns a sink over ch, or a no op sink when ch is nil
func NewCHSink(ch store.Clickhouse) domain.EventSink {
	if ch == nil {
		return Noop{}
	}
	return &CHSink{ch: ch}
}

// Record implements domain.EventSink
func (s *CHSink) Record(ctx context.Context, e domain.Event) error {
	return s.ch.Insert(ctx, EventsTable, [][]any{{
		e.At, e.Category, e.ProductType, uint8(e.Step), e.Sampled,
		uint16(e.Results), uint16(e.Limit), e.HadPrice, e.Degraded, uint32(max(e.ElapsedMS, 0)),
	}})
}

// Noop discards events
type Noop struct{}

// Record implements domain.EventSink
func (Noop) Record(context.Context, domain.Event) error { return nil }
