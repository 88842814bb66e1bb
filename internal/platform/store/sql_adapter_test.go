package store

import (
	"context"
	"errors"
	"testing"

	"shopguide/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxRows struct {
	names  []string
	left   int
	closed bool
}

func (r *pgxRows) Close()                        { r.closed = true }
func (r *pgxRows) Err() error                    { return nil }
func (r *pgxRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT 1") }
func (r *pgxRows) Values() ([]any, error)        { return nil, nil }
func (r *pgxRows) RawValues() [][]byte           { return nil }
func (r *pgxRows) Conn() *pgx.Conn               { return nil }
func (r *pgxRows) Scan(...any) error             { return nil }

func (r *pgxRows) Next() bool {
	r.left--
	return r.left >= 0
}

func (r *pgxRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.names))
	for i, n := range r.names {
		out[i].Name = n
	}
	return out
}

type pgxRow struct{ err error }

func (r pgxRow) Scan(...any) error { return r.err }

type pgxStub struct {
	err  error
	rows *pgxRows
}

func (s *pgxStub) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 3"), s.err
}

func (s *pgxStub) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *pgxStub) QueryRow(context.Context, string, ...any) pgx.Row { return pgxRow{err: s.err} }

type tracerFunc func(pg.QueryEvent)

func (f tracerFunc) OnQuery(_ context.Context, ev pg.QueryEvent) { f(ev) }

func TestTraced_EmitsPerStatement(t *testing.T) {
	t.Parallel()

	var events []pg.QueryEvent
	stub := &pgxStub{rows: &pgxRows{names: []string{"id", "price_cents"}, left: 1}}
	q := traced{q: stub, tracer: tracerFunc(func(ev pg.QueryEvent) { events = append(events, ev) }), slowMs: 0}
	ctx := context.Background()

	tag, err := q.Exec(ctx, "UPDATE products SET price_cents = $1", 1999)
	if err != nil || tag.RowsAffected() != 3 || tag.String() != "UPDATE 3" {
		t.Fatalf("Exec = %v %v", tag, err)
	}

	rs, err := q.Query(ctx, "SELECT id, price_cents FROM products")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 2 || cols[1] != "price_cents" {
		t.Fatalf("Columns = %v", cols)
	}
	if !rs.Next() || rs.Next() {
		t.Fatalf("expected exactly one row")
	}
	rs.Close()
	if !stub.rows.closed {
		t.Fatalf("Close not forwarded")
	}

	r := q.QueryRow(ctx, "SELECT 1")
	if len(events) != 2 {
		t.Fatalf("QueryRow emitted before Scan: %d events", len(events))
	}
	var one int
	if err := r.Scan(&one); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].SQL != "UPDATE products SET price_cents = $1" || !events[0].Slow {
		t.Fatalf("first event %+v", events[0])
	}
}

func TestTraced_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("canceling statement due to statement timeout")
	var got []error
	q := traced{q: &pgxStub{err: boom}, tracer: tracerFunc(func(ev pg.QueryEvent) { got = append(got, ev.Err) }), slowMs: -1}
	ctx := context.Background()

	if _, err := q.Exec(ctx, "DELETE FROM products"); !errors.Is(err, boom) {
		t.Fatalf("Exec err = %v", err)
	}
	if rs, err := q.Query(ctx, "SELECT id FROM products"); rs != nil || !errors.Is(err, boom) {
		t.Fatalf("Query = %v %v", rs, err)
	}
	if err := q.QueryRow(ctx, "SELECT 1").Scan(new(int)); !errors.Is(err, boom) {
		t.Fatalf("Scan err = %v", err)
	}
	for i, err := range got {
		if !errors.Is(err, boom) {
			t.Fatalf("event %d err = %v", i, err)
		}
	}
}

func TestTraced_NoTracer(t *testing.T) {
	t.Parallel()

	q := traced{q: &pgxStub{}}
	if _, err := q.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if err := q.QueryRow(context.Background(), "SELECT 1").Scan(new(int)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
}
