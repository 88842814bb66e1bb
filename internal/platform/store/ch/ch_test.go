package ch

import (
	"context"
	"strings"
	"testing"
)

func TestOpen_EmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "clickhouse://host:9000/db?dial_timeout=notaduration"})
	if err == nil || !strings.Contains(err.Error(), "parse dsn") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

// Open is lazy so a syntactically valid DSN needs no server
func TestOpen_LazyConnection(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:9000/default", Role: "test"})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNilClient(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("nil client ping should fail")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil client close should be a no op: %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo(" api ")
	if len(info.Products) != 5 || info.Products[0].Name != "shopguide" || info.Products[1].Version != "api" {
		t.Fatalf("products = %+v", info.Products)
	}
	if got := BuildClientInfo("").Products[1].Version; got != "unknown" {
		t.Fatalf("empty role = %q", got)
	}
	if got := clean("two words\n"); got != "two_words" {
		t.Fatalf("clean = %q", got)
	}
}
