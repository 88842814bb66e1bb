package repo

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/interview/domain"
)

func unreachable(t *testing.T) *Redis {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb)
}

func TestRedis_Unreachable(t *testing.T) {
	r := unreachable(t)
	ctx := context.Background()

	if _, err := r.Load(ctx, "x"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("load: want unavailable, got %v", err)
	}
	if err := r.Save(ctx, domain.NewSession("x", 3, time.Now()), time.Minute); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("save: want unavailable, got %v", err)
	}
	if err := r.Delete(ctx, "x"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("delete: want unavailable, got %v", err)
	}
}

func TestRedis_SaveRequiresID(t *testing.T) {
	r := unreachable(t)
	if err := r.Save(context.Background(), &domain.Session{}, time.Minute); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestKey(t *testing.T) {
	if got := key("abc"); got != "shopguide:session:abc" {
		t.Fatalf("key: %q", got)
	}
}
