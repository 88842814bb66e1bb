package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/interview/domain"
)

// KeyPrefix namespaces session keys
const KeyPrefix = "shopguide:session:"

// Redis stores sessions as JSON documents with a TTL
type Redis struct {
	rdb redis.Cmdable
}

var _ domain.SessionStore = (*Redis)(nil)

// NewRedis wraps a go-redis client
func NewRedis(rdb redis.Cmdable) *Redis { return &Redis{rdb: rdb} }

func key(id string) string { return KeyPrefix + id }

// Load fetches and decodes a session
func (r *Redis) Load(ctx context.Context, id string) (*domain.Session, error) {
	b, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, perr.NotFoundf("session %s not found", id)
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "load session %s", id)
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode session %s", id)
	}
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
	return &s, nil
}

// Save encodes s and refreshes its TTL; ttl <= 0 keeps it forever
func (r *Redis) Save(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	if s == nil || s.ID == "" {
		return perr.InvalidArgf("session id required")
	}
	b, err := json.Marshal(s)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode session %s", s.ID)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, key(s.ID), b, ttl).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "save session %s", s.ID)
	}
	return nil
}

// Delete removes a session
func (r *Redis) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, key(id)).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "delete session %s", id)
	}
	return nil
}
