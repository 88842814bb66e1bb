package store

import (
	"errors"

	"shopguide/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger subclients write to, tagged component=store
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log.With().Str("component", "store").Logger()
		return nil
	}
}

// WithRedis hands Open a session client that is already configured, so
// RDS settings are not dialed; Close still closes it
func WithRedis(rdb *redis.Client) Option {
	return func(s *Store) error {
		if rdb == nil {
			return errors.New("store: nil redis client")
		}
		s.Redis = rdb
		return nil
	}
}
