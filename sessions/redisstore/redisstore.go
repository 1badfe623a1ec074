package redisstore

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/token"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Store = (*Store)(nil)

// Store keeps the credential pair under a single Redis key so several
// processes can share one signed-in session. SET, GET and DEL on one key are
// atomic, which gives whole-value replacement without extra locking.
type Store struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

type Option func(*Store)

// WithKey overrides the key the pair is stored under
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTTL expires the stored pair, typically set to the refresh token lifetime
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// New connects to redisURL and checks the connection
func New(ctx context.Context, redisURL string, opts ...Option) (*Store, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, err
	}

	return NewWithClient(client, opts...), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		key:    sessions.DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context) (*token.Pair, error) {
	value, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "redis get %s: %s", s.key, err)
	}
	return sessions.Unmarshal(value)
}

func (s *Store) Set(ctx context.Context, pair token.Pair) error {
	data, err := sessions.Marshal(pair)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "redis set %s: %s", s.key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "redis del %s: %s", s.key, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}
