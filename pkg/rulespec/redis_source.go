package rulespec

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// DefaultRedisPrefix namespaces rule documents stored in Redis.
const DefaultRedisPrefix = "formguard:rules:"

// RedisClient is the part of redis.UniversalClient used by RedisSource.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisSource stores named JSON rule documents in Redis, which lets several
// service instances share rule lists that change without a deploy.
type RedisSource struct {
	client RedisClient
	prefix string
	opts   []Option
}

// NewRedisSource creates a source reading keys prefix+name. An empty prefix
// means DefaultRedisPrefix.
func NewRedisSource(client RedisClient, prefix string, opts ...Option) *RedisSource {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSource{client: client, prefix: prefix, opts: opts}
}

// Load fetches, parses and checks the document stored under name.
func (s *RedisSource) Load(ctx context.Context, name string) ([]validator.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := s.client.Get(ctx, s.prefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrDocumentNotFound, err)
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToFetch, err)
	}

	return Parse(ctx, NewJSONParser(), content, s.opts...)
}

// Save checks specs and stores them as a JSON document under name. A zero
// ttl keeps the document until it is overwritten.
func (s *RedisSource) Save(ctx context.Context, name string, specs []validator.Spec, ttl time.Duration) error {
	if _, err := checked(specs, newOptions(s.opts)); err != nil {
		return err
	}

	content, err := encodeJSON(specs)
	if err != nil {
		return errors.Join(ErrInvalidDocument, err)
	}

	return s.client.Set(ctx, s.prefix+name, content, ttl).Err()
}
