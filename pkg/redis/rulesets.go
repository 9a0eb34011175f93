package redis

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formguard/pkg/rulespec"
)

// Client is the part of a go-redis client used by the rule set helpers.
type Client interface {
	rulespec.RedisClient
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// RuleStore reads and writes named rule documents under the configured
// prefix.
type RuleStore struct {
	*rulespec.RedisSource
	client    Client
	prefix    string
	batchSize int64
}

// NewRuleStore binds a client to the rules prefix of cfg. Options are
// passed to the rulespec source, e.g. rulespec.WithRegistry.
func NewRuleStore(client Client, cfg Config, opts ...rulespec.Option) *RuleStore {
	prefix := cfg.rulesPrefix()
	batchSize := cfg.ScanBatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	return &RuleStore{
		RedisSource: rulespec.NewRedisSource(client, prefix, opts...),
		client:      client,
		prefix:      prefix,
		batchSize:   batchSize,
	}
}

// Names lists the stored rule sets, sorted.
func (s *RuleStore) Names(ctx context.Context) ([]string, error) {
	var names []string
	var cursor uint64

	for {
		batch, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", s.batchSize).Result()
		if err != nil {
			return nil, errors.Join(ErrFailedToListRuleSets, err)
		}

		for _, key := range batch {
			if name, ok := strings.CutPrefix(key, s.prefix); ok && name != "" {
				names = append(names, name)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	// SCAN may return a key more than once.
	slices.Sort(names)
	return slices.Compact(names), nil
}
