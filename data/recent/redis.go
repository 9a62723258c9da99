package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vortex-fintech/go-iban/foundation/retry"
)

// txPolicy covers WATCH conflicts between concurrent writers as well as
// transient connection errors.
var txPolicy = retry.Policy{Name: "recent_tx", Attempts: 10, Delay: 10 * time.Millisecond}

// RedisStore keeps the list as JSON entries in a Redis list, so several
// service instances share it.
type RedisStore struct {
	rdb  redis.UniversalClient
	opts options
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb redis.UniversalClient, opts ...Option) *RedisStore {
	return &RedisStore{rdb: rdb, opts: buildOptions(opts)}
}

// Key returns the Redis list key in use.
func (s *RedisStore) Key() string { return s.opts.key }

// Add replaces any earlier entry for the same IBAN, pushes the new one and
// trims the list in one MULTI block. A concurrent writer touching the key
// aborts the transaction, which is then retried.
func (s *RedisStore) Add(ctx context.Context, raw string) error {
	e, err := newEntry(raw, s.opts.now())
	if err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return retry.Permanent(fmt.Errorf("recent: encode entry: %w", err))
	}

	key := s.opts.key
	limit := int64(s.opts.limit)

	err = retry.Do(ctx, txPolicy, func(ctx context.Context) error {
		return s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			stale, err := s.matching(ctx, tx, e.IBAN)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
				for _, v := range stale {
					p.LRem(ctx, key, 0, v)
				}
				p.LPush(ctx, key, payload)
				p.LTrim(ctx, key, 0, limit-1)
				return nil
			})
			return err
		}, key)
	})
	if err != nil {
		return fmt.Errorf("recent: add: %w", err)
	}
	return nil
}

// matching returns the raw list elements that hold the given IBAN.
func (s *RedisStore) matching(ctx context.Context, tx *redis.Tx, ibanStr string) ([]string, error) {
	raw, err := tx.LRange(ctx, s.opts.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, v := range raw {
		var e Entry
		if json.Unmarshal([]byte(v), &e) != nil {
			// unreadable entries are dropped on the next write
			out = append(out, v)
			continue
		}
		if e.IBAN == ibanStr {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	var raw []string
	err := retry.Do(ctx, retry.Fast, func(ctx context.Context) error {
		var err error
		raw, err = s.rdb.LRange(ctx, s.opts.key, 0, int64(s.opts.limit)-1).Result()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("recent: list: %w", err)
	}

	out := make([]Entry, 0, len(raw))
	for _, v := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("recent: decode entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	err := retry.Do(ctx, retry.Fast, func(ctx context.Context) error {
		return s.rdb.Del(ctx, s.opts.key).Err()
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("recent: clear: %w", err)
	}
	return nil
}
