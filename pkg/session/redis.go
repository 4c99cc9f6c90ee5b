package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys in Redis.
const DefaultRedisPrefix = "session"

// Hash field layout: metadata fields start with "_", values with "v:".
const (
	fieldCreatedAt   = "_created_at"
	fieldExpiresAt   = "_expires_at"
	valueFieldPrefix = "v:"
)

// RedisStore keeps each session in a Redis hash with a TTL matching the
// session expiry. Take runs HGET and HDEL in one MULTI/EXEC transaction.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix for session hashes.
// Default: "session".
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		r.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed session store.
// The client should be obtained from pkg/redis.Open; its lifecycle is managed
// by the caller.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	r := &RedisStore{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create writes the session hash and sets its expiry.
func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	ttl := s.TTL()
	if ttl <= 0 {
		return ErrExpired
	}

	fields := make(map[string]any, len(s.Values)+2)
	fields[fieldCreatedAt] = strconv.FormatInt(s.CreatedAt.UnixNano(), 10)
	fields[fieldExpiresAt] = strconv.FormatInt(s.ExpiresAt.UnixNano(), 10)
	for k, v := range s.Values {
		fields[valueField(k)] = v
	}

	key := r.key(s.ID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// Get loads the whole session hash.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	s := &Session{
		ID:     id,
		Values: make(map[Key]string, len(raw)),
	}
	for field, v := range raw {
		switch {
		case field == fieldCreatedAt:
			s.CreatedAt = parseUnixNano(v)
		case field == fieldExpiresAt:
			s.ExpiresAt = parseUnixNano(v)
		case strings.HasPrefix(field, valueFieldPrefix):
			s.Values[Key(strings.TrimPrefix(field, valueFieldPrefix))] = v
		}
	}
	if s.ExpiresAt.IsZero() {
		// Hash without metadata: a value was written after the session expired.
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return s, nil
}

// Set writes a single value if the session exists.
func (r *RedisStore) Set(ctx context.Context, id string, key Key, val string) error {
	hkey := r.key(id)
	return r.watchExisting(ctx, hkey, func(pipe redis.Pipeliner) {
		pipe.HSet(ctx, hkey, valueField(key), val)
	})
}

// Take reads and removes a single value in one transaction.
func (r *RedisStore) Take(ctx context.Context, id string, key Key) (string, error) {
	hkey := r.key(id)
	field := valueField(key)

	var get *redis.StringCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGet(ctx, hkey, field)
		pipe.HDel(ctx, hkey, field)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	v, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Unset removes a single value.
func (r *RedisStore) Unset(ctx context.Context, id string, key Key) error {
	return r.client.HDel(ctx, r.key(id), valueField(key)).Err()
}

// Delete removes the session hash.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// watchExisting runs fn in a transaction guarded by WATCH so that a session
// expiring between the existence check and the write is not resurrected.
func (r *RedisStore) watchExisting(ctx context.Context, hkey string, fn func(redis.Pipeliner)) error {
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, hkey).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			fn(pipe)
			return nil
		})
		return err
	}, hkey)
}

func (r *RedisStore) key(id string) string {
	if r.prefix == "" {
		return id
	}
	return r.prefix + ":" + id
}

func valueField(k Key) string {
	return valueFieldPrefix + string(k)
}

func parseUnixNano(s string) time.Time {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, n)
}

var _ Store = (*RedisStore)(nil)
