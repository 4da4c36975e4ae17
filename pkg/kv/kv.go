// Package kv is a small key/value layer with Redis and in-memory backends.
// Values are stored as JSON unless they are already a string or []byte.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrMiss is returned by Get for absent or expired keys.
var ErrMiss = errors.New("kv: key not found")

// Store defines the key/value operations used by repositories.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	// Keys lists keys matching a glob pattern, without the store prefix.
	Keys(ctx context.Context, pattern string) ([]string, error)
	MGet(ctx context.Context, keys ...string) (map[string][]byte, error)
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
	Close() error
}

// MGetTyped retrieves multiple keys and decodes each value into T.
// Entries that fail to decode are skipped.
func MGetTyped[T any](ctx context.Context, s Store, keys ...string) (map[string]T, error) {
	if len(keys) == 0 {
		return make(map[string]T), nil
	}

	raw, err := s.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]T, len(raw))
	for key, b := range raw {
		var obj T
		if err := json.Unmarshal(b, &obj); err != nil {
			continue
		}
		out[key] = obj
	}
	return out, nil
}

// Key joins parts with ':'.
func Key(parts ...string) string {
	n := 0
	for _, p := range parts {
		n += len(p) + 1
	}
	b := make([]byte, 0, n)
	for i, p := range parts {
		if i > 0 {
			b = append(b, ':')
		}
		b = append(b, p...)
	}
	return string(b)
}

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(value)
	}
}

func decode(data []byte, dest interface{}) error {
	switch d := dest.(type) {
	case *string:
		*d = string(data)
		return nil
	case *[]byte:
		*d = append((*d)[:0], data...)
		return nil
	default:
		return json.Unmarshal(data, dest)
	}
}
