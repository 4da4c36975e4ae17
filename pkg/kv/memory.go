package kv

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time // zero means no expiry
	access   time.Time
}

func (m *memoryItem) expired(now time.Time) bool {
	return !m.expireAt.IsZero() && now.After(m.expireAt)
}

// MemoryStore implements Store in process memory with LRU eviction.
// It serves tests and single-node deployments without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string]*memoryItem
	maxSize int
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	cfg := &MemoryConfig{
		MaxSize:         10000,
		CleanupInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &MemoryStore{
		data:    make(map[string]*memoryItem),
		maxSize: cfg.MaxSize,
		ticker:  time.NewTicker(cfg.CleanupInterval),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	// copy so later mutation of the caller's slice does not leak in
	data = append([]byte(nil), data...)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, ok := s.data[key]; !ok && s.maxSize > 0 && len(s.data) >= s.maxSize {
		s.evictLRU()
	}
	item := &memoryItem{value: data, access: now}
	if ttl > 0 {
		item.expireAt = now.Add(ttl)
	}
	s.data[key] = item
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	item, ok := s.lookup(key)
	var data []byte
	if ok {
		data = item.value
	}
	s.mu.Unlock()

	if !ok {
		return ErrMiss
	}
	return decode(data, dest)
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// Keys matches with path.Match, which covers the *, ? and [] globs Redis accepts.
func (s *MemoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []string
	for key, item := range s.data {
		if item.expired(now) {
			continue
		}
		ok, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) MGet(_ context.Context, keys ...string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if item, ok := s.lookup(key); ok {
			out[key] = item.value
		}
	}
	return out, nil
}

func (s *MemoryStore) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	now := s.now()
	item := &memoryItem{value: []byte("locked"), access: now}
	if ttl > 0 {
		item.expireAt = now.Add(ttl)
	}
	s.data[key] = item
	return true, nil
}

func (s *MemoryStore) Unlock(ctx context.Context, key string) error {
	return s.Delete(ctx, key)
}

// Len returns the number of stored keys, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Close stops the cleanup loop.
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
	return nil
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(key string) (*memoryItem, bool) {
	item, ok := s.data[key]
	if !ok {
		return nil, false
	}
	now := s.now()
	if item.expired(now) {
		delete(s.data, key)
		return nil, false
	}
	item.access = now
	return item, true
}

func (s *MemoryStore) evictLRU() {
	var (
		oldestKey  string
		oldestTime time.Time
	)
	for key, item := range s.data {
		if oldestKey == "" || item.access.Before(oldestTime) {
			oldestKey, oldestTime = key, item.access
		}
	}
	if oldestKey != "" {
		delete(s.data, oldestKey)
	}
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, item := range s.data {
				if item.expired(now) {
					delete(s.data, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
