package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/domain/repository"
	"FinScreen/pkg/kv"
)

const scanKeyPrefix = "scan"

// KVSnapshotStore keeps recent scans in the key/value store with a TTL.
// It backs GET /api/scans/:id when ClickHouse is disabled.
type KVSnapshotStore struct {
	store kv.Store
	ttl   time.Duration
}

// NewKVSnapshotStore creates a snapshot store; ttl <= 0 keeps entries forever.
func NewKVSnapshotStore(store kv.Store, ttl time.Duration) *KVSnapshotStore {
	return &KVSnapshotStore{store: store, ttl: ttl}
}

var _ repository.SnapshotStorage = (*KVSnapshotStore)(nil)

func (s *KVSnapshotStore) Store(ctx context.Context, res *models.ScanResult) error {
	return s.store.Set(ctx, kv.Key(scanKeyPrefix, res.ID), res, s.ttl)
}

func (s *KVSnapshotStore) Get(ctx context.Context, id string) (*models.ScanResult, error) {
	var res models.ScanResult
	if err := s.store.Get(ctx, kv.Key(scanKeyPrefix, id), &res); err != nil {
		if errors.Is(err, kv.ErrMiss) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (s *KVSnapshotStore) List(ctx context.Context, since time.Time, limit int) ([]models.ScanSummary, error) {
	keys, err := s.store.Keys(ctx, kv.Key(scanKeyPrefix, "*"))
	if err != nil {
		return nil, err
	}
	found, err := kv.MGetTyped[models.ScanResult](ctx, s.store, keys...)
	if err != nil {
		return nil, err
	}

	out := make([]models.ScanSummary, 0, len(found))
	for _, res := range found {
		if res.CreatedAt.Before(since) {
			continue
		}
		out = append(out, res.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *KVSnapshotStore) Health(context.Context) error { return nil }

func (s *KVSnapshotStore) Close() error { return nil }
