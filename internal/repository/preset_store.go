package repository

import (
	"context"
	"errors"
	"sort"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/domain/repository"
	"FinScreen/pkg/kv"
)

const presetKeyPrefix = "preset"

// KVPresetStore saves named scan presets in Redis or the in-memory store.
type KVPresetStore struct {
	store kv.Store
}

func NewKVPresetStore(store kv.Store) *KVPresetStore {
	return &KVPresetStore{store: store}
}

var _ repository.PresetStore = (*KVPresetStore)(nil)

func (s *KVPresetStore) Save(ctx context.Context, p *models.Preset) error {
	return s.store.Set(ctx, kv.Key(presetKeyPrefix, p.Name), p, 0)
}

func (s *KVPresetStore) Get(ctx context.Context, name string) (*models.Preset, error) {
	var p models.Preset
	if err := s.store.Get(ctx, kv.Key(presetKeyPrefix, name), &p); err != nil {
		if errors.Is(err, kv.ErrMiss) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns presets sorted by name.
func (s *KVPresetStore) List(ctx context.Context) ([]*models.Preset, error) {
	keys, err := s.store.Keys(ctx, kv.Key(presetKeyPrefix, "*"))
	if err != nil {
		return nil, err
	}
	found, err := kv.MGetTyped[models.Preset](ctx, s.store, keys...)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Preset, 0, len(found))
	for _, p := range found {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete returns ErrNotFound for unknown names.
func (s *KVPresetStore) Delete(ctx context.Context, name string) error {
	key := kv.Key(presetKeyPrefix, name)
	var p models.Preset
	if err := s.store.Get(ctx, key, &p); err != nil {
		if errors.Is(err, kv.ErrMiss) {
			return repository.ErrNotFound
		}
		return err
	}
	return s.store.Delete(ctx, key)
}
