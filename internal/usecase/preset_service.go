package usecase

import (
	"context"
	"time"

	"FinScreen/internal/domain/models"
	domrepo "FinScreen/internal/domain/repository"
)

// PresetService manages saved scans.
type PresetService struct {
	store  domrepo.PresetStore
	runner *ScanRunner
	now    func() time.Time
}

func NewPresetService(store domrepo.PresetStore, runner *ScanRunner) *PresetService {
	return &PresetService{store: store, runner: runner, now: func() time.Time { return time.Now().UTC() }}
}

// Save validates the scan before storing it, so a stored preset always builds.
func (s *PresetService) Save(ctx context.Context, name, description string, scan models.ScanRequest) (*models.Preset, error) {
	if err := s.runner.Validate(&scan); err != nil {
		return nil, err
	}
	p := &models.Preset{
		Name:        name,
		Description: description,
		Scan:        scan,
		UpdatedAt:   s.now(),
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PresetService) Get(ctx context.Context, name string) (*models.Preset, error) {
	return s.store.Get(ctx, name)
}

func (s *PresetService) List(ctx context.Context) ([]*models.Preset, error) {
	return s.store.List(ctx)
}

func (s *PresetService) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}

// Run executes a saved preset; the result carries the preset name.
func (s *PresetService) Run(ctx context.Context, name string) (*models.ScanResult, error) {
	p, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	scan := p.Scan
	return s.runner.run(ctx, &scan, p.Name)
}
