package repository

import (
	"context"
	"errors"
	"time"

	"FinScreen/internal/domain/models"
)

// ErrTransportTimeout is wrapped by transports when the per-call timeout elapses.
var ErrTransportTimeout = errors.New("transport timeout")

// ErrNotFound is returned by stores for unknown ids or names.
var ErrNotFound = errors.New("not found")

// TransportResponse is the raw reply of the screener endpoint.
type TransportResponse struct {
	StatusCode int
	Body       []byte
}

// Transport posts a JSON body to the screener endpoint.
type Transport interface {
	Post(ctx context.Context, url string, body []byte, timeout time.Duration) (*TransportResponse, error)
}

type SnapshotStorage interface {
	Store(ctx context.Context, res *models.ScanResult) error
	Get(ctx context.Context, id string) (*models.ScanResult, error)
	// List returns summaries created at or after since, newest first.
	List(ctx context.Context, since time.Time, limit int) ([]models.ScanSummary, error)
	Health(ctx context.Context) error
	Close() error
}

type Publisher interface {
	Publish(ctx context.Context, res *models.ScanResult) error
	Close() error
}

type PresetStore interface {
	Save(ctx context.Context, p *models.Preset) error
	Get(ctx context.Context, name string) (*models.Preset, error)
	List(ctx context.Context) ([]*models.Preset, error)
	Delete(ctx context.Context, name string) error
}

type Metrics interface {
	RecordScan(screener, status string)
	RecordRows(screener string, rows int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
