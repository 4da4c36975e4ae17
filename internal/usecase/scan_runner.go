package usecase

import (
	"context"
	"errors"
	"time"

	"FinScreen/internal/beautify"
	"FinScreen/internal/domain/models"
	domrepo "FinScreen/internal/domain/repository"
	"FinScreen/internal/screener"
	"FinScreen/pkg/logger"

	"github.com/google/uuid"
)

// Scan outcome labels used for metrics.
const (
	StatusOK         = "ok"
	StatusInvalid    = "validation_error"
	StatusUpstream   = "upstream_error"
	StatusTimeout    = "timeout"
	StatusFailed     = "error"
	defaultListLimit = 50
)

// ScanRunner executes scan requests against the screener and records the outcome.
// Each run builds a fresh screener, so a runner is safe for concurrent use.
type ScanRunner struct {
	opts      []screener.Option
	storage   domrepo.SnapshotStorage
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewScanRunner wires a runner. storage and publisher may be nil.
func NewScanRunner(
	opts []screener.Option,
	storage domrepo.SnapshotStorage,
	publisher domrepo.Publisher,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *ScanRunner {
	if log == nil {
		log = logger.NewNop()
	}
	return &ScanRunner{
		opts:      append(append([]screener.Option{}, opts...), screener.WithLogger(log)),
		storage:   storage,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Validate builds the screener for req without running it.
func (r *ScanRunner) Validate(req *models.ScanRequest) error {
	_, err := buildScreener(req, r.opts...)
	return err
}

// Run executes req. Storage and publish failures are logged and counted
// but do not fail the scan. getOpts are passed to the screener's Get.
func (r *ScanRunner) Run(ctx context.Context, req *models.ScanRequest, getOpts ...screener.GetOption) (*models.ScanResult, error) {
	return r.run(ctx, req, "", getOpts...)
}

func (r *ScanRunner) run(ctx context.Context, req *models.ScanRequest, preset string, getOpts ...screener.GetOption) (*models.ScanResult, error) {
	start := time.Now()
	kind := req.Screener
	if kind == "" {
		kind = string(models.ScreenerStock)
	}

	plan, err := buildScreener(req, r.opts...)
	if err != nil {
		r.recordFailure(kind, err)
		return nil, err
	}

	table, err := plan.sc.Get(ctx, plan.interval, getOpts...)
	if err != nil {
		r.recordFailure(kind, err)
		r.log.Error("scan failed",
			logger.String("screener", kind),
			logger.String("interval", string(plan.interval)),
			logger.Error(err),
		)
		return nil, err
	}

	if req.Beautify {
		beautify.New(plan.sc.Catalog(), r.log).Apply(table)
	}
	if req.Technical {
		table.SetTechnicalColumns(false)
	}

	elapsed := time.Since(start)
	res := &models.ScanResult{
		ID:        r.newID(),
		Screener:  plan.sc.Kind(),
		Interval:  plan.interval,
		Preset:    preset,
		CreatedAt: r.now(),
		Duration:  elapsed.String(),
		Headers:   table.Headers(),
		Table:     table,
	}

	r.metrics.RecordScan(kind, StatusOK)
	r.metrics.RecordRows(kind, table.Len())
	r.metrics.RecordLatency("scan", elapsed.Seconds())
	r.log.Info("scan completed",
		logger.String("id", res.ID),
		logger.String("screener", kind),
		logger.String("interval", string(plan.interval)),
		logger.Int("rows", table.Len()),
		logger.Duration("duration_ms", elapsed),
	)

	r.persist(ctx, res)
	return res, nil
}

func (r *ScanRunner) persist(ctx context.Context, res *models.ScanResult) {
	if r.storage != nil {
		start := time.Now()
		if err := r.storage.Store(ctx, res); err != nil {
			r.metrics.RecordError("store")
			r.log.Error("store scan", logger.String("id", res.ID), logger.Error(err))
		} else {
			r.metrics.RecordLatency("store", time.Since(start).Seconds())
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, res); err != nil {
			r.metrics.RecordError("publish")
			r.log.Error("publish scan", logger.String("id", res.ID), logger.Error(err))
		}
	}
}

// GetScan reads a stored scan back.
func (r *ScanRunner) GetScan(ctx context.Context, id string) (*models.ScanResult, error) {
	if r.storage == nil {
		return nil, domrepo.ErrNotFound
	}
	return r.storage.Get(ctx, id)
}

// ListScans returns stored scan summaries, newest first.
func (r *ScanRunner) ListScans(ctx context.Context, since time.Time, limit int) ([]models.ScanSummary, error) {
	if r.storage == nil {
		return []models.ScanSummary{}, nil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return r.storage.List(ctx, since, limit)
}

func (r *ScanRunner) recordFailure(kind string, err error) {
	status := FailureStatus(err)
	r.metrics.RecordScan(kind, status)
	r.metrics.RecordError(status)
}

// FailureStatus classifies a scan error for metrics.
func FailureStatus(err error) string {
	var verr *screener.ValidationError
	var merr *screener.MalformedRequestError
	switch {
	case errors.As(err, &verr):
		return StatusInvalid
	case errors.As(err, &merr) && merr.StatusCode == screener.StatusTimeout:
		return StatusTimeout
	case errors.As(err, &merr):
		return StatusUpstream
	default:
		return StatusFailed
	}
}
