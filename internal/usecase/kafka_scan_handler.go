package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"FinScreen/internal/domain/models"
	domrepo "FinScreen/internal/domain/repository"
	"FinScreen/internal/screener"
	pkghttp "FinScreen/pkg/http"
	pkgkafka "FinScreen/pkg/kafka"
	"FinScreen/pkg/kv"
	"FinScreen/pkg/logger"
)

// RequestLocker claims a request id for a while; kv.Store implements it.
type RequestLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// KafkaScanHandler runs scan requests read from the request topic.
// Results are published by the runner.
type KafkaScanHandler struct {
	topic   string
	runner  *ScanRunner
	metrics domrepo.Metrics
	log     *logger.Logger

	locks   RequestLocker
	lockTTL time.Duration
}

func NewKafkaScanHandler(topic string, runner *ScanRunner, metrics domrepo.Metrics, log *logger.Logger) *KafkaScanHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &KafkaScanHandler{topic: topic, runner: runner, metrics: metrics, log: log}
}

// WithDedup skips redelivered requests whose request_id already ran within ttl.
// Messages without a request_id are always handled.
func (h *KafkaScanHandler) WithDedup(locks RequestLocker, ttl time.Duration) *KafkaScanHandler {
	h.locks, h.lockTTL = locks, ttl
	return h
}

func (h *KafkaScanHandler) Topic() string { return h.topic }

// Handle marks malformed and invalid requests permanent so they skip retries.
func (h *KafkaScanHandler) Handle(ctx context.Context, b []byte) error {
	var req models.ScanRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return pkgkafka.Permanent(err)
	}
	if err := pkghttp.ValidateStruct(ctx, &req); err != nil {
		h.metrics.RecordError("consumer_validation")
		return pkgkafka.Permanent(err)
	}

	claimed, lockKey, err := h.claim(ctx)
	if err != nil {
		return err
	}
	if lockKey != "" && !claimed {
		h.metrics.RecordError("consumer_duplicate")
		h.log.Info("duplicate scan request skipped", logger.String("request_id", pkgkafka.RequestIDFrom(ctx)))
		return nil
	}

	res, err := h.runner.Run(ctx, &req)
	if err != nil {
		if lockKey != "" {
			if uerr := h.locks.Unlock(ctx, lockKey); uerr != nil {
				h.log.Warn("release scan request lock", logger.Error(uerr))
			}
		}
		var verr *screener.ValidationError
		if errors.As(err, &verr) {
			return pkgkafka.Permanent(err)
		}
		return err
	}

	h.log.Debug("kafka scan handled",
		logger.String("id", res.ID),
		logger.String("request_id", pkgkafka.RequestIDFrom(ctx)),
	)
	return nil
}

// claim returns the lock key it tried, or "" when dedup does not apply.
func (h *KafkaScanHandler) claim(ctx context.Context) (bool, string, error) {
	id := pkgkafka.RequestIDFrom(ctx)
	if h.locks == nil || id == "" {
		return false, "", nil
	}
	key := kv.Key("scanreq", id)
	ok, err := h.locks.TryLock(ctx, key, h.lockTTL)
	if err != nil {
		return false, key, fmt.Errorf("claim request %s: %w", id, err)
	}
	return ok, key, nil
}

var _ pkgkafka.MessageHandler = (*KafkaScanHandler)(nil)
