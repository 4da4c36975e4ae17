package repository

import (
	"context"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/domain/repository"
	pkgkafka "FinScreen/pkg/kafka"
)

// KafkaPublisher publishes completed scans keyed by scan id.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

var _ repository.Publisher = (*KafkaPublisher)(nil)

// Publish forwards the request id from ctx as a header when one is present.
func (p *KafkaPublisher) Publish(ctx context.Context, res *models.ScanResult) error {
	msg := pkgkafka.Message{Key: []byte(res.ID), Value: res}
	if id := pkgkafka.RequestIDFrom(ctx); id != "" {
		msg.Headers = map[string]string{pkgkafka.HeaderRequestID: id}
	}
	return p.producer.PublishBatch(ctx, p.topic, []pkgkafka.Message{msg})
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops results; used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *models.ScanResult) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
