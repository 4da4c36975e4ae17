package di

import (
	"context"
	"fmt"
	"time"

	"FinScreen/internal/domain/repository"
	"FinScreen/internal/handler/api"
	mid "FinScreen/internal/middleware"
	internalrepo "FinScreen/internal/repository"
	"FinScreen/internal/screener"
	"FinScreen/internal/service/ratelimit"
	"FinScreen/internal/service/tradingview"
	"FinScreen/internal/usecase"
	pkgch "FinScreen/pkg/clickhouse"
	"FinScreen/pkg/config"
	xhttp "FinScreen/pkg/http"
	pkgkafka "FinScreen/pkg/kafka"
	"FinScreen/pkg/kv"
	"FinScreen/pkg/logger"
	"FinScreen/pkg/metrics"
	"FinScreen/pkg/server"
)

const initTimeout = 10 * time.Second

// ProvideKafkaProducer creates a Kafka producer. It returns nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithAutoCreateTopics(cfg.Environment != "production"),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger builds the application logger. Error logs are aggregated onto
// the collector topic when the collector is enabled.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*logger.Logger, func(), error) {
	l, err := logger.New(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Logging.Collector.Enabled && producer != nil {
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   cfg.Logging.Collector.Interval,
			CountThreshold: cfg.Logging.Collector.CountThreshold,
			Topic:          cfg.Logging.Collector.Topic,
			Publisher:      producer,
		})
	}
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client. It returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideKVStore connects Redis when enabled and falls back to process memory.
func ProvideKVStore(cfg *config.Config) (kv.Store, func(), error) {
	if !cfg.Redis.Enabled {
		store := kv.NewMemoryStore()
		return store, func() { _ = store.Close() }, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	store, err := kv.NewRedisStore(ctx,
		kv.WithRedisAddr(cfg.RedisAddr()),
		kv.WithRedisPassword(cfg.Redis.Password),
		kv.WithRedisDB(cfg.Redis.DB),
		kv.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis store: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// ProvideSnapshotStorage keeps scan history in ClickHouse, or in the KV store
// when ClickHouse is disabled.
func ProvideSnapshotStorage(ch *pkgch.Client, store kv.Store, cfg *config.Config) (repository.SnapshotStorage, error) {
	if ch == nil {
		return internalrepo.NewKVSnapshotStore(store, cfg.Redis.SnapshotTTL), nil
	}
	storage := internalrepo.NewClickHouseSnapshotStore(ch.DB(), ch.Database())

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := ch.InitSchema(ctx, storage.Schema()); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return storage, nil
}

// ProvidePresetStore stores presets in the KV store.
func ProvidePresetStore(store kv.Store) repository.PresetStore {
	return internalrepo.NewKVPresetStore(store)
}

// ProvidePublisher publishes results to Kafka, or drops them when Kafka is disabled.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return internalrepo.NopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.ResultTopic)
}

// ProvideTransport creates the throttled TradingView client.
func ProvideTransport(cfg *config.Config) repository.Transport {
	return tradingview.NewClient(tradingview.Config{
		RPS:       cfg.Screener.RateLimit.RPS,
		Burst:     cfg.Screener.RateLimit.Burst,
		UserAgent: cfg.Screener.UserAgent,
	})
}

// ProvideScreenerOptions turns the screener section into constructor options.
func ProvideScreenerOptions(cfg *config.Config, transport repository.Transport) []screener.Option {
	return []screener.Option{
		screener.WithTransport(transport),
		screener.WithBaseURL(cfg.Screener.BaseURL),
		screener.WithTimeout(cfg.Screener.Timeout),
	}
}

// ProvideKafkaConsumer creates the scan request consumer. It returns nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config, log *logger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(log,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.RequestIDHook)
	return consumer, nil
}

// ProvideKafkaScanHandler handles the request topic, deduplicating redeliveries
// by request_id through the KV store.
func ProvideKafkaScanHandler(cfg *config.Config, runner *usecase.ScanRunner, store kv.Store, m repository.Metrics, log *logger.Logger) *usecase.KafkaScanHandler {
	h := usecase.NewKafkaScanHandler(cfg.Kafka.RequestTopic, runner, m, log)
	if cfg.Kafka.Consumer.DedupTTL > 0 {
		h.WithDedup(store, cfg.Kafka.Consumer.DedupTTL)
	}
	return h
}

// ProvideHTTPServer creates the Echo server with the per-client rate limit on /api.
func ProvideHTTPServer(cfg *config.Config, h *api.ScanEchoHandler, log *logger.Logger) *xhttp.Server {
	limiter := ratelimit.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
	return xhttp.NewServer(h, log,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORSOrigins...),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Path),
		xhttp.WithMiddleware(mid.RateLimit(limiter, log, "/healthz", cfg.Metrics.Path)),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaScanHandler,
	storage repository.SnapshotStorage,
) *server.App {
	return server.New(cfg, log, httpServer, consumer, kh, storage)
}
