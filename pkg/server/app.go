package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"FinScreen/internal/domain/repository"
	"FinScreen/pkg/config"
	xhttp "FinScreen/pkg/http"
	pkgkafka "FinScreen/pkg/kafka"
	applogger "FinScreen/pkg/logger"
)

const healthTimeout = 5 * time.Second

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	storage    repository.SnapshotStorage
}

// New creates a new App instance. consumer may be nil.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	storage repository.SnapshotStorage,
) *App {
	if log == nil {
		log = applogger.NewNop()
	}
	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: httpServer,
		consumer:   consumer,
		kh:         kh,
		storage:    storage,
	}
}

// Run starts the application and blocks until ctx is done or a signal arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.storage != nil {
		hctx, cancel := context.WithTimeout(ctx, healthTimeout)
		err := a.storage.Health(hctx)
		cancel()
		if err != nil {
			a.log.Warn("scan history unavailable", applogger.Error(err))
		}
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(); err != nil {
			a.log.Error("kafka consumer start error", applogger.Error(err))
			return err
		}
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("scan service started",
		applogger.String("env", a.cfg.Environment),
		applogger.Bool("kafka", a.cfg.Kafka.Enabled),
		applogger.Bool("clickhouse", a.cfg.ClickHouse.Enabled),
		applogger.Bool("redis", a.cfg.Redis.Enabled),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops intake first, then lets in-flight scans finish.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.log.Warn("storage close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
