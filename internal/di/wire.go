//go:build wireinject
// +build wireinject

package di

import (
	"FinScreen/internal/handler/api"
	"FinScreen/internal/usecase"
	"FinScreen/pkg/config"
	"FinScreen/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideClickHouseClient,
		ProvideKVStore,
		ProvideTransport,
		ProvideScreenerOptions,

		// Repositories
		ProvideSnapshotStorage,
		ProvidePresetStore,
		ProvidePublisher,

		// Use cases
		usecase.NewScanRunner,
		usecase.NewPresetService,
		ProvideKafkaScanHandler,

		// Transport
		api.NewScanEchoHandler,
		ProvideHTTPServer,
		ProvideKafkaConsumer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
