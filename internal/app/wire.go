//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/eslsoft/studytrack/internal/adapter/repository"
	"github.com/eslsoft/studytrack/internal/infrastructure/config"
	"github.com/eslsoft/studytrack/internal/infrastructure/database"
	"github.com/eslsoft/studytrack/internal/infrastructure/logging"
)

var configSet = wire.NewSet(
	config.Load,
	provideLocation,
)

var loggingSet = wire.NewSet(
	logging.NewLogger,
	provideFieldLogger,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewStores,
	provideUsageLedger,
)

var usecaseSet = wire.NewSet(
	provideHomeOptions,
	provideProgressUsecase,
	provideActivityUsecase,
	provideHomeUsecase,
	provideCatalogUsecase,
	provideBackupService,
)

// Initialize builds the application container using Wire.
func Initialize(ctx context.Context) (*Container, func(), error) {
	wire.Build(
		configSet,
		loggingSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
