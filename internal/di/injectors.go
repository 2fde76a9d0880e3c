//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"leadsdesk/internal"
	"leadsdesk/internal/controllers"
	"leadsdesk/internal/persistence"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"leadsdesk/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		wire.Bind(new(providers.StoreStats), new(services.SlotServiceInterface)),

		services.NewSlotService,
		services.NewHoursMonitor,
		services.NewTokenService,
		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,
		controllers.NewApiController,
		controllers.NewHoursController,
		controllers.NewTokenController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
