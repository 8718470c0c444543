package planner_fx

import (
	"go.uber.org/fx"

	"voyago/cmd/fx/session_fx"
	"voyago/internal/services"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

var Module = fx.Provide(
	ProvideItineraryService,
	ProvideRegenerateService,
	ProvideImageService,
)

func ProvideItineraryService(
	modelClient utils.ModelClientInterface,
	sessions memcache.PlanSessionStore,
	cfg session_fx.SessionConfig,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(modelClient, sessions, cfg.TTL)
}

func ProvideRegenerateService(modelClient utils.ModelClientInterface) services.RegenerateServiceInterface {
	return services.NewRegenerateService(modelClient)
}

func ProvideImageService(modelClient utils.ModelClientInterface) services.ImageServiceInterface {
	return services.NewImageService(modelClient)
}
