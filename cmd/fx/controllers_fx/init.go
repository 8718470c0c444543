package controllers_fx

import (
	"go.uber.org/fx"

	"voyago/cmd/fx/session_fx"
	"voyago/internal/api/controllers"
	"voyago/internal/services"
	"voyago/pkg/memcache"
)

var Module = fx.Provide(
	ProvideItineraryController,
)

func ProvideItineraryController(
	itineraryService services.ItineraryServiceInterface,
	regenerateService services.RegenerateServiceInterface,
	imageService services.ImageServiceInterface,
	sessions memcache.PlanSessionStore,
	cfg session_fx.SessionConfig,
) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService, regenerateService, imageService, sessions, cfg.TTL)
}
