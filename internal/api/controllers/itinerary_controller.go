package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/services"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

type ItineraryController struct {
	itineraryService  services.ItineraryServiceInterface
	regenerateService services.RegenerateServiceInterface
	imageService      services.ImageServiceInterface
	sessions          memcache.PlanSessionStore
	tokenTTL          time.Duration
}

func NewItineraryController(
	itineraryService services.ItineraryServiceInterface,
	regenerateService services.RegenerateServiceInterface,
	imageService services.ImageServiceInterface,
	sessions memcache.PlanSessionStore,
	tokenTTL time.Duration,
) *ItineraryController {
	return &ItineraryController{
		itineraryService:  itineraryService,
		regenerateService: regenerateService,
		imageService:      imageService,
		sessions:          sessions,
		tokenTTL:          tokenTTL,
	}
}

// GeneratePlanHandler handles POST /api/v1/itineraries. A new submission
// supersedes any earlier session the client held; the returned token
// addresses the fresh one.
func (ic *ItineraryController) GeneratePlanHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, itinerary, err := ic.itineraryService.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	token, err := utils.CreateSessionToken(session.ID(), ic.tokenTTL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PlanResponse{
		SessionToken: token,
		Itinerary:    itinerary,
	}, "Itinerary generated")
}

// CurrentPlanHandler handles GET /api/v1/itineraries/current.
func (ic *ItineraryController) CurrentPlanHandler(c *gin.Context) {
	plan, err := ic.itineraryService.CurrentPlan(c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Current itinerary")
}

// RegenerateActivityHandler handles POST /api/v1/itineraries/activities/regenerate.
func (ic *ItineraryController) RegenerateActivityHandler(c *gin.Context) {
	var req request_models.ActivitySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, ok := ic.sessions.Get(c.GetString("session_id"))
	if !ok {
		utils.HandleServiceError(c, utils.ErrSessionNotFound)
		return
	}

	slot := memcache.Slot{Day: req.DayIndex, Activity: req.ActivityIndex}
	result, err := ic.regenerateService.RegenerateActivity(c.Request.Context(), session, slot)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Activity regenerated")
}

// ActivityImageHandler handles POST /api/v1/itineraries/activities/image.
func (ic *ItineraryController) ActivityImageHandler(c *gin.Context) {
	var req request_models.ActivitySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, ok := ic.sessions.Get(c.GetString("session_id"))
	if !ok {
		utils.HandleServiceError(c, utils.ErrSessionNotFound)
		return
	}

	slot := memcache.Slot{Day: req.DayIndex, Activity: req.ActivityIndex}
	result, err := ic.imageService.SynthesizeActivityImage(c.Request.Context(), session, slot)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Activity image generated")
}
