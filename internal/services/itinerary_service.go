package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
	"voyago/pkg/validation"
)

type ItineraryServiceInterface interface {
	// GeneratePlan runs the full-itinerary use case: validate the request,
	// build the prompt, invoke the model, validate the response, and hold the
	// result in a fresh session. All-or-nothing: a failure never leaves a
	// partial itinerary behind.
	GeneratePlan(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error)

	// CurrentPlan returns the itinerary a session currently holds, together
	// with the activity images synthesized so far.
	CurrentPlan(sessionID string) (*response_models.CurrentPlanResponse, error)
}

type ItineraryService struct {
	modelClient utils.ModelClientInterface
	sessions    memcache.PlanSessionStore
	sessionTTL  time.Duration
}

func NewItineraryService(
	modelClient utils.ModelClientInterface,
	sessions memcache.PlanSessionStore,
	sessionTTL time.Duration,
) ItineraryServiceInterface {
	return &ItineraryService{
		modelClient: modelClient,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

func (s *ItineraryService) GeneratePlan(ctx context.Context, req request_models.TripRequest) (*memcache.PlanSession, *response_models.Itinerary, error) {
	const op = "generate_itinerary"

	if err := validation.ValidateTripRequest(req); err != nil {
		return nil, nil, err
	}

	prompt := BuildItineraryPrompt(req)
	log.Printf("Generating %d-day itinerary for %d destination(s)", req.TotalDays(), len(req.Destinations))

	raw, err := s.modelClient.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(raw), &itinerary); err != nil {
		return nil, nil, utils.NewModelError(utils.ModelErrorSchemaMismatch, op, err)
	}
	if err := validation.ValidateItinerary(&itinerary, req.TotalDays()); err != nil {
		log.Printf("Model returned non-conformant itinerary: %v", err)
		return nil, nil, utils.NewModelError(utils.ModelErrorSchemaMismatch, op, err)
	}

	session := s.sessions.Create(req, s.sessionTTL)
	session.SetItinerary(&itinerary)

	return session, &itinerary, nil
}

func (s *ItineraryService) CurrentPlan(sessionID string) (*response_models.CurrentPlanResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	itinerary, _ := session.Snapshot()
	if itinerary == nil {
		return nil, utils.ErrSessionNotFound
	}

	return &response_models.CurrentPlanResponse{
		Itinerary: itinerary,
		ImageURLs: session.ImageURLs(),
	}, nil
}
