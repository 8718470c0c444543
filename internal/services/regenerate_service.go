package services

import (
	"context"
	"encoding/json"
	"log"

	"voyago/internal/models/response_models"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
	"voyago/pkg/validation"
)

type RegenerateServiceInterface interface {
	// RegenerateActivity replaces the description of one activity slot in the
	// session's itinerary. On any failure the held itinerary is left exactly
	// as it was.
	RegenerateActivity(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error)

	// Regenerate is the raw model contract: given the location, the literal
	// activity text, the current itinerary as context, budget and interests,
	// produce a replacement description plus a rationale. It performs no merge.
	Regenerate(ctx context.Context, location, activity, itineraryContext, budget, interests string) (*response_models.RegenerationResult, error)
}

type RegenerateService struct {
	modelClient utils.ModelClientInterface
}

func NewRegenerateService(modelClient utils.ModelClientInterface) RegenerateServiceInterface {
	return &RegenerateService{modelClient: modelClient}
}

func (s *RegenerateService) RegenerateActivity(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.RegenerateResponse, error) {
	if !session.TryBeginRegenerate(slot) {
		return nil, utils.ErrRegenerateInFlight
	}
	// Guaranteed-execution path: the slot's busy marker clears regardless of
	// how the call ends.
	defer session.EndRegenerate(slot)

	activity, location, err := session.ActivityAt(slot)
	if err != nil {
		return nil, err
	}
	snapshot, generation := session.Snapshot()
	req := session.Request()

	result, err := s.Regenerate(ctx, location, activity.Description, MarshalItineraryContext(snapshot), req.Budget, req.Interests)
	if err != nil {
		return nil, err
	}

	patched, err := session.ReplaceActivityDescription(generation, slot, result.NewActivity)
	if err != nil {
		return nil, err
	}

	log.Printf("Regenerated activity at day %d index %d", slot.Day, slot.Activity)
	return &response_models.RegenerateResponse{
		NewActivity: result.NewActivity,
		Reasoning:   result.Reasoning,
		Itinerary:   patched,
	}, nil
}

func (s *RegenerateService) Regenerate(ctx context.Context, location, activity, itineraryContext, budget, interests string) (*response_models.RegenerationResult, error) {
	const op = "regenerate_activity"

	prompt := BuildRegenerationPrompt(location, activity, itineraryContext, budget, interests)

	raw, err := s.modelClient.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result response_models.RegenerationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, utils.NewModelError(utils.ModelErrorSchemaMismatch, op, err)
	}
	if err := validation.ValidateRegenerationResult(result); err != nil {
		return nil, utils.NewModelError(utils.ModelErrorSchemaMismatch, op, err)
	}
	return &result, nil
}
