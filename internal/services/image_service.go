package services

import (
	"context"

	"voyago/internal/models/response_models"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
	"voyago/pkg/validation"
)

type ImageServiceInterface interface {
	// SynthesizeActivityImage produces an illustration for the activity at
	// slot and caches it in session state. If the slot's description changed
	// (or another synthesis started) while the call was in flight, the stale
	// result is discarded and never applied.
	SynthesizeActivityImage(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.ImageResult, error)

	// Synthesize is the raw model contract: description + location in, data
	// URI out, or a ModelError. Failure is never an empty-string success.
	Synthesize(ctx context.Context, description, location string) (*response_models.ImageResult, error)
}

type ImageService struct {
	modelClient utils.ModelClientInterface
}

func NewImageService(modelClient utils.ModelClientInterface) ImageServiceInterface {
	return &ImageService{modelClient: modelClient}
}

func (s *ImageService) SynthesizeActivityImage(ctx context.Context, session *memcache.PlanSession, slot memcache.Slot) (*response_models.ImageResult, error) {
	activity, location, err := session.ActivityAt(slot)
	if err != nil {
		return nil, err
	}

	token := session.BeginImage(slot)

	result, err := s.Synthesize(ctx, activity.Description, location)
	if err != nil {
		// The slot stays on its placeholder; no automatic retry.
		return nil, err
	}

	if !session.CompleteImage(slot, token, result.ImageURL) {
		return nil, utils.ErrMergeConflict
	}
	return result, nil
}

func (s *ImageService) Synthesize(ctx context.Context, description, location string) (*response_models.ImageResult, error) {
	const op = "synthesize_image"

	url, err := s.modelClient.GenerateImage(ctx, BuildImagePrompt(description, location))
	if err != nil {
		return nil, err
	}

	result := response_models.ImageResult{ImageURL: url}
	if err := validation.ValidateImageResult(result); err != nil {
		return nil, utils.NewModelError(utils.ModelErrorSchemaMismatch, op, err)
	}
	return &result, nil
}
