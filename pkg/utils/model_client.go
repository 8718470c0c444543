package utils

import (
	"context"
	"errors"
	"strings"
	"time"
)

// callTimeout bounds every model invocation so a hung call surfaces as
// ModelError{Timeout} instead of pinning a busy indicator forever.
const callTimeout = 90 * time.Second

// ModelClientInterface is the sole coupling to the external generative model.
// GenerateJSON returns the raw JSON payload for a structured prompt;
// GenerateImage returns an image as a data URI. Neither retries: retries, if
// any, belong to the caller.
type ModelClientInterface interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Close() error
}

// classifyCallError maps a transport-level failure onto the ModelError taxonomy.
func classifyCallError(op string, err error) *ModelError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewModelError(ModelErrorTimeout, op, err)
	}
	return NewModelError(ModelErrorNetwork, op, err)
}

// cleanJSONResponse strips markdown fences some completions still wrap around
// JSON even in JSON response mode.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```JSON")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
