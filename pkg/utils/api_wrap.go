package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError converts a typed service failure into the one
// user-visible notice for it. This is the only place that translation
// happens; services propagate failures unchanged.
func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")

	if ve, ok := AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			TraceID: traceID,
			Data:    ve.Violations,
		})
		return
	}

	if me, ok := AsModelError(err); ok {
		code := http.StatusBadGateway
		message := "The travel model did not return a usable result"
		switch me.Kind {
		case ModelErrorTimeout:
			code = http.StatusGatewayTimeout
			message = "The travel model timed out"
		case ModelErrorRefusal:
			message = "The travel model declined to answer"
		case ModelErrorSchemaMismatch:
			message = "The travel model returned a malformed result"
		}
		log.Printf("Model error (%s): %v", me.Kind, err)
		RespondError(c, code, message)
		return
	}

	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Planning session not found or expired")
	case errors.Is(err, ErrSlotOutOfRange):
		RespondError(c, http.StatusNotFound, "No activity at that position")
	case errors.Is(err, ErrRegenerateInFlight):
		RespondError(c, http.StatusConflict, "That activity is already being regenerated")
	case errors.Is(err, ErrMergeConflict):
		RespondError(c, http.StatusConflict, "The itinerary changed; result discarded")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
