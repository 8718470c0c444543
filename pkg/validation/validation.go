package validation

import (
	"fmt"
	"strings"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

// The model's output is untrusted and passes the same gate as user input:
// every function here returns nil or a *utils.ValidationError enumerating all
// offending field paths, never just the first one.

func ValidateTripRequest(req request_models.TripRequest) error {
	var v []utils.FieldViolation

	if len(req.Destinations) == 0 {
		v = append(v, utils.FieldViolation{Path: "destinations", Message: "at least one destination is required"})
	}
	for i, d := range req.Destinations {
		if strings.TrimSpace(d.Name) == "" {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("destinations[%d].name", i), Message: "must not be empty"})
		}
		if d.DurationDays < 1 {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("destinations[%d].durationDays", i), Message: "must be at least 1"})
		}
	}
	if req.NumberOfTravelers < 1 {
		v = append(v, utils.FieldViolation{Path: "numberOfTravelers", Message: "must be at least 1"})
	}
	if strings.TrimSpace(req.Budget) == "" {
		v = append(v, utils.FieldViolation{Path: "budget", Message: "must not be empty"})
	}
	if p := req.IndoorOutdoorPreference; p != nil && (*p < 0 || *p > 100) {
		v = append(v, utils.FieldViolation{Path: "indoorOutdoorPreference", Message: "must be between 0 and 100"})
	}

	return asError(v)
}

// ValidateItinerary checks the model's full-generation payload against the
// itinerary invariants: day count equals the sum of requested durations and
// day numbers are exactly 1..N with no gaps or repeats.
func ValidateItinerary(it *response_models.Itinerary, expectedDays int) error {
	var v []utils.FieldViolation

	if it == nil {
		return asError([]utils.FieldViolation{{Path: "itinerary", Message: "missing"}})
	}
	if len(it.DailyItineraries) != expectedDays {
		v = append(v, utils.FieldViolation{
			Path:    "dailyItineraries",
			Message: fmt.Sprintf("expected %d days, got %d", expectedDays, len(it.DailyItineraries)),
		})
	}
	for i, day := range it.DailyItineraries {
		if day.Day != i+1 {
			v = append(v, utils.FieldViolation{
				Path:    fmt.Sprintf("dailyItineraries[%d].day", i),
				Message: fmt.Sprintf("expected day %d, got %d", i+1, day.Day),
			})
		}
		if strings.TrimSpace(day.Destination) == "" {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("dailyItineraries[%d].destination", i), Message: "must not be empty"})
		}
		if len(day.Activities) == 0 {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("dailyItineraries[%d].activities", i), Message: "must not be empty"})
		}
		for j, act := range day.Activities {
			if strings.TrimSpace(act.Description) == "" {
				v = append(v, utils.FieldViolation{
					Path:    fmt.Sprintf("dailyItineraries[%d].activities[%d].description", i, j),
					Message: "must not be empty",
				})
			}
		}
	}
	for i, h := range it.HotelSuggestions {
		if strings.TrimSpace(h.Name) == "" {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("hotelSuggestions[%d].name", i), Message: "must not be empty"})
		}
		if strings.TrimSpace(h.Destination) == "" {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("hotelSuggestions[%d].destination", i), Message: "must not be empty"})
		}
	}
	for i, t := range it.TransportSuggestions {
		if strings.TrimSpace(t.Type) == "" {
			v = append(v, utils.FieldViolation{Path: fmt.Sprintf("transportSuggestions[%d].type", i), Message: "must not be empty"})
		}
	}

	return asError(v)
}

func ValidateRegenerationResult(res response_models.RegenerationResult) error {
	var v []utils.FieldViolation
	if strings.TrimSpace(res.NewActivity) == "" {
		v = append(v, utils.FieldViolation{Path: "newActivity", Message: "must not be empty"})
	}
	if strings.TrimSpace(res.Reasoning) == "" {
		v = append(v, utils.FieldViolation{Path: "reasoning", Message: "must not be empty"})
	}
	return asError(v)
}

func ValidateImageResult(res response_models.ImageResult) error {
	var v []utils.FieldViolation
	if res.ImageURL == "" {
		v = append(v, utils.FieldViolation{Path: "imageUrl", Message: "must not be empty"})
	} else if !strings.HasPrefix(res.ImageURL, "data:") {
		v = append(v, utils.FieldViolation{Path: "imageUrl", Message: "must be a data URI"})
	}
	return asError(v)
}

func asError(v []utils.FieldViolation) error {
	if len(v) == 0 {
		return nil
	}
	return &utils.ValidationError{Violations: v}
}
