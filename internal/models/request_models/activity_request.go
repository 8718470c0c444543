package request_models

// ActivitySlotRequest addresses one activity by its current position in the
// held itinerary. Identity is purely positional: (dayIndex, activityIndex)
// into dailyItineraries and its activities array, both zero-based.
type ActivitySlotRequest struct {
	DayIndex      int `json:"dayIndex"`
	ActivityIndex int `json:"activityIndex"`
}
