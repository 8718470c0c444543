package response_models

// RegenerationResult is the model's answer to a single-activity regeneration.
// Only NewActivity is merged back into the held itinerary; Reasoning is
// display/audit data and is never persisted.
type RegenerationResult struct {
	NewActivity string `json:"newActivity"`
	Reasoning   string `json:"reasoning"`
}

// ImageResult carries a generated illustration as a data URI
// (data:<mimetype>;base64,<data>). It lives in per-slot session state, never
// inside the Itinerary itself.
type ImageResult struct {
	ImageURL string `json:"imageUrl"`
}

// PlanResponse is what a successful full generation returns to the client:
// the itinerary plus the token addressing the session that now holds it.
type PlanResponse struct {
	SessionToken string     `json:"sessionToken"`
	Itinerary    *Itinerary `json:"itinerary"`
}

// RegenerateResponse returns the regeneration outcome together with the
// patched itinerary so the client can re-render without a second round trip.
type RegenerateResponse struct {
	NewActivity string     `json:"newActivity"`
	Reasoning   string     `json:"reasoning"`
	Itinerary   *Itinerary `json:"itinerary"`
}

// CurrentPlanResponse is the held itinerary decorated with the image URLs
// synthesized so far, keyed "dayIndex:activityIndex".
type CurrentPlanResponse struct {
	Itinerary *Itinerary        `json:"itinerary"`
	ImageURLs map[string]string `json:"imageUrls,omitempty"`
}
