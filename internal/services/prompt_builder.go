package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

// maxRegenContextChars caps how much of the current itinerary is embedded in
// a regeneration prompt so a long trip cannot blow the model's context
// window. Past the cap only the day plans are sent, hard-truncated as a last
// resort.
const maxRegenContextChars = 12000

const itinerarySchema = `{
  "dailyItineraries": [
    {
      "day": 1,
      "destination": "City, Country",
      "activities": [
        {
          "description": "What to do, specific and self-contained",
          "cost": "Estimated cost, e.g. 'Free', '€17 per person'",
          "metroStations": "Nearest metro/transit stops (optional)",
          "link": "Official website if one exists (optional)",
          "transportToNextActivity": {
            "description": "How to reach the next activity (optional)",
            "googleMapsLink": "https://www.google.com/maps/dir/..."
          }
        }
      ]
    }
  ],
  "hotelSuggestions": [
    {"name": "Hotel name", "cost": "Price range per night", "bookingLink": "URL", "destination": "City, Country"}
  ],
  "transportSuggestions": [
    {"type": "Flight|Train|Bus", "description": "Leg between two destinations", "bookingLink": "URL"}
  ],
  "costEffectiveTransportSuggestions": [
    {"destination": "City, Country", "suggestion": "Cheapest way to move around locally", "airportTransport": "How to get from the airport to the city"}
  ]
}`

// BuildItineraryPrompt maps a validated trip request to the full-generation
// instruction. Every destination name and every supplied interest appears
// verbatim in the output.
func BuildItineraryPrompt(req request_models.TripRequest) string {
	var b strings.Builder

	b.WriteString("You are an expert travel planner. Create a complete travel itinerary.\n\n")
	b.WriteString("Trip:\n")
	for _, d := range req.Destinations {
		fmt.Fprintf(&b, "- %s for %d day(s)", d.Name, d.DurationDays)
		if d.ArrivalTime != "" {
			fmt.Fprintf(&b, ", arriving %s", d.ArrivalTime)
		}
		if d.DepartureTime != "" {
			fmt.Fprintf(&b, ", departing %s", d.DepartureTime)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Travelers: %d\n", req.NumberOfTravelers)
	fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	if req.Interests != "" {
		fmt.Fprintf(&b, "Interests: %s\n", req.Interests)
	}
	fmt.Fprintf(&b, "Indoor/outdoor preference: %d (0 = fully indoor, 100 = fully outdoor)\n", req.IndoorOutdoor())

	fmt.Fprintf(&b, `
Requirements:
1. Plan exactly %d day(s) in total, one dailyItineraries entry per day, numbered 1..%d with no gaps. Each day's "destination" is the city the traveler is in that day, in the order listed above.
2. Suggest hotels grouped by destination: at least one hotelSuggestions entry per destination, matching the budget.
3. Suggest inter-destination transport (flight, train or bus) for each leg between consecutive destinations in transportSuggestions.
4. Give per-destination local transport guidance in costEffectiveTransportSuggestions, including how to get from the airport.
5. Where it helps, give each activity a transportToNextActivity hint describing how to move on to the next one.
6. Respect the budget, the interests and the indoor/outdoor preference when choosing activities.

Return ONLY valid JSON matching this exact schema, no markdown, no extra text:
%s
`, req.TotalDays(), req.TotalDays(), itinerarySchema)

	return b.String()
}

// BuildRegenerationPrompt maps one activity replacement request to its
// instruction. The full current itinerary rides along as read-only context so
// the model avoids suggesting something already planned; the contract is to
// return only a replacement description and a short rationale, never a
// revised itinerary.
func BuildRegenerationPrompt(location, activity, itineraryContext, budget, interests string) string {
	var b strings.Builder

	b.WriteString("You are a travel expert tasked with improving travel itineraries.\n")
	b.WriteString("A traveler wants to replace one activity in their itinerary.\n\n")
	fmt.Fprintf(&b, "Location: %s\n", location)
	fmt.Fprintf(&b, "Activity to replace: %s\n", activity)
	fmt.Fprintf(&b, "Budget: %s\n", budget)
	if interests != "" {
		fmt.Fprintf(&b, "Interests: %s\n", interests)
	}
	fmt.Fprintf(&b, "\nCurrent itinerary (context only, do not repeat any of it):\n%s\n", itineraryContext)

	b.WriteString(`
Suggest exactly one new activity that is a good replacement: appropriate for the location, the budget and the interests, and not already in the itinerary. Explain briefly why you picked it.

Return ONLY valid JSON in this exact shape, no markdown, no extra text:
{"newActivity": "the replacement activity description", "reasoning": "why this activity"}
`)

	return b.String()
}

// BuildImagePrompt composes the photorealistic-image directive for one activity.
func BuildImagePrompt(description, location string) string {
	return fmt.Sprintf(
		"A vibrant, high-quality, photorealistic image of: %s, in %s. "+
			"The photo should be suitable for a travel blog, with a professional look. "+
			"Do not include any people in the image.",
		description, location)
}

// MarshalItineraryContext renders the held itinerary for embedding into a
// regeneration prompt, applying the context-size cap.
func MarshalItineraryContext(it *response_models.Itinerary) string {
	raw, err := json.Marshal(it)
	if err != nil {
		return ""
	}
	if len(raw) <= maxRegenContextChars {
		return string(raw)
	}

	// Too large: days only, hotels and transport add nothing to duplicate
	// avoidance.
	daysOnly, err := json.Marshal(struct {
		DailyItineraries []response_models.DayPlan `json:"dailyItineraries"`
	}{it.DailyItineraries})
	if err == nil && len(daysOnly) <= maxRegenContextChars {
		return string(daysOnly)
	}
	if err != nil {
		daysOnly = raw
	}
	return string(daysOnly[:maxRegenContextChars])
}
