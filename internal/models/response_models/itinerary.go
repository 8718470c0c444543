package response_models

// Itinerary is the complete structured travel plan returned by the model and
// held for the session. JSON keys mirror the schema the model is instructed
// to produce.
type Itinerary struct {
	DailyItineraries                  []DayPlan                          `json:"dailyItineraries"`
	HotelSuggestions                  []HotelSuggestion                  `json:"hotelSuggestions"`
	TransportSuggestions              []TransportSuggestion              `json:"transportSuggestions"`
	CostEffectiveTransportSuggestions []CostEffectiveTransportSuggestion `json:"costEffectiveTransportSuggestions"`
}

type DayPlan struct {
	Day         int        `json:"day"`
	Destination string     `json:"destination"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	Description             string         `json:"description"`
	Cost                    string         `json:"cost"`
	MetroStations           string         `json:"metroStations,omitempty"`
	Link                    string         `json:"link,omitempty"`
	TransportToNextActivity *TransportHint `json:"transportToNextActivity,omitempty"`
}

type TransportHint struct {
	Description    string `json:"description"`
	GoogleMapsLink string `json:"googleMapsLink,omitempty"`
}

type HotelSuggestion struct {
	Name        string `json:"name"`
	Cost        string `json:"cost"`
	BookingLink string `json:"bookingLink,omitempty"`
	Destination string `json:"destination"`
}

// TransportSuggestion is an inter-destination leg (flight, train, bus, ...).
type TransportSuggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	BookingLink string `json:"bookingLink,omitempty"`
}

// CostEffectiveTransportSuggestion is per-destination local transport advice.
type CostEffectiveTransportSuggestion struct {
	Destination      string `json:"destination"`
	Suggestion       string `json:"suggestion"`
	AirportTransport string `json:"airportTransport,omitempty"`
}

// Clone deep-copies the itinerary so a patch never mutates a structure a
// reader may still be holding.
func (it *Itinerary) Clone() *Itinerary {
	if it == nil {
		return nil
	}
	out := &Itinerary{}

	if it.DailyItineraries != nil {
		out.DailyItineraries = make([]DayPlan, len(it.DailyItineraries))
		for i, day := range it.DailyItineraries {
			copied := DayPlan{Day: day.Day, Destination: day.Destination}
			if day.Activities != nil {
				copied.Activities = make([]Activity, len(day.Activities))
				for j, act := range day.Activities {
					copied.Activities[j] = act
					if act.TransportToNextActivity != nil {
						hint := *act.TransportToNextActivity
						copied.Activities[j].TransportToNextActivity = &hint
					}
				}
			}
			out.DailyItineraries[i] = copied
		}
	}
	if it.HotelSuggestions != nil {
		out.HotelSuggestions = append([]HotelSuggestion(nil), it.HotelSuggestions...)
	}
	if it.TransportSuggestions != nil {
		out.TransportSuggestions = append([]TransportSuggestion(nil), it.TransportSuggestions...)
	}
	if it.CostEffectiveTransportSuggestions != nil {
		out.CostEffectiveTransportSuggestions = append([]CostEffectiveTransportSuggestion(nil), it.CostEffectiveTransportSuggestions...)
	}
	return out
}
