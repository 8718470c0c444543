package request_models

// DefaultIndoorOutdoorPreference is applied when the form leaves the slider untouched.
const DefaultIndoorOutdoorPreference = 50

type Destination struct {
	Name          string `json:"name"`
	DurationDays  int    `json:"durationDays"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
}

// TripRequest is the validated form input for one full itinerary generation.
// IndoorOutdoorPreference is a pointer so that an omitted field can be told
// apart from an explicit 0 (fully indoor).
type TripRequest struct {
	Destinations            []Destination `json:"destinations"`
	NumberOfTravelers       int           `json:"numberOfTravelers"`
	Budget                  string        `json:"budget"`
	Interests               string        `json:"interests,omitempty"`
	IndoorOutdoorPreference *int          `json:"indoorOutdoorPreference,omitempty"`
}

func (r TripRequest) IndoorOutdoor() int {
	if r.IndoorOutdoorPreference == nil {
		return DefaultIndoorOutdoorPreference
	}
	return *r.IndoorOutdoorPreference
}

// TotalDays is the requested itinerary length: the sum of all per-destination durations.
func (r TripRequest) TotalDays() int {
	total := 0
	for _, d := range r.Destinations {
		total += d.DurationDays
	}
	return total
}
