package remote

import (
	"itinerary-service/internal/domain"
	"time"
)

type tripWire struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Destination   string    `json:"destination"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	CoverImageURL string    `json:"cover_image_url"`
	TransportMode string    `json:"transport_mode"`
	Days          []dayWire `json:"days"`
}

type dayWire struct {
	ID       int        `json:"id"`
	DayOrder int        `json:"day_order"`
	Date     string     `json:"date"`
	Spots    []spotWire `json:"spots"`
}

type spotWire struct {
	ID             string     `json:"id"`
	DayID          int        `json:"day_id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	StartTime      string     `json:"start_time"`
	StayDuration   string     `json:"stay_duration"`
	Notes          []string   `json:"notes"`
	ImageURL       string     `json:"image_url"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	SortOrder      int        `json:"sort_order"`
	TravelMode     string     `json:"travel_mode"`
	TravelTime     string     `json:"travel_time"`
	TravelDistance string     `json:"travel_distance"`
	Place          *placeWire `json:"place"`
}

type placeWire struct {
	PlaceID  string       `json:"place_id"`
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Category string       `json:"category"`
	Rating   float64      `json:"rating"`
	Periods  []periodWire `json:"periods"`
}

type periodWire struct {
	Day   int    `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// The backend emits plain dates for days and full timestamps for trip
// boundaries depending on the record's age; decode leniently.
var wireDateLayouts = []string{
	wireDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseWireDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range wireDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (w tripWire) toDomain() domain.Trip {
	trip := domain.Trip{
		ID:            w.ID,
		Title:         w.Title,
		Destination:   w.Destination,
		StartDate:     parseWireDate(w.StartDate),
		EndDate:       parseWireDate(w.EndDate),
		CoverImage:    w.CoverImageURL,
		TransportMode: w.TransportMode,
	}
	trip.Days = make([]domain.Day, 0, len(w.Days))
	for _, d := range w.Days {
		trip.Days = append(trip.Days, d.toDomain())
	}
	return trip
}

func (w dayWire) toDomain() domain.Day {
	day := domain.Day{
		ID:       w.ID,
		DayOrder: w.DayOrder,
		Date:     parseWireDate(w.Date),
	}
	day.Spots = make([]domain.Spot, 0, len(w.Spots))
	for _, sp := range w.Spots {
		day.Spots = append(day.Spots, sp.toDomain())
	}
	return day
}

func (w spotWire) toDomain() domain.Spot {
	spot := domain.Spot{
		ID:             w.ID,
		DayID:          w.DayID,
		Name:           w.Name,
		Category:       domain.ParseSpotCategory(w.Category),
		StartTime:      w.StartTime,
		StayDuration:   w.StayDuration,
		Notes:          w.Notes,
		ImageURL:       w.ImageURL,
		Latitude:       w.Latitude,
		Longitude:      w.Longitude,
		SortOrder:      w.SortOrder,
		TravelMode:     domain.ParseTransportMode(w.TravelMode),
		TravelTime:     w.TravelTime,
		TravelDistance: w.TravelDistance,
	}
	if w.Place != nil {
		place := domain.Place{
			PlaceID:  w.Place.PlaceID,
			Name:     w.Place.Name,
			Address:  w.Place.Address,
			Category: w.Place.Category,
			Rating:   w.Place.Rating,
		}
		for _, p := range w.Place.Periods {
			place.Periods = append(place.Periods, domain.OpeningPeriod{Day: p.Day, Open: p.Open, Close: p.Close})
		}
		spot.Place = &place
	}
	return spot
}

func spotToWire(s domain.Spot) spotWire {
	w := spotWire{
		ID:             s.ID,
		DayID:          s.DayID,
		Name:           s.Name,
		Category:       string(s.Category),
		StartTime:      s.StartTime,
		StayDuration:   s.StayDuration,
		Notes:          s.Notes,
		ImageURL:       s.ImageURL,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		SortOrder:      s.SortOrder,
		TravelMode:     string(s.TravelMode),
		TravelTime:     s.TravelTime,
		TravelDistance: s.TravelDistance,
	}
	if s.Place != nil {
		place := placeWire{
			PlaceID:  s.Place.PlaceID,
			Name:     s.Place.Name,
			Address:  s.Place.Address,
			Category: s.Place.Category,
			Rating:   s.Place.Rating,
		}
		for _, p := range s.Place.Periods {
			place.Periods = append(place.Periods, periodWire{Day: p.Day, Open: p.Open, Close: p.Close})
		}
		w.Place = &place
	}
	return w
}
