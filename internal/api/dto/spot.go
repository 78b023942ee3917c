package dto

import "itinerary-service/internal/domain"

type SpotRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	StartTime    string   `json:"start_time"`
	StayDuration string   `json:"stay_duration"`
	Notes        []string `json:"notes"`
	ImageURL     string   `json:"image_url"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	TravelMode   string   `json:"travel_mode"`
}

// ToDomain builds a spot from the request; id and ordering are assigned by
// the store.
func (r SpotRequest) ToDomain() domain.Spot {
	return domain.Spot{
		Name:         r.Name,
		Category:     domain.ParseSpotCategory(r.Category),
		StartTime:    r.StartTime,
		StayDuration: r.StayDuration,
		Notes:        r.Notes,
		ImageURL:     r.ImageURL,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		TravelMode:   domain.ParseTransportMode(r.TravelMode),
	}
}

// ReorderRequest moves a spot within a day (from/to positions) or, when
// to_day_id is set, into another day.
type ReorderRequest struct {
	DayID   int    `json:"day_id"`
	From    int    `json:"from"`
	To      int    `json:"to"`
	SpotID  string `json:"spot_id"`
	ToDayID *int   `json:"to_day_id"`
}

type TransportRequest struct {
	Mode string `json:"mode"`
}

type SpotResponse struct {
	ID             string         `json:"id"`
	DayID          int            `json:"day_id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	StartTime      string         `json:"start_time,omitempty"`
	StayDuration   string         `json:"stay_duration,omitempty"`
	Notes          []string       `json:"notes,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	SortOrder      int            `json:"sort_order"`
	TravelMode     string         `json:"travel_mode"`
	TravelTime     string         `json:"travel_time,omitempty"`
	TravelDistance string         `json:"travel_distance,omitempty"`
	Place          *PlaceResponse `json:"place,omitempty"`
}

type PlaceResponse struct {
	PlaceID  string           `json:"place_id,omitempty"`
	Name     string           `json:"name"`
	Address  string           `json:"address,omitempty"`
	Category string           `json:"category,omitempty"`
	Rating   float64          `json:"rating,omitempty"`
	Periods  []PeriodResponse `json:"periods,omitempty"`
}

type PeriodResponse struct {
	Day   int    `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

func NewSpotResponse(s domain.Spot) SpotResponse {
	res := SpotResponse{
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
		place := &PlaceResponse{
			PlaceID:  s.Place.PlaceID,
			Name:     s.Place.Name,
			Address:  s.Place.Address,
			Category: s.Place.Category,
			Rating:   s.Place.Rating,
		}
		for _, p := range s.Place.Periods {
			place.Periods = append(place.Periods, PeriodResponse{Day: p.Day, Open: p.Open, Close: p.Close})
		}
		res.Place = place
	}

	return res
}
