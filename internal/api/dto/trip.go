package dto

import "itinerary-service/internal/domain"

const dateLayout = "2006-01-02"

type CreateTripRequest struct {
	Title         string `json:"title"`
	Destination   string `json:"destination"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TransportMode string `json:"transport_mode"`
}

type UpdateTripRequest struct {
	Title         *string `json:"title"`
	Destination   *string `json:"destination"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	TransportMode *string `json:"transport_mode"`
}

type TripResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Destination   string        `json:"destination"`
	StartDate     string        `json:"start_date,omitempty"`
	EndDate       string        `json:"end_date,omitempty"`
	CoverImage    string        `json:"cover_image,omitempty"`
	TransportMode string        `json:"transport_mode"`
	Days          []DayResponse `json:"days"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type DayResponse struct {
	ID       int            `json:"id"`
	DayOrder int            `json:"day_order"`
	Date     string         `json:"date,omitempty"`
	Spots    []SpotResponse `json:"spots"`
}

func NewTripResponse(t domain.Trip) TripResponse {
	res := TripResponse{
		ID:            t.ID,
		Title:         t.Title,
		Destination:   t.Destination,
		CoverImage:    t.CoverImage,
		TransportMode: t.TransportMode,
		Days:          make([]DayResponse, 0, len(t.Days)),
	}
	if t.StartDate != nil {
		res.StartDate = t.StartDate.Format(dateLayout)
	}
	if t.EndDate != nil {
		res.EndDate = t.EndDate.Format(dateLayout)
	}

	for _, d := range t.Days {
		day := DayResponse{
			ID:       d.ID,
			DayOrder: d.DayOrder,
			Spots:    make([]SpotResponse, 0, len(d.Spots)),
		}
		if d.Date != nil {
			day.Date = d.Date.Format(dateLayout)
		}
		for _, sp := range d.Spots {
			day.Spots = append(day.Spots, NewSpotResponse(sp))
		}
		res.Days = append(res.Days, day)
	}

	return res
}

func NewListTripsResponse(trips []domain.Trip) ListTripsResponse {
	res := ListTripsResponse{Trips: make([]TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, NewTripResponse(t))
	}
	return res
}
