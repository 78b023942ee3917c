package dto

import "itinerary-service/internal/ports"

type ImportContentResponse struct {
	SourceType string `json:"source_type,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

type ImportPlaceResponse struct {
	PlaceID   string  `json:"place_id,omitempty"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string  `json:"category,omitempty"`
}

type ImportResponse struct {
	Content ImportContentResponse `json:"content"`
	Places  []ImportPlaceResponse `json:"places"`
}

func NewImportResponse(payload ports.TaskPayload) ImportResponse {
	res := ImportResponse{
		Content: ImportContentResponse{
			SourceType: payload.Content.SourceType,
			SourceURL:  payload.Content.SourceURL,
			Title:      payload.Content.Title,
			Text:       payload.Content.Text,
			AuthorName: payload.Content.AuthorName,
		},
		Places: make([]ImportPlaceResponse, 0, len(payload.Places)),
	}
	for _, p := range payload.Places {
		res.Places = append(res.Places, ImportPlaceResponse{
			PlaceID:   p.PlaceID,
			Name:      p.Name,
			Address:   p.Address,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Category:  p.Category,
		})
	}
	return res
}
