package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-service/internal/ports"
	"net/http"
	"net/url"
	"time"
)

// IngestAPI implements the IngestClient port against the content-ingestion
// task endpoint.
type IngestAPI struct {
	session *http.Client
	baseURL string
}

func NewIngestAPI(baseURL string) *IngestAPI {
	return &IngestAPI{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

var _ ports.IngestClient = (*IngestAPI)(nil)

type taskWire struct {
	Status string `json:"status"`
	Result *struct {
		Content struct {
			SourceType string `json:"source_type"`
			SourceURL  string `json:"source_url"`
			Title      string `json:"title"`
			Text       string `json:"text"`
			AuthorName string `json:"author_name"`
		} `json:"content"`
		SuggestedPlaces []struct {
			PlaceID   string  `json:"place_id"`
			Name      string  `json:"name"`
			Address   string  `json:"address"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Category  string  `json:"category"`
		} `json:"suggested_places"`
	} `json:"result"`
	Error string `json:"error"`
}

// FetchTask returns one snapshot of the ingestion task. Polling is the
// caller's concern (services.PollTask).
func (a *IngestAPI) FetchTask(ctx context.Context, taskID string) (ports.TaskResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/task/"+url.PathEscape(taskID), nil)
	if err != nil {
		return ports.TaskResult{}, fmt.Errorf("fetch task %q: create request: %w", taskID, err)
	}
	req.Header.Set("Accept", "application/json")
	// Polling issues many short requests; keep-alive churn is not worth it.
	req.Header.Set("Connection", "close")

	resp, err := do(a.session, req)
	if err != nil {
		return ports.TaskResult{}, fmt.Errorf("fetch task %q: %w", taskID, err)
	}
	defer resp.Body.Close()

	var wire taskWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return ports.TaskResult{}, &DecodeError{Op: "task", Err: err}
	}

	result := ports.TaskResult{Status: ports.TaskStatus(wire.Status), Error: wire.Error}
	if wire.Result != nil {
		payload := ports.TaskPayload{
			Content: ports.IngestedContent{
				SourceType: wire.Result.Content.SourceType,
				SourceURL:  wire.Result.Content.SourceURL,
				Title:      wire.Result.Content.Title,
				Text:       wire.Result.Content.Text,
				AuthorName: wire.Result.Content.AuthorName,
			},
		}
		for _, p := range wire.Result.SuggestedPlaces {
			payload.Places = append(payload.Places, ports.SuggestedPlace{
				PlaceID:   p.PlaceID,
				Name:      p.Name,
				Address:   p.Address,
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Category:  p.Category,
			})
		}
		result.Result = &payload
	}
	return result, nil
}
