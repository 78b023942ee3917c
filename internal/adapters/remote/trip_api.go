package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const wireDateLayout = "2006-01-02"

// TripAPI implements the TripRemote port against the JSON trip backend.
//
// Wire fields are snake_case, dates travel as yyyy-MM-dd (timestamps are
// tolerated on decode), success is HTTP 200. Transient failures are retried
// with backoff.
type TripAPI struct {
	session *http.Client
	baseURL string
}

func NewTripAPI(baseURL string) *TripAPI {
	return &TripAPI{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

var _ ports.TripRemote = (*TripAPI)(nil)

func (a *TripAPI) ListTrips(ctx context.Context) (_ []domain.Trip, err error) {
	defer obs.Time(ctx, "remote.ListTrips")(&err)

	var wire []tripWire
	if err := a.call(ctx, http.MethodGet, "/trips", nil, &wire); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips := make([]domain.Trip, 0, len(wire))
	for _, w := range wire {
		trips = append(trips, w.toDomain())
	}
	return trips, nil
}

func (a *TripAPI) CreateTrip(ctx context.Context, title, destination, startDate, endDate, transportMode string) (_ domain.Trip, err error) {
	defer obs.Time(ctx, "remote.CreateTrip")(&err)

	payload := map[string]string{
		"title":          title,
		"destination":    destination,
		"start_date":     startDate,
		"end_date":       endDate,
		"transport_mode": transportMode,
	}

	var wire tripWire
	if err := a.call(ctx, http.MethodPost, "/trips", payload, &wire); err != nil {
		return domain.Trip{}, fmt.Errorf("create trip: %w", err)
	}
	return wire.toDomain(), nil
}

func (a *TripAPI) GetTrip(ctx context.Context, tripID string) (_ domain.Trip, err error) {
	defer obs.Time(ctx, "remote.GetTrip")(&err)

	var wire tripWire
	if err := a.call(ctx, http.MethodGet, "/trips/"+url.PathEscape(tripID), nil, &wire); err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, err)
	}
	return wire.toDomain(), nil
}

func (a *TripAPI) UpdateTrip(ctx context.Context, tripID string, update ports.TripUpdate) (_ domain.Trip, err error) {
	defer obs.Time(ctx, "remote.UpdateTrip")(&err)

	payload := map[string]any{}
	if update.Title != nil {
		payload["title"] = *update.Title
	}
	if update.Destination != nil {
		payload["destination"] = *update.Destination
	}
	if update.StartDate != nil {
		payload["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		payload["end_date"] = *update.EndDate
	}
	if update.TransportMode != nil {
		payload["transport_mode"] = *update.TransportMode
	}

	var wire tripWire
	if err := a.call(ctx, http.MethodPut, "/trips/"+url.PathEscape(tripID), payload, &wire); err != nil {
		return domain.Trip{}, fmt.Errorf("update trip %q: %w", tripID, err)
	}
	return wire.toDomain(), nil
}

func (a *TripAPI) DeleteTrip(ctx context.Context, tripID string) (err error) {
	defer obs.Time(ctx, "remote.DeleteTrip")(&err)

	if err := a.call(ctx, http.MethodDelete, "/trips/"+url.PathEscape(tripID), nil, nil); err != nil {
		return fmt.Errorf("delete trip %q: %w", tripID, err)
	}
	return nil
}

func (a *TripAPI) AddSpot(ctx context.Context, dayID int, spot domain.Spot) (_ domain.Spot, err error) {
	defer obs.Time(ctx, "remote.AddSpot")(&err)

	var wire spotWire
	path := fmt.Sprintf("/days/%d/spots", dayID)
	if err := a.call(ctx, http.MethodPost, path, spotToWire(spot), &wire); err != nil {
		return domain.Spot{}, fmt.Errorf("add spot to day %d: %w", dayID, err)
	}
	return wire.toDomain(), nil
}

func (a *TripAPI) UpdateSpot(ctx context.Context, spot domain.Spot) (_ domain.Spot, err error) {
	defer obs.Time(ctx, "remote.UpdateSpot")(&err)

	var wire spotWire
	if err := a.call(ctx, http.MethodPut, "/spots/"+url.PathEscape(spot.ID), spotToWire(spot), &wire); err != nil {
		return domain.Spot{}, fmt.Errorf("update spot %q: %w", spot.ID, err)
	}
	return wire.toDomain(), nil
}

func (a *TripAPI) DeleteSpot(ctx context.Context, spotID string) (err error) {
	defer obs.Time(ctx, "remote.DeleteSpot")(&err)

	if err := a.call(ctx, http.MethodDelete, "/spots/"+url.PathEscape(spotID), nil, nil); err != nil {
		return fmt.Errorf("delete spot %q: %w", spotID, err)
	}
	return nil
}

func (a *TripAPI) ReorderSpots(ctx context.Context, dayID int, spotIDs []string) (err error) {
	defer obs.Time(ctx, "remote.ReorderSpots")(&err)

	path := "/spots/reorder?day_id=" + strconv.Itoa(dayID)
	if err := a.call(ctx, http.MethodPost, path, spotIDs, nil); err != nil {
		return fmt.Errorf("reorder spots day %d: %w", dayID, err)
	}
	return nil
}

// call issues one JSON request with retry and decodes the 200 response into
// out when out is non-nil.
func (a *TripAPI) call(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := doWithRetry(ctx, a.session, func() (*http.Request, error) {
		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: method + " " + path, Err: err}
	}
	return nil
}
