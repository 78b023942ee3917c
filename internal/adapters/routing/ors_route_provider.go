package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"math"
	"net/http"
	"time"
)

// ErrUnsupportedMode is returned for transport modes OpenRouteService has no
// routing profile for. Callers treat it like any other provider failure and
// fall back to a straight-line estimate.
var ErrUnsupportedMode = errors.New("transport mode not supported by routing provider")

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint. It handles profile selection per transport mode and
// external API calls with retry/backoff.
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
	}

	return provider, nil
}

// profileFor maps a transport mode onto an ORS routing profile. Transit modes
// have no ORS equivalent and report ErrUnsupportedMode.
func profileFor(mode domain.TransportMode) (string, error) {
	switch mode {
	case domain.ModeWalk:
		return "foot-walking", nil
	case domain.ModeCar:
		return "driving-car", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// GetRoute fetches travel distance and duration from origin to destination
// for the given transport mode.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TransportMode,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	profile, err := profileFor(mode)
	if err != nil {
		return ports.RouteResult{}, err
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, profile)

	// ORS takes lon,lat order.
	bodyObj := directionsRequest{
		Coordinates: [][]float64{
			{origin.Lon, origin.Lat},
			{destination.Lon, destination.Lat},
		},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteResult{}, errors.New("directions response contains no routes")
	}

	summary := dr.Routes[0].Summary

	// ORS returns float metrics; round to nearest integer for domain consistency.
	return ports.RouteResult{
		DistanceMeters:  int(math.Round(summary.Distance)),
		DurationSeconds: int(math.Round(summary.Duration)),
	}, nil
}
