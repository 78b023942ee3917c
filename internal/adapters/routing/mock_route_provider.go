package routing

import (
	"context"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinate
	Mode     domain.TransportMode
	Meters   int
	Seconds  int
}

type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[legKey(l.From, l.To, l.Mode)] = ports.RouteResult{DistanceMeters: l.Meters, DurationSeconds: l.Seconds}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (ports.RouteResult, error) {
	r, ok := p.m[legKey(origin, destination, mode)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing leg %v -> %v by %s", origin, destination, mode)
	}

	return r, nil
}

func legKey(from, to domain.Coordinate, mode domain.TransportMode) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f|%s", from.Lat, from.Lon, to.Lat, to.Lon, mode)
}
