package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Distance and travel duration between two coordinates.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for computing a route between two coordinates with a given
// transport mode. Implementations may fail or time out; callers are expected
// to fall back to a closed-form estimate.
type RouteProvider interface {
	// Return travel distance and duration from origin to destination.
	GetRoute(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (RouteResult, error)
}
