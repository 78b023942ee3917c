package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Fields accepted by the remote API when creating or updating a trip.
// Nil pointers are omitted from the update payload.
type TripUpdate struct {
	Title         *string
	Destination   *string
	StartDate     *string
	EndDate       *string
	TransportMode *string
}

// Port: boundary to the remote trip API, the source of truth for itinerary
// state. All calls are I/O bound and honor the supplied context.
type TripRemote interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	CreateTrip(ctx context.Context, title, destination, startDate, endDate, transportMode string) (domain.Trip, error)
	GetTrip(ctx context.Context, tripID string) (domain.Trip, error)
	UpdateTrip(ctx context.Context, tripID string, update TripUpdate) (domain.Trip, error)
	DeleteTrip(ctx context.Context, tripID string) error

	AddSpot(ctx context.Context, dayID int, spot domain.Spot) (domain.Spot, error)
	UpdateSpot(ctx context.Context, spot domain.Spot) (domain.Spot, error)
	DeleteSpot(ctx context.Context, spotID string) error
	ReorderSpots(ctx context.Context, dayID int, spotIDs []string) error
}
