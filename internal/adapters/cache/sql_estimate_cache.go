package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"strings"
)

// SQLEstimateCache is a SQL-backed cache for provider-resolved travel
// estimates, keyed by origin, destination and transport mode.
type SQLEstimateCache struct {
	DB *sql.DB
}

func NewSQLEstimateCache(db *sql.DB) *SQLEstimateCache {
	return &SQLEstimateCache{DB: db}
}

var _ ports.EstimateCache = (*SQLEstimateCache)(nil)

// Get fetches a cached estimate for one leg.
func (s *SQLEstimateCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	mode string,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "estimate.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("estimate cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" || mode == "" {
		return ports.RouteResult{}, false, errors.New("get estimate cache: origin, destination and mode must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds
    FROM estimate_cache
    WHERE origin = $1
        AND destination = $2
        AND mode = $3;
	`

	var meters, seconds int
	err = s.DB.QueryRowContext(ctx, q, origin, destination, mode).Scan(&meters, &seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get estimate cache: query estimate_cache table: %w", err)
	}

	return ports.RouteResult{
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}, true, nil
}

// Put stores one resolved estimate, replacing any previous value for the leg.
func (s *SQLEstimateCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	mode string,
	result ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("estimate cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" || mode == "" {
		return errors.New("insert estimate cache: origin, destination and mode must not be empty")
	}

	q := `
	INSERT INTO estimate_cache (origin, destination, mode, distance_meters, duration_seconds)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, mode, result.DistanceMeters, result.DurationSeconds); err != nil {
		return fmt.Errorf("insert estimate cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
