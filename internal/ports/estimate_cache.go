package ports

import "context"

// Port: persistent cache for provider-resolved route results, keyed by
// origin, destination ("lat,lon" strings) and transport mode.
type EstimateCache interface {
	// Get returns the cached result and whether it was present.
	Get(ctx context.Context, origin, destination, mode string) (RouteResult, bool, error)
	Put(ctx context.Context, origin, destination, mode string, result RouteResult) error
}
