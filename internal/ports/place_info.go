package ports

import "context"

// Minimal place metadata resolved from a coordinate.
type PlaceSummary struct {
	Name     string
	ImageURL string
}

// Port: reverse lookup of place metadata by coordinate.
type PlaceInfoProvider interface {
	Lookup(ctx context.Context, lat, lon float64) (PlaceSummary, error)
}

// Port: bounded cache for place lookups, keyed by a "lat,lon" string.
// Implementations evict by TTL or capacity; entries may disappear at any time.
type PlaceInfoCache interface {
	Get(ctx context.Context, key string) (PlaceSummary, bool, error)
	Put(ctx context.Context, key string, summary PlaceSummary) error
}
