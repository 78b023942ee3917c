package place

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"itinerary-service/internal/ports"

	"github.com/stretchr/testify/require"
)

type memCache struct {
	m map[string]ports.PlaceSummary
}

func (c *memCache) Get(ctx context.Context, key string) (ports.PlaceSummary, bool, error) {
	s, ok := c.m[key]
	return s, ok, nil
}

func (c *memCache) Put(ctx context.Context, key string, summary ports.PlaceSummary) error {
	c.m[key] = summary
	return nil
}

func TestLookupCachesByCoordinateKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/places/lookup", r.URL.Path)
		require.Equal(t, "35.714800", r.URL.Query().Get("lat"))
		require.Equal(t, "139.796700", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"name": "Senso-ji", "image_url": "https://img.example/sensoji.jpg"}`))
	}))
	defer srv.Close()

	cache := &memCache{m: map[string]ports.PlaceSummary{}}
	resolver, err := NewResolver(srv.URL, cache)
	require.NoError(t, err)

	want := ports.PlaceSummary{Name: "Senso-ji", ImageURL: "https://img.example/sensoji.jpg"}

	got, err := resolver.Lookup(context.Background(), 35.7148, 139.7967)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Second lookup for the same coordinate is served from the cache.
	got, err = resolver.Lookup(context.Background(), 35.7148, 139.7967)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.EqualValues(t, 1, calls.Load())

	require.Contains(t, cache.m, "35.714800,139.796700")
}

func TestLookupWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Ueno Park"}`))
	}))
	defer srv.Close()

	resolver, err := NewResolver(srv.URL, nil)
	require.NoError(t, err)

	got, err := resolver.Lookup(context.Background(), 35.7156, 139.7745)
	require.NoError(t, err)
	require.Equal(t, "Ueno Park", got.Name)
}

func TestLookupUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	resolver, err := NewResolver(srv.URL, nil)
	require.NoError(t, err)

	_, err = resolver.Lookup(context.Background(), 1, 2)
	require.Error(t, err)
}
