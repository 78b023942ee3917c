package place

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Resolver looks up minimal place metadata for a coordinate against the
// backend place endpoint, with an optional read-through cache in front.
//
// The resolver is safe for concurrent use.
type Resolver struct {
	session *http.Client
	baseURL string
	cache   ports.PlaceInfoCache
}

func NewResolver(baseURL string, cache ports.PlaceInfoCache) (*Resolver, error) {
	if baseURL == "" {
		return nil, errors.New("place resolver: base URL is empty")
	}

	return &Resolver{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		cache:   cache,
	}, nil
}

var _ ports.PlaceInfoProvider = (*Resolver)(nil)

type placeInfoResponse struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Lookup resolves place metadata for a coordinate. Cache reads and writes are
// best effort; a failing cache never fails the lookup.
func (r *Resolver) Lookup(ctx context.Context, lat, lon float64) (_ ports.PlaceSummary, err error) {
	defer obs.Time(ctx, "place.Lookup")(&err)

	key := cacheKey(lat, lon)
	if r.cache != nil {
		cached, ok, cacheErr := r.cache.Get(ctx, key)
		if cacheErr != nil {
			logrus.WithError(cacheErr).Warn("place cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	summary, err := r.fetch(ctx, lat, lon)
	if err != nil {
		return ports.PlaceSummary{}, err
	}

	if r.cache != nil {
		if cacheErr := r.cache.Put(ctx, key, summary); cacheErr != nil {
			logrus.WithError(cacheErr).Warn("place cache write failed")
		}
	}

	return summary, nil
}

func (r *Resolver) fetch(ctx context.Context, lat, lon float64) (ports.PlaceSummary, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	endpoint := r.baseURL + "/places/lookup?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.PlaceSummary{}, fmt.Errorf("create place lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.session.Do(req)
	if err != nil {
		return ports.PlaceSummary{}, fmt.Errorf("place lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.PlaceSummary{}, fmt.Errorf("place lookup: unexpected status %d", resp.StatusCode)
	}

	var body placeInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.PlaceSummary{}, fmt.Errorf("decode place lookup response: %w", err)
	}

	return ports.PlaceSummary{Name: body.Name, ImageURL: body.ImageURL}, nil
}

func cacheKey(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lon, 'f', 6, 64)
}
