package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"itinerary-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestListTripsDecodesWireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trips", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": "t1",
			"title": "Kyoto",
			"destination": "Kyoto",
			"start_date": "2026-04-01",
			"end_date": "2026-04-03",
			"transport_mode": "train",
			"days": [{
				"id": 7,
				"day_order": 1,
				"date": "2026-04-01",
				"spots": [{
					"id": "s1",
					"day_id": 7,
					"name": "Fushimi Inari",
					"category": "Attraction",
					"latitude": 34.9671,
					"longitude": 135.7727,
					"travel_mode": "WALK",
					"place": {
						"name": "Fushimi Inari Taisha",
						"rating": 4.6,
						"periods": [{"day": 3, "open": "0900", "close": "1700"}]
					}
				}]
			}]
		}]`))
	}))
	defer srv.Close()

	api := NewTripAPI(srv.URL)
	trips, err := api.ListTrips(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip := trips[0]
	require.Equal(t, "Kyoto", trip.Title)
	require.NotNil(t, trip.StartDate)
	require.Equal(t, "2026-04-01", trip.StartDate.Format("2006-01-02"))
	require.Len(t, trip.Days, 1)

	spot := trip.Days[0].Spots[0]
	require.Equal(t, domain.CategoryAttraction, spot.Category)
	require.Equal(t, domain.ModeWalk, spot.TravelMode)
	require.NotNil(t, spot.Place)
	require.Equal(t, []domain.OpeningPeriod{{Day: 3, Open: "0900", Close: "1700"}}, spot.Place.Periods)
}

func TestAddSpotPostsSnakeCasePayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/days/7/spots", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"id": "srv-1", "day_id": 7, "name": "Nishiki Market"}`))
	}))
	defer srv.Close()

	lat, lon := 35.005, 135.765
	api := NewTripAPI(srv.URL)
	created, err := api.AddSpot(context.Background(), 7, domain.Spot{
		Name:       "Nishiki Market",
		Category:   domain.CategoryFood,
		Latitude:   &lat,
		Longitude:  &lon,
		TravelMode: domain.ModeWalk,
	})
	require.NoError(t, err)
	require.Equal(t, "srv-1", created.ID)

	require.Equal(t, "Nishiki Market", captured["name"])
	require.Equal(t, "food", captured["category"])
	require.Equal(t, "walk", captured["travel_mode"])
	require.Contains(t, captured, "stay_duration")
}

func TestReorderSpotsSendsIDList(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/spots/reorder", r.URL.Path)
		require.Equal(t, "9", r.URL.Query().Get("day_id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	api := NewTripAPI(srv.URL)
	require.NoError(t, api.ReorderSpots(context.Background(), 9, []string{"b", "a", "c"}))
	require.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestCallRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := NewTripAPI(srv.URL)
	trips, err := api.ListTrips(context.Background())
	require.NoError(t, err)
	require.Empty(t, trips)
	require.EqualValues(t, 3, calls.Load())
}

func TestCallSurfacesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such spot", http.StatusNotFound)
	}))
	defer srv.Close()

	api := NewTripAPI(srv.URL)
	err := api.DeleteSpot(context.Background(), "ghost")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusNotFound, se.Code)
}

func TestCallSurfacesDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	api := NewTripAPI(srv.URL)
	_, err := api.ListTrips(context.Background())

	var de *DecodeError
	require.ErrorAs(t, err, &de)
}
