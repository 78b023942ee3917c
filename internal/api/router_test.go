package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"itinerary-service/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	trips []domain.Trip
}

func (f *fakeRemote) ListTrips(ctx context.Context) ([]domain.Trip, error) { return f.trips, nil }

func (f *fakeRemote) CreateTrip(ctx context.Context, title, destination, startDate, endDate, transportMode string) (domain.Trip, error) {
	return domain.Trip{ID: "created", Title: title, Destination: destination, TransportMode: transportMode}, nil
}

func (f *fakeRemote) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	return domain.Trip{ID: tripID}, nil
}

func (f *fakeRemote) UpdateTrip(ctx context.Context, tripID string, update ports.TripUpdate) (domain.Trip, error) {
	return domain.Trip{ID: tripID}, nil
}

func (f *fakeRemote) DeleteTrip(ctx context.Context, tripID string) error { return nil }

func (f *fakeRemote) AddSpot(ctx context.Context, dayID int, spot domain.Spot) (domain.Spot, error) {
	spot.ID = "srv-spot"
	spot.DayID = dayID
	return spot, nil
}

func (f *fakeRemote) UpdateSpot(ctx context.Context, spot domain.Spot) (domain.Spot, error) {
	return spot, nil
}

func (f *fakeRemote) DeleteSpot(ctx context.Context, spotID string) error { return nil }

func (f *fakeRemote) ReorderSpots(ctx context.Context, dayID int, spotIDs []string) error {
	return nil
}

type fixedProvider struct{}

func (fixedProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (ports.RouteResult, error) {
	return ports.RouteResult{DistanceMeters: 1000, DurationSeconds: 600}, nil
}

type fakeIngest struct{}

func (fakeIngest) FetchTask(ctx context.Context, taskID string) (ports.TaskResult, error) {
	return ports.TaskResult{
		Status: ports.TaskCompleted,
		Result: &ports.TaskPayload{
			Content: ports.IngestedContent{SourceType: "instagram", Title: "Tokyo weekend"},
			Places:  []ports.SuggestedPlace{{Name: "Senso-ji", Latitude: 35.7148, Longitude: 139.7967}},
		},
	}, nil
}

func coord(lat, lon float64) (*float64, *float64) { return &lat, &lon }

func newTestServer(t *testing.T) (*httptest.Server, *store.ItineraryStore) {
	t.Helper()

	aLat, aLon := coord(35.6812, 139.7671)
	bLat, bLon := coord(35.6586, 139.7454)
	remote := &fakeRemote{trips: []domain.Trip{{
		ID:    "t1",
		Title: "Tokyo",
		Days: []domain.Day{{
			ID:       10,
			DayOrder: 1,
			Spots: []domain.Spot{
				{ID: "a", DayID: 10, Name: "Station", Latitude: aLat, Longitude: aLon},
				{ID: "b", DayID: 10, Name: "Tower", Latitude: bLat, Longitude: bLon},
			},
		}},
	}}}

	estimator := services.NewTravelEstimator(fixedProvider{}, nil)
	st := store.New(remote, estimator)
	require.NoError(t, st.FetchTrips(context.Background()))

	srv := httptest.NewServer(NewRouter(st, fakeIngest{}, nil, time.Millisecond, 3))
	t.Cleanup(srv.Close)
	return srv, st
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, srv, "/health", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func TestListAndGetTrips(t *testing.T) {
	srv, _ := newTestServer(t)

	var list struct {
		Trips []struct {
			ID   string `json:"id"`
			Days []struct {
				Spots []struct {
					ID string `json:"id"`
				} `json:"spots"`
			} `json:"days"`
		} `json:"trips"`
	}
	resp := getJSON(t, srv, "/trips", &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Trips, 1)
	require.Equal(t, "t1", list.Trips[0].ID)
	require.Len(t, list.Trips[0].Days[0].Spots, 2)

	resp = getJSON(t, srv, "/trips/t1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, srv, "/trips/ghost", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTripValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/trips", `{"title": "", "destination": ""}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/trips", `{"destination": "Osaka", "transport_mode": "train"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAddSpotToDay(t *testing.T) {
	srv, st := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/days/10/spots", `{"name": "Market", "latitude": 35.66, "longitude": 139.75}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	st.Wait()

	trip, err := st.Trip("t1")
	require.NoError(t, err)
	require.Len(t, trip.Days[0].Spots, 3)

	resp = doJSON(t, srv, http.MethodPost, "/days/999/spots", `{"name": "Nowhere"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReorderAndTransport(t *testing.T) {
	srv, st := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/spots/reorder", `{"day_id": 10, "from": 0, "to": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	trip, err := st.Trip("t1")
	require.NoError(t, err)
	require.Equal(t, "b", trip.Days[0].Spots[0].ID)

	resp = doJSON(t, srv, http.MethodPost, "/spots/b/transport", `{"mode": "walk"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st.Wait()

	trip, err = st.Trip("t1")
	require.NoError(t, err)
	require.Equal(t, domain.ModeWalk, trip.Days[0].Spots[0].TravelMode)
}

func TestRestoreWithoutSortConflicts(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/days/10/restore", `{}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestImportCompletedTask(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/import/task-1", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Content struct {
			Title string `json:"title"`
		} `json:"content"`
		Places []struct {
			Name string `json:"name"`
		} `json:"places"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Tokyo weekend", body.Content.Title)
	require.Len(t, body.Places, 1)
}
