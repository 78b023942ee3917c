package store

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRemote records calls and lets tests inject failures per operation.
type fakeRemote struct {
	mu      sync.Mutex
	nextID  int
	updates []domain.Spot
	reorders [][]string
	deleted []string
	added   []domain.Spot
	addedTo []int

	failDelete bool
	failAdd    bool
}

func (f *fakeRemote) ListTrips(ctx context.Context) ([]domain.Trip, error) { return nil, nil }

func (f *fakeRemote) CreateTrip(ctx context.Context, title, destination, startDate, endDate, transportMode string) (domain.Trip, error) {
	return domain.Trip{ID: "trip-remote", Title: title, Destination: destination}, nil
}

func (f *fakeRemote) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	return domain.Trip{ID: tripID}, nil
}

func (f *fakeRemote) UpdateTrip(ctx context.Context, tripID string, update ports.TripUpdate) (domain.Trip, error) {
	return domain.Trip{ID: tripID}, nil
}

func (f *fakeRemote) DeleteTrip(ctx context.Context, tripID string) error { return nil }

func (f *fakeRemote) AddSpot(ctx context.Context, dayID int, spot domain.Spot) (domain.Spot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// One-shot failure: the first add fails, a compensating add succeeds.
	if f.failAdd {
		f.failAdd = false
		return domain.Spot{}, errors.New("add rejected")
	}
	f.nextID++
	created := spot
	created.ID = fmt.Sprintf("srv-%d", f.nextID)
	created.DayID = dayID
	f.added = append(f.added, created)
	f.addedTo = append(f.addedTo, dayID)
	return created, nil
}

func (f *fakeRemote) UpdateSpot(ctx context.Context, spot domain.Spot) (domain.Spot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, spot)
	return spot, nil
}

func (f *fakeRemote) DeleteSpot(ctx context.Context, spotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("delete rejected")
	}
	f.deleted = append(f.deleted, spotID)
	return nil
}

func (f *fakeRemote) ReorderSpots(ctx context.Context, dayID int, spotIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, append([]string(nil), spotIDs...))
	return nil
}

func (f *fakeRemote) spotUpdates() []domain.Spot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Spot(nil), f.updates...)
}

// gatedProvider blocks each GetRoute call until the test releases it,
// simulating a slow routing collaborator.
type gatedProvider struct {
	gate    chan struct{}
	results chan ports.RouteResult
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{
		gate:    make(chan struct{}),
		results: make(chan ports.RouteResult, 8),
	}
}

func (p *gatedProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (ports.RouteResult, error) {
	select {
	case <-p.gate:
	case <-ctx.Done():
		return ports.RouteResult{}, ctx.Err()
	}
	select {
	case r := <-p.results:
		return r, nil
	default:
		return ports.RouteResult{}, errors.New("no result queued")
	}
}

func ptr(v float64) *float64 { return &v }

func seedStore(t *testing.T, remote ports.TripRemote, provider ports.RouteProvider) *ItineraryStore {
	t.Helper()

	estimator := services.NewTravelEstimator(provider, nil)
	estimator.Timeout = 2 * time.Second

	s := New(remote, estimator)
	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) // a Wednesday

	s.trips = []domain.Trip{{
		ID:    "t1",
		Title: "Tokyo",
		Days: []domain.Day{
			{
				ID:   10,
				Date: &date,
				Spots: []domain.Spot{
					{ID: "a", Name: "Hotel", Latitude: ptr(35.6812), Longitude: ptr(139.7671), TravelMode: domain.ModeTrain},
					{ID: "b", Name: "Museum", Latitude: ptr(35.7188), Longitude: ptr(139.7765), TravelMode: domain.ModeTrain},
					{ID: "c", Name: "Market", Latitude: ptr(35.6654), Longitude: ptr(139.7707), TravelMode: domain.ModeTrain},
				},
			},
			{ID: 11, Date: &date},
		},
	}}
	return s
}

func TestAddSpotReconcilesServerID(t *testing.T) {
	remote := &fakeRemote{}
	s := seedStore(t, remote, newGatedProvider())

	spot, err := s.AddSpot(context.Background(), "t1", 1, domain.Spot{Name: "Ramen"})
	require.NoError(t, err)
	require.Contains(t, spot.ID, "local-")

	// The optimistic copy is visible immediately.
	trips := s.Trips()
	require.Len(t, trips[0].Days[1].Spots, 1)

	s.Wait()

	trips = s.Trips()
	require.Equal(t, "srv-1", trips[0].Days[1].Spots[0].ID)
	require.Equal(t, "Ramen", trips[0].Days[1].Spots[0].Name)
	require.NoError(t, s.SyncStatus())
}

func TestDeleteSpotOptimisticWithRemoteFailure(t *testing.T) {
	remote := &fakeRemote{failDelete: true}
	s := seedStore(t, remote, newGatedProvider())

	require.NoError(t, s.DeleteSpot(context.Background(), "t1", 0, "b"))

	trips := s.Trips()
	require.Len(t, trips[0].Days[0].Spots, 2)

	s.Wait()

	// Local state stays applied; the failure is recorded, not rolled back.
	trips = s.Trips()
	require.Len(t, trips[0].Days[0].Spots, 2)
	require.Error(t, s.SyncStatus())
}

func TestReorderWithinDayPushesIDOrder(t *testing.T) {
	remote := &fakeRemote{}
	s := seedStore(t, remote, newGatedProvider())

	require.NoError(t, s.ReorderWithinDay(context.Background(), "t1", 0, 2, 0))
	s.Wait()

	trips := s.Trips()
	require.Equal(t, "c", trips[0].Days[0].Spots[0].ID)
	require.Equal(t, [][]string{{"c", "a", "b"}}, remote.reorders)
}

func TestSmartSortAndRestoreLifecycle(t *testing.T) {
	remote := &fakeRemote{}
	s := seedStore(t, remote, newGatedProvider())

	require.NoError(t, s.SmartSort(context.Background(), "t1", 0))
	require.True(t, s.IsOptimized("t1", 0))

	sorted := s.Trips()[0].Days[0].Spots
	// Anchor fixed; Market is nearer the hotel than the museum.
	require.Equal(t, "a", sorted[0].ID)
	require.Equal(t, "c", sorted[1].ID)
	require.Equal(t, "b", sorted[2].ID)

	// A second sort must not take a fresh backup of the sorted order.
	require.NoError(t, s.SmartSort(context.Background(), "t1", 0))

	require.NoError(t, s.RestoreOrder(context.Background(), "t1", 0))
	require.False(t, s.IsOptimized("t1", 0))

	restored := s.Trips()[0].Days[0].Spots
	require.Equal(t, []string{"a", "b", "c"},
		[]string{restored[0].ID, restored[1].ID, restored[2].ID})

	// Restoring again without a sort has nothing to restore.
	require.ErrorIs(t, s.RestoreOrder(context.Background(), "t1", 0), ErrNoBackup)

	// After a restore, sorting takes a fresh backup.
	require.NoError(t, s.SmartSort(context.Background(), "t1", 0))
	require.True(t, s.IsOptimized("t1", 0))

	s.Wait()
	require.NoError(t, s.SyncStatus())
}

func TestUpdateSpotTransportDiscardsStaleEstimate(t *testing.T) {
	remote := &fakeRemote{}
	provider := newGatedProvider()
	s := seedStore(t, remote, provider)

	ctx := context.Background()

	// First request (car) blocks inside the provider.
	require.NoError(t, s.UpdateSpotTransport(ctx, "t1", 0, "a", domain.ModeCar))

	// Second request (walk) lands before the first estimate resolves.
	require.NoError(t, s.UpdateSpotTransport(ctx, "t1", 0, "a", domain.ModeWalk))

	provider.results <- ports.RouteResult{DistanceMeters: 4200, DurationSeconds: 3000}
	provider.results <- ports.RouteResult{DistanceMeters: 4200, DurationSeconds: 3000}
	close(provider.gate)

	s.Wait()

	spot := s.Trips()[0].Days[0].Spots[0]
	require.Equal(t, domain.ModeWalk, spot.TravelMode)

	// Only the walk-mode estimate may ever reach the remote API.
	updates := remote.spotUpdates()
	require.Len(t, updates, 1)
	require.Equal(t, domain.ModeWalk, updates[0].TravelMode)
	require.Equal(t, "50m", updates[0].TravelTime)
	require.Equal(t, "4.2km", updates[0].TravelDistance)
}

func TestUpdateSpotTransportLastSpotSyncsDirectly(t *testing.T) {
	remote := &fakeRemote{}
	provider := newGatedProvider()
	s := seedStore(t, remote, provider)

	require.NoError(t, s.UpdateSpotTransport(context.Background(), "t1", 0, "c", domain.ModeWalk))
	s.Wait()

	updates := remote.spotUpdates()
	require.Len(t, updates, 1)
	require.Equal(t, "c", updates[0].ID)
	require.Equal(t, domain.ModeWalk, updates[0].TravelMode)
	require.Empty(t, updates[0].TravelTime)
}

func TestMoveAcrossDaysSaga(t *testing.T) {
	remote := &fakeRemote{}
	s := seedStore(t, remote, newGatedProvider())

	require.NoError(t, s.MoveAcrossDays(context.Background(), "t1", 0, "b", 1))

	trips := s.Trips()
	require.Len(t, trips[0].Days[0].Spots, 2)
	require.Len(t, trips[0].Days[1].Spots, 1)

	s.Wait()

	require.Equal(t, []string{"b"}, remote.deleted)
	require.Equal(t, []int{11}, remote.addedTo)

	trips = s.Trips()
	require.Equal(t, "srv-1", trips[0].Days[1].Spots[0].ID)
	require.NoError(t, s.SyncStatus())
}

func TestMoveAcrossDaysCompensatesFailedAdd(t *testing.T) {
	remote := &fakeRemote{failAdd: true}
	s := seedStore(t, remote, newGatedProvider())

	require.NoError(t, s.MoveAcrossDays(context.Background(), "t1", 0, "b", 1))
	s.Wait()

	// The delete committed but the add failed, so the spot was re-added to
	// the source day and moved back locally.
	require.Equal(t, []int{10}, remote.addedTo)

	trips := s.Trips()
	require.Len(t, trips[0].Days[1].Spots, 0)
	require.Len(t, trips[0].Days[0].Spots, 3)
	require.Error(t, s.SyncStatus())
}

func TestOperationsOnMissingState(t *testing.T) {
	s := seedStore(t, &fakeRemote{}, newGatedProvider())
	ctx := context.Background()

	require.ErrorIs(t, s.DeleteSpot(ctx, "t1", 0, "nope"), ErrNotFoundLocal)
	require.ErrorIs(t, s.UpdateSpotTransport(ctx, "t1", 5, "a", domain.ModeWalk), ErrNotFoundLocal)
	require.ErrorIs(t, s.DeleteTrip(ctx, "ghost"), ErrNotFoundLocal)
	_, err := s.AddSpot(ctx, "ghost", 0, domain.Spot{})
	require.ErrorIs(t, err, ErrNotFoundLocal)
}
