package store

import (
	"context"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ItineraryStore is the single authoritative in-memory copy of trip state.
//
// Every public operation applies its local mutation synchronously under one
// mutex (single-writer discipline, run-to-completion), then dispatches the
// corresponding remote call on a tracked goroutine. Remote confirmations
// rejoin under the same mutex and must pass a per-spot revision check before
// merging, so a slow completion can never overwrite a newer edit.
//
// Writes are optimistic: a failed remote call is logged and recorded but the
// local state is not rolled back. SyncStatus exposes the last such failure.
type ItineraryStore struct {
	mu        sync.Mutex
	remote    ports.TripRemote
	estimator *services.TravelEstimator

	trips   []domain.Trip
	backups map[string]map[int][]domain.Spot // tripID -> dayID -> pre-sort order
	revs    map[string]uint64                // spotID -> monotonic revision

	lastSyncErr error

	wg            sync.WaitGroup
	remoteTimeout time.Duration
}

func New(remote ports.TripRemote, estimator *services.TravelEstimator) *ItineraryStore {
	return &ItineraryStore{
		remote:        remote,
		estimator:     estimator,
		backups:       make(map[string]map[int][]domain.Spot),
		revs:          make(map[string]uint64),
		remoteTimeout: 30 * time.Second,
	}
}

// Wait blocks until all dispatched remote work has completed. Intended for
// shutdown and tests.
func (s *ItineraryStore) Wait() { s.wg.Wait() }

// SyncStatus returns the most recent write-sync failure, or nil when the last
// writes all confirmed. Local state may diverge from the server while this is
// non-nil.
func (s *ItineraryStore) SyncStatus() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSyncErr
}

// Trips returns a deep copy of the current trip list.
func (s *ItineraryStore) Trips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = copyTrip(t)
	}
	return out
}

// Trip returns a deep copy of one trip.
func (s *ItineraryStore) Trip(tripID string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.findTrip(tripID)
	if trip == nil {
		return domain.Trip{}, notFound("trip", tripID)
	}
	return copyTrip(*trip), nil
}

// LocateDay resolves a day id to its owning trip and day index.
func (s *ItineraryStore) LocateDay(dayID int) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trips {
		for i, d := range t.Days {
			if d.ID == dayID {
				return t.ID, i, nil
			}
		}
	}
	return "", 0, notFound("day", dayID)
}

// LocateSpot resolves a spot id to its owning trip and day index.
func (s *ItineraryStore) LocateSpot(spotID string) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trips {
		for i, d := range t.Days {
			for _, sp := range d.Spots {
				if sp.ID == spotID {
					return t.ID, i, nil
				}
			}
		}
	}
	return "", 0, notFound("spot", spotID)
}

// FetchTrips replaces local state with the server's trip list. Read failures
// surface to the caller; nothing is applied on error.
func (s *ItineraryStore) FetchTrips(ctx context.Context) (err error) {
	defer obs.Time(ctx, "store.FetchTrips")(&err)

	trips, err := s.remote.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("fetch trips: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = trips
	return nil
}

// CreateTrip creates the trip remotely and appends it locally on success.
func (s *ItineraryStore) CreateTrip(ctx context.Context, title, destination, startDate, endDate, transportMode string) (domain.Trip, error) {
	if title == "" {
		title = destination
	}

	trip, err := s.remote.CreateTrip(ctx, title, destination, startDate, endDate, transportMode)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("create trip: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append(s.trips, trip)
	return copyTrip(trip), nil
}

// UpdateTrip applies trip metadata locally, then syncs remotely.
func (s *ItineraryStore) UpdateTrip(ctx context.Context, tripID string, update ports.TripUpdate) error {
	s.mu.Lock()
	trip := s.findTrip(tripID)
	if trip == nil {
		s.mu.Unlock()
		return notFound("trip", tripID)
	}
	if update.Title != nil {
		trip.Title = *update.Title
	}
	if update.Destination != nil {
		trip.Destination = *update.Destination
	}
	if update.TransportMode != nil {
		trip.TransportMode = *update.TransportMode
	}
	s.mu.Unlock()

	s.dispatch(ctx, "trip.update", func(ctx context.Context) error {
		updated, err := s.remote.UpdateTrip(ctx, tripID, update)
		if err != nil {
			return err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if t := s.findTrip(tripID); t != nil {
			// Reconcile metadata only; day state may hold newer optimistic
			// edits than the server response.
			t.Title = updated.Title
			t.Destination = updated.Destination
			t.StartDate = updated.StartDate
			t.EndDate = updated.EndDate
			t.TransportMode = updated.TransportMode
		}
		return nil
	})
	return nil
}

// DeleteTrip removes the trip locally, then deletes it remotely.
func (s *ItineraryStore) DeleteTrip(ctx context.Context, tripID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.trips {
		if s.trips[i].ID == tripID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return notFound("trip", tripID)
	}
	for _, day := range s.trips[idx].Days {
		for _, spot := range day.Spots {
			delete(s.revs, spot.ID)
		}
	}
	s.trips = append(s.trips[:idx], s.trips[idx+1:]...)
	delete(s.backups, tripID)
	s.mu.Unlock()

	s.dispatch(ctx, "trip.delete", func(ctx context.Context) error {
		return s.remote.DeleteTrip(ctx, tripID)
	})
	return nil
}

// AddSpot appends the spot to the day with a temporary local id, then creates
// it remotely and swaps in the server record when the create confirms.
func (s *ItineraryStore) AddSpot(ctx context.Context, tripID string, dayIndex int, spot domain.Spot) (domain.Spot, error) {
	s.mu.Lock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		s.mu.Unlock()
		return domain.Spot{}, notFound("day", dayIndex)
	}

	localID := "local-" + uuid.NewString()
	spot.ID = localID
	spot.DayID = day.ID
	spot.SortOrder = len(day.Spots)
	day.Spots = append(day.Spots, spot)
	s.bumpRev(localID)
	dayID := day.ID
	s.mu.Unlock()

	s.dispatch(ctx, "spot.add", func(ctx context.Context) error {
		created, err := s.remote.AddSpot(ctx, dayID, spot)
		if err != nil {
			return err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		day := s.findDay(tripID, dayIndex)
		if day == nil {
			return errStaleResult
		}
		for i := range day.Spots {
			if day.Spots[i].ID == localID {
				day.Spots[i] = created
				delete(s.revs, localID)
				s.bumpRev(created.ID)
				return nil
			}
		}
		return errStaleResult
	})

	return spot, nil
}

// UpdateSpot replaces the spot locally, then syncs remotely; the server's
// response reconciles the local entry only if no newer edit landed meanwhile.
func (s *ItineraryStore) UpdateSpot(ctx context.Context, tripID string, dayIndex int, spot domain.Spot) error {
	s.mu.Lock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		s.mu.Unlock()
		return notFound("day", dayIndex)
	}
	idx := findSpotIndex(day, spot.ID)
	if idx < 0 {
		s.mu.Unlock()
		return notFound("spot", spot.ID)
	}
	spot.DayID = day.ID
	day.Spots[idx] = spot
	rev := s.bumpRev(spot.ID)
	s.mu.Unlock()

	s.dispatch(ctx, "spot.update", func(ctx context.Context) error {
		updated, err := s.remote.UpdateSpot(ctx, spot)
		if err != nil {
			return err
		}
		_, err = s.mergeSpot(tripID, dayIndex, spot.ID, rev, func(target *domain.Spot) {
			*target = updated
		})
		return err
	})
	return nil
}

// DeleteSpot removes the spot locally, then deletes it remotely.
func (s *ItineraryStore) DeleteSpot(ctx context.Context, tripID string, dayIndex int, spotID string) error {
	s.mu.Lock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		s.mu.Unlock()
		return notFound("day", dayIndex)
	}
	idx := findSpotIndex(day, spotID)
	if idx < 0 {
		s.mu.Unlock()
		return notFound("spot", spotID)
	}
	day.Spots = append(day.Spots[:idx], day.Spots[idx+1:]...)
	delete(s.revs, spotID)
	s.mu.Unlock()

	s.dispatch(ctx, "spot.delete", func(ctx context.Context) error {
		return s.remote.DeleteSpot(ctx, spotID)
	})
	return nil
}

// ReorderWithinDay moves the spot at position from to position to, then
// pushes the whole id order to the remote reorder endpoint.
func (s *ItineraryStore) ReorderWithinDay(ctx context.Context, tripID string, dayIndex, from, to int) error {
	s.mu.Lock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		s.mu.Unlock()
		return notFound("day", dayIndex)
	}
	if from < 0 || from >= len(day.Spots) || to < 0 || to >= len(day.Spots) {
		s.mu.Unlock()
		return fmt.Errorf("reorder day %d: positions %d -> %d out of range", dayIndex, from, to)
	}

	moved := day.Spots[from]
	day.Spots = append(day.Spots[:from], day.Spots[from+1:]...)
	day.Spots = append(day.Spots[:to], append([]domain.Spot{moved}, day.Spots[to:]...)...)

	dayID := day.ID
	ids := spotIDs(day.Spots)
	s.mu.Unlock()

	s.dispatch(ctx, "spot.reorder", func(ctx context.Context) error {
		return s.remote.ReorderSpots(ctx, dayID, ids)
	})
	return nil
}

// MoveAcrossDays moves a spot between two days of the same trip. The remote
// API has no atomic move, so the sync runs as a delete-then-add saga; if the
// add fails after the delete succeeded, the spot is re-added to the source
// day from the pre-delete snapshot.
func (s *ItineraryStore) MoveAcrossDays(ctx context.Context, tripID string, fromDayIndex int, spotID string, toDayIndex int) error {
	s.mu.Lock()
	src := s.findDay(tripID, fromDayIndex)
	dst := s.findDay(tripID, toDayIndex)
	if src == nil || dst == nil {
		s.mu.Unlock()
		return notFound("day", fmt.Sprintf("%d/%d", fromDayIndex, toDayIndex))
	}
	idx := findSpotIndex(src, spotID)
	if idx < 0 {
		s.mu.Unlock()
		return notFound("spot", spotID)
	}

	snapshot := src.Spots[idx]
	src.Spots = append(src.Spots[:idx], src.Spots[idx+1:]...)
	moved := snapshot
	moved.DayID = dst.ID
	dst.Spots = append(dst.Spots, moved)
	s.bumpRev(spotID)
	srcDayID, dstDayID := src.ID, dst.ID
	s.mu.Unlock()

	s.dispatch(ctx, "spot.move", func(ctx context.Context) error {
		if err := s.remote.DeleteSpot(ctx, spotID); err != nil {
			return fmt.Errorf("saga delete from day %d: %w", srcDayID, err)
		}

		created, addErr := s.remote.AddSpot(ctx, dstDayID, snapshot)
		if addErr == nil {
			s.mu.Lock()
			defer s.mu.Unlock()
			if day := s.findDay(tripID, toDayIndex); day != nil {
				if i := findSpotIndex(day, spotID); i >= 0 {
					day.Spots[i] = created
					delete(s.revs, spotID)
					s.bumpRev(created.ID)
				}
			}
			return nil
		}

		// Compensation: the delete committed, so without this the spot is
		// gone from the server entirely.
		recreated, compErr := s.remote.AddSpot(ctx, srcDayID, snapshot)
		if compErr != nil {
			return fmt.Errorf("saga add to day %d failed (%v) and compensation failed: %w", dstDayID, addErr, compErr)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if day := s.findDay(tripID, toDayIndex); day != nil {
			if i := findSpotIndex(day, spotID); i >= 0 {
				day.Spots = append(day.Spots[:i], day.Spots[i+1:]...)
			}
		}
		if day := s.findDay(tripID, fromDayIndex); day != nil {
			day.Spots = append(day.Spots, recreated)
		}
		delete(s.revs, spotID)
		s.bumpRev(recreated.ID)
		return fmt.Errorf("saga add to day %d: %w (moved back)", dstDayID, addErr)
	})
	return nil
}

// SmartSort reorders the day's spots with the nearest-neighbor heuristic and
// pushes the new id order remotely. The pre-sort order is backed up once: a
// second sort without a restore keeps the original backup.
func (s *ItineraryStore) SmartSort(ctx context.Context, tripID string, dayIndex int) error {
	s.mu.Lock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		s.mu.Unlock()
		return notFound("day", dayIndex)
	}
	if len(day.Spots) <= 2 {
		s.mu.Unlock()
		return nil
	}

	if s.backups[tripID] == nil {
		s.backups[tripID] = make(map[int][]domain.Spot)
	}
	if _, saved := s.backups[tripID][day.ID]; !saved {
		s.backups[tripID][day.ID] = append([]domain.Spot(nil), day.Spots...)
	}

	dayDate := time.Now()
	if day.Date != nil {
		dayDate = *day.Date
	}
	day.Spots = services.OptimizeDayRoute(day.Spots, dayDate)

	dayID := day.ID
	ids := spotIDs(day.Spots)
	s.mu.Unlock()

	s.dispatch(ctx, "day.sort", func(ctx context.Context) error {
		return s.remote.ReorderSpots(ctx, dayID, ids)
	})
	return nil
}

// RestoreOrder puts the backed-up pre-sort order back, clears the backup, and
// pushes the restored id order remotely. A subsequent SmartSort takes a fresh
// backup.
func (s *ItineraryStore) RestoreOrder(ctx context.Context, tripID string, dayIndex int) error {
	s.mu.Lock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		s.mu.Unlock()
		return notFound("day", dayIndex)
	}
	backup, ok := s.backups[tripID][day.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("restore day %d: %w", dayIndex, ErrNoBackup)
	}

	day.Spots = backup
	delete(s.backups[tripID], day.ID)

	dayID := day.ID
	ids := spotIDs(day.Spots)
	s.mu.Unlock()

	s.dispatch(ctx, "day.restore", func(ctx context.Context) error {
		return s.remote.ReorderSpots(ctx, dayID, ids)
	})
	return nil
}

// IsOptimized reports whether the day currently holds an un-restored
// optimization backup.
func (s *ItineraryStore) IsOptimized(tripID string, dayIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.findDay(tripID, dayIndex)
	if day == nil {
		return false
	}
	_, ok := s.backups[tripID][day.ID]
	return ok
}
