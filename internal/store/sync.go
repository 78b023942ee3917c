package store

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"

	"github.com/sirupsen/logrus"
)

// UpdateSpotTransport switches the transport mode for the leg from spotID to
// the next spot in the day.
//
// The mode change applies locally at once; the travel estimate is computed
// asynchronously and merged only if the spot still exists with the requested
// mode and an unchanged revision. A user switching modes twice in quick
// succession therefore can never have the earlier, slower estimate overwrite
// the later choice. Only after a successful merge is the completed spot
// record pushed remotely.
func (s *ItineraryStore) UpdateSpotTransport(ctx context.Context, tripID string, dayIndex int, spotID string, mode domain.TransportMode) error {
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

	day.Spots[idx].TravelMode = mode
	rev := s.bumpRev(spotID)

	spot := day.Spots[idx]
	var from, to domain.Coordinate
	haveLeg := false
	if idx < len(day.Spots)-1 {
		fromCoord, okFrom := spot.Coordinate()
		toCoord, okTo := day.Spots[idx+1].Coordinate()
		if okFrom && okTo {
			from, to = fromCoord, toCoord
			haveLeg = true
		}
	}
	s.mu.Unlock()

	if !haveLeg {
		// Last spot of the day, or coordinates unresolved: nothing to
		// estimate, sync the mode change as-is.
		s.dispatch(ctx, "spot.transport", func(ctx context.Context) error {
			updated, err := s.remote.UpdateSpot(ctx, spot)
			if err != nil {
				return err
			}
			_, err = s.mergeSpot(tripID, dayIndex, spotID, rev, func(target *domain.Spot) {
				*target = updated
			})
			return err
		})
		return nil
	}

	s.dispatch(ctx, "spot.transport", func(ctx context.Context) error {
		info := s.estimator.Estimate(ctx, from, to, mode)

		var synced domain.Spot
		modeStillSet := false
		mergedRev, err := s.mergeSpot(tripID, dayIndex, spotID, rev, func(target *domain.Spot) {
			// The estimate only applies to the mode it was computed for.
			if target.TravelMode != mode {
				return
			}
			target.TravelTime = info.Time
			target.TravelDistance = info.Distance
			synced = *target
			modeStillSet = true
		})
		if err != nil {
			return err
		}
		if !modeStillSet {
			return errStaleResult
		}

		updated, err := s.remote.UpdateSpot(ctx, synced)
		if err != nil {
			return err
		}
		// The merge above bumped the revision; reconcile against it.
		_, err = s.mergeSpot(tripID, dayIndex, spotID, mergedRev, func(target *domain.Spot) {
			*target = updated
		})
		return err
	})
	return nil
}

// dispatch runs fn on a tracked goroutine with a detached, bounded context.
// A returned stale-result error is discarded silently; any other failure is
// recorded as the store's sync status.
func (s *ItineraryStore) dispatch(ctx context.Context, op string, fn func(ctx context.Context) error) {
	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.remoteTimeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		done := obs.Time(taskCtx, "store."+op)
		err := fn(taskCtx)
		done(&err)

		switch {
		case err == nil:
			s.clearSyncErr()
		case errors.Is(err, errStaleResult):
			logrus.WithField("op", op).Debug("discarding stale async result")
		default:
			s.recordSyncErr(fmt.Errorf("%s: %w", op, err))
			logrus.WithFields(logrus.Fields{"op": op, "err": err}).
				Warn("remote sync failed, local state kept")
		}
	}()
}

// mergeSpot applies fn to the spot only if it still exists and its revision
// matches the one captured at dispatch time, then bumps and returns the new
// revision. Returns errStaleResult when the spot changed or disappeared
// meanwhile.
func (s *ItineraryStore) mergeSpot(tripID string, dayIndex int, spotID string, rev uint64, fn func(*domain.Spot)) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(tripID, dayIndex)
	if day == nil {
		return 0, errStaleResult
	}
	idx := findSpotIndex(day, spotID)
	if idx < 0 {
		return 0, errStaleResult
	}
	if s.revs[spotID] != rev {
		return 0, errStaleResult
	}

	fn(&day.Spots[idx])
	return s.bumpRev(spotID), nil
}

func (s *ItineraryStore) bumpRev(spotID string) uint64 {
	s.revs[spotID]++
	return s.revs[spotID]
}

func (s *ItineraryStore) recordSyncErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSyncErr = err
}

func (s *ItineraryStore) clearSyncErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSyncErr = nil
}

// findTrip must be called with the mutex held.
func (s *ItineraryStore) findTrip(tripID string) *domain.Trip {
	for i := range s.trips {
		if s.trips[i].ID == tripID {
			return &s.trips[i]
		}
	}
	return nil
}

// findDay must be called with the mutex held.
func (s *ItineraryStore) findDay(tripID string, dayIndex int) *domain.Day {
	trip := s.findTrip(tripID)
	if trip == nil || dayIndex < 0 || dayIndex >= len(trip.Days) {
		return nil
	}
	return &trip.Days[dayIndex]
}

func findSpotIndex(day *domain.Day, spotID string) int {
	for i := range day.Spots {
		if day.Spots[i].ID == spotID {
			return i
		}
	}
	return -1
}

func spotIDs(spots []domain.Spot) []string {
	ids := make([]string, len(spots))
	for i, sp := range spots {
		ids[i] = sp.ID
	}
	return ids
}

func copyTrip(t domain.Trip) domain.Trip {
	out := t
	out.Days = make([]domain.Day, len(t.Days))
	for i, d := range t.Days {
		day := d
		day.Spots = append([]domain.Spot(nil), d.Spots...)
		out.Days[i] = day
	}
	return out
}
