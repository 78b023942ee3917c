package services

import (
	"itinerary-service/internal/domain"
	"time"
)

// Penalty weight in meters added to spots that are closed on the target date,
// pushing them behind any comparably-close open alternative.
const closedSpotPenaltyMeters = 50000.0

// OptimizeDayRoute reorders a day's spots using a greedy nearest-neighbor
// heuristic.
//
// The first spot is the anchor and never moves; it seeds the tour. Each step
// picks the unvisited spot with the smallest weight, where weight is the
// great-circle distance from the last chosen spot plus a fixed penalty when
// the candidate is closed on dayDate. Ties keep the earliest input position,
// so the result is deterministic. Spots without a resolved location score as
// the zero coordinate, which naturally sorts them to the tail.
//
// This is a local heuristic, not a shortest-tour solver: it never backtracks
// and checks openness against the day's date rather than the projected
// arrival time at each spot.
func OptimizeDayRoute(spots []domain.Spot, dayDate time.Time) []domain.Spot {
	if len(spots) <= 1 {
		return append([]domain.Spot(nil), spots...)
	}

	optimized := make([]domain.Spot, 0, len(spots))
	optimized = append(optimized, spots[0])

	unvisited := append([]domain.Spot(nil), spots[1:]...)

	for len(unvisited) > 0 {
		last := optimized[len(optimized)-1]
		lastCoord, _ := last.Coordinate()

		bestIdx := 0
		bestWeight := spotWeight(lastCoord, unvisited[0], dayDate)

		for i := 1; i < len(unvisited); i++ {
			// Strict less-than keeps the first occurrence on ties.
			if w := spotWeight(lastCoord, unvisited[i], dayDate); w < bestWeight {
				bestWeight = w
				bestIdx = i
			}
		}

		optimized = append(optimized, unvisited[bestIdx])
		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
	}

	return optimized
}

func spotWeight(from domain.Coordinate, candidate domain.Spot, dayDate time.Time) float64 {
	coord, _ := candidate.Coordinate()
	weight := from.DistanceTo(coord)

	if periods := candidate.OpeningPeriods(); len(periods) > 0 {
		if status := EvaluateBusinessStatus(periods, dayDate); !status.IsOpen {
			weight += closedSpotPenaltyMeters
		}
	}

	return weight
}
