package services

import (
	"context"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"time"

	"github.com/sirupsen/logrus"
)

// Average speeds in meters per second used by the closed-form fallback.
var fallbackSpeeds = map[domain.TransportMode]float64{
	domain.ModeWalk:  1.4,
	domain.ModeBus:   8.3,
	domain.ModeCar:   11.1,
	domain.ModeTrain: 16.7,
}

// TravelEstimator computes the travel leg between two coordinates.
//
// The routing provider is the primary path and runs under a bounded timeout;
// when it fails, the estimator falls back to haversine distance divided by a
// fixed per-mode speed and marks the result as approximate. Estimate never
// returns an error: the fallback is the error handler.
type TravelEstimator struct {
	Provider ports.RouteProvider
	Cache    ports.EstimateCache
	Timeout  time.Duration
}

func NewTravelEstimator(provider ports.RouteProvider, cache ports.EstimateCache) *TravelEstimator {
	return &TravelEstimator{
		Provider: provider,
		Cache:    cache,
		Timeout:  10 * time.Second,
	}
}

// Estimate returns formatted duration and distance for the leg from origin to
// destination with the given transport mode.
func (e *TravelEstimator) Estimate(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) domain.TravelInfo {
	defer obs.Time(ctx, "estimator.Estimate")(nil)

	result, err := e.resolve(ctx, origin, destination, mode)
	if err == nil {
		return domain.TravelInfo{
			Mode:     mode,
			Time:     formatDuration(result.DurationSeconds, false),
			Distance: formatDistance(result.DistanceMeters),
		}
	}

	logrus.WithFields(logrus.Fields{
		"mode": mode,
		"err":  err,
	}).Debug("route provider failed, using haversine fallback")

	meters := origin.DistanceTo(destination)
	speed, ok := fallbackSpeeds[mode]
	if !ok {
		speed = fallbackSpeeds[domain.ModeTrain]
	}
	seconds := int(meters / speed)

	return domain.TravelInfo{
		Mode:     mode,
		Time:     formatDuration(seconds, true),
		Distance: formatDistance(int(meters)),
	}
}

// resolve consults the cache, then the provider, writing fresh results back
// through the cache. Cache errors are logged, never fatal.
func (e *TravelEstimator) resolve(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (ports.RouteResult, error) {
	originKey := coordKey(origin)
	destKey := coordKey(destination)

	if e.Cache != nil {
		cached, hit, err := e.Cache.Get(ctx, originKey, destKey, string(mode))
		if err != nil {
			logrus.WithField("err", err).Warn("estimate cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := e.Provider.GetRoute(ctx, origin, destination, mode)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get route %s -> %s: %w", originKey, destKey, err)
	}

	if e.Cache != nil {
		if err := e.Cache.Put(ctx, originKey, destKey, string(mode), result); err != nil {
			logrus.WithField("err", err).Warn("estimate cache write failed")
		}
	}

	return result, nil
}

func coordKey(c domain.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// formatDuration renders seconds as "Nm" below an hour and "Hh Mm" at or
// above it, prefixed with "~" for approximate (fallback) results.
func formatDuration(seconds int, approx bool) string {
	prefix := ""
	if approx {
		prefix = "~"
	}

	minutes := seconds / 60
	if minutes >= 60 {
		return fmt.Sprintf("%s%dh %dm", prefix, minutes/60, minutes%60)
	}
	return fmt.Sprintf("%s%dm", prefix, minutes)
}

// formatDistance renders meters as kilometers with one decimal.
func formatDistance(meters int) string {
	return fmt.Sprintf("%.1fkm", float64(meters)/1000.0)
}
