package services

import (
	"errors"
	"fmt"
	"liquor-trace-service/internal/domain"
	"time"
)

// Temporal position interpolation along a route.
//
// The vehicle traverses its full route once per period and then loops, so the
// demo stays animated indefinitely. Time is measured from the Unix epoch, which
// makes the traversal a pure function of the wall clock: at a period boundary
// (midnight for the default 24h period) the position wraps to the first
// waypoint exactly. Allocation within the cycle is proportional to cumulative
// distance rather than waypoint count, so ground speed is constant regardless
// of how densely a corridor is sampled.

// CycleFraction returns how far through the current traversal cycle the given
// timestamp falls, in [0,1).
func CycleFraction(at time.Time, period time.Duration) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf(
			"cycle fraction: %w: period must be positive, got %s",
			domain.ErrConfiguration, period,
		)
	}

	ns := at.UnixNano() % period.Nanoseconds()
	if ns < 0 {
		ns += period.Nanoseconds()
	}

	return float64(ns) / float64(period.Nanoseconds()), nil
}

// PositionAt returns the interpolated position along route at the given time.
func PositionAt(route *domain.Route, at time.Time, period time.Duration) (domain.Coordinates, error) {
	f, err := CycleFraction(at, period)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("position at: %w", err)
	}

	return PositionAtFraction(route, f)
}

// PositionAtFraction maps a cycle fraction in [0,1) to a position by
// cumulative-distance proportional allocation and linear interpolation
// within the selected segment.
func PositionAtFraction(route *domain.Route, f float64) (domain.Coordinates, error) {
	if route == nil {
		return domain.Coordinates{}, fmt.Errorf(
			"position at fraction: %w: route is nil", domain.ErrConfiguration,
		)
	}
	if f < 0 || f >= 1 {
		return domain.Coordinates{}, fmt.Errorf("position at fraction: fraction %v outside [0,1)", f)
	}

	target := f * route.TotalKm()

	cum := 0.0
	for i := 0; i < route.Segments(); i++ {
		seg := route.SegmentKm(i)
		if seg == 0 {
			continue
		}

		// The last non-empty segment absorbs floating point drift near f→1.
		if target < cum+seg || i == route.Segments()-1 {
			intra := (target - cum) / seg
			a := route.Waypoint(i)
			b := route.Waypoint(i + 1)
			return domain.Coordinates{
				Lat: a.Lat + (b.Lat-a.Lat)*intra,
				Lon: a.Lon + (b.Lon-a.Lon)*intra,
			}, nil
		}
		cum += seg
	}

	return domain.Coordinates{}, errors.New("position at fraction: no non-empty segment found")
}

// TraveledKmAt returns the distance covered within the current traversal
// cycle at the given time. Monotonically non-decreasing between two
// timestamps inside one period.
func TraveledKmAt(route *domain.Route, at time.Time, period time.Duration) (float64, error) {
	if route == nil {
		return 0, fmt.Errorf("traveled km: %w: route is nil", domain.ErrConfiguration)
	}

	f, err := CycleFraction(at, period)
	if err != nil {
		return 0, fmt.Errorf("traveled km: %w", err)
	}

	return f * route.TotalKm(), nil
}
