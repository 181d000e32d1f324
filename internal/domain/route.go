package domain

import "fmt"

// Represents an approved transport corridor as an ordered waypoint sequence.
// Waypoints are fixed at load time; segment and total lengths are precomputed
// so interpolation can allocate time proportionally to distance.
type Route struct {
	ID        string
	waypoints []Coordinates
	segmentKm []float64
	totalKm   float64
}

// NewRoute validates the waypoint sequence and derives segment lengths.
// A route needs at least two waypoints and a non-zero total length.
func NewRoute(id string, waypoints []Coordinates) (*Route, error) {
	if id == "" {
		return nil, fmt.Errorf("new route: %w: route id must be non-empty", ErrConfiguration)
	}

	if len(waypoints) < 2 {
		return nil, fmt.Errorf(
			"new route: %w: route %q has %d waypoints, need at least 2",
			ErrConfiguration, id, len(waypoints),
		)
	}

	wps := make([]Coordinates, len(waypoints))
	copy(wps, waypoints)

	segments := make([]float64, 0, len(wps)-1)
	total := 0.0
	for i := 0; i < len(wps)-1; i++ {
		d := HaversineKm(wps[i], wps[i+1])
		segments = append(segments, d)
		total += d
	}

	if total == 0 {
		return nil, fmt.Errorf(
			"new route: %w: route %q has zero total length",
			ErrConfiguration, id,
		)
	}

	return &Route{
		ID:        id,
		waypoints: wps,
		segmentKm: segments,
		totalKm:   total,
	}, nil
}

// TotalKm returns the sum of all segment lengths.
func (r *Route) TotalKm() float64 { return r.totalKm }

// Segments returns the number of waypoint-to-waypoint segments.
func (r *Route) Segments() int { return len(r.segmentKm) }

// SegmentKm returns the length of segment i (from waypoint i to waypoint i+1).
func (r *Route) SegmentKm(i int) float64 { return r.segmentKm[i] }

// Waypoint returns waypoint i by value.
func (r *Route) Waypoint(i int) Coordinates { return r.waypoints[i] }
