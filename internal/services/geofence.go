package services

import (
	"fmt"
	"liquor-trace-service/internal/domain"
	"math/rand"
)

// GeofenceThresholds are the deviation cut points, in km, between risk tiers.
// Encoded as data so the classifier stays tunable without code changes.
type GeofenceThresholds struct {
	MediumKm float64
	HighKm   float64
}

func (t GeofenceThresholds) Validate() error {
	if t.MediumKm <= 0 {
		return fmt.Errorf(
			"geofence thresholds: %w: medium threshold must be positive, got %v",
			domain.ErrConfiguration, t.MediumKm,
		)
	}

	if t.HighKm <= t.MediumKm {
		return fmt.Errorf(
			"geofence thresholds: %w: high threshold %v must exceed medium threshold %v",
			domain.ErrConfiguration, t.HighKm, t.MediumKm,
		)
	}

	return nil
}

// ClassifyDeviation computes the great-circle distance between a vehicle's
// intended and actual positions and assigns a risk tier. Boundaries are
// half-open on the lower bound: a deviation of exactly MediumKm or HighKm
// lands in the higher tier.
func ClassifyDeviation(intended, actual domain.Coordinates, th GeofenceThresholds) (float64, domain.RiskTier) {
	d := domain.HaversineKm(intended, actual)

	switch {
	case d >= th.HighKm:
		return d, domain.RiskHigh
	case d >= th.MediumKm:
		return d, domain.RiskMedium
	default:
		return d, domain.RiskCompliant
	}
}

const (
	// Share of ticks on which a vehicle strays off its corridor.
	deviationProbability = 0.15
	// Spread of the positional offset when deviating, in degrees.
	perturbationSigmaDeg = 0.05
)

// PerturbPosition derives a vehicle's simulated actual position from its
// intended one by applying a bounded pseudo-random offset. Most draws return
// the intended position unchanged; deviating draws offset both axes by a
// normal sample clamped to three sigma. The caller seeds rng per vehicle per
// tick, which makes a tick reproducible while successive ticks vary.
func PerturbPosition(intended domain.Coordinates, rng *rand.Rand) domain.Coordinates {
	if rng.Float64() >= deviationProbability {
		return intended
	}

	return domain.Coordinates{
		Lat: intended.Lat + clampedNormal(rng, perturbationSigmaDeg),
		Lon: intended.Lon + clampedNormal(rng, perturbationSigmaDeg),
	}
}

func clampedNormal(rng *rand.Rand, sigma float64) float64 {
	v := rng.NormFloat64() * sigma
	if v > 3*sigma {
		return 3 * sigma
	}
	if v < -3*sigma {
		return -3 * sigma
	}
	return v
}
