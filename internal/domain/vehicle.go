package domain

// RiskTier classifies how far a vehicle has strayed from its approved route.
type RiskTier string

const (
	RiskCompliant RiskTier = "COMPLIANT"
	RiskMedium    RiskTier = "MEDIUM_RISK"
	RiskHigh      RiskTier = "HIGH_RISK"
)

// VehicleState is the derived state of one vehicle at a single point in time.
// It references exactly one route and is recomputed fresh on every snapshot;
// nothing here is ever persisted or mutated in place.
type VehicleState struct {
	VehicleID   string
	RouteID     string
	Position    Coordinates
	Intended    Coordinates
	DeviationKm float64
	Tier        RiskTier
	ProgressPct float64
	CargoLiters int
}
