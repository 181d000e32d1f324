package dto

import "time"

type PositionResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type VehicleResponse struct {
	VehicleID   string           `json:"vehicle_id"`
	RouteID     string           `json:"route_id"`
	Position    PositionResponse `json:"position"`
	Intended    PositionResponse `json:"intended_position"`
	DeviationKm float64          `json:"deviation_km"`
	RiskTier    string           `json:"risk_tier"`
	ProgressPct float64          `json:"progress_percent"`
	CargoLiters int              `json:"cargo_liters"`
}

type LedgerEntryResponse struct {
	FacilityID         string    `json:"facility_id"`
	WindowStart        time.Time `json:"window_start"`
	WindowEnd          time.Time `json:"window_end"`
	InputLiters        float64   `json:"input_liters"`
	TheoreticalLiters  float64   `json:"theoretical_output_liters"`
	ActualOutputLiters float64   `json:"actual_output_liters"`
	VariancePct        float64   `json:"variance_percent"`
	Diverted           bool      `json:"diverted"`
}

type BatchStatusResponse struct {
	BatchID         string    `json:"batch_id"`
	Product         string    `json:"product"`
	ManufactureDate time.Time `json:"manufacture_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	SealStatus      string    `json:"seal_status"`
	Verdict         string    `json:"verdict"`
}

type SnapshotResponse struct {
	At       time.Time                      `json:"at"`
	Vehicles map[string]VehicleResponse     `json:"vehicles"`
	Ledger   map[string]LedgerEntryResponse `json:"ledger"`
	Batches  map[string]BatchStatusResponse `json:"batches"`
}
