package config

import (
	"encoding/json"
	"fmt"
	"liquor-trace-service/internal/domain"
	"liquor-trace-service/internal/services"
	"os"
	"strings"
)

// Fleet is the validated static simulation input: approved routes, the
// vehicles assigned to them, and production facilities.
type Fleet struct {
	Routes     map[string]*domain.Route
	Vehicles   []services.VehicleAssignment
	Facilities []services.Facility
}

type waypointSeed struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type routeSeed struct {
	RouteID   string         `json:"route_id"`
	Waypoints []waypointSeed `json:"waypoints"`
}

type vehicleSeed struct {
	VehicleID   string `json:"vehicle_id"`
	RouteID     string `json:"route_id"`
	CargoLiters int    `json:"cargo_liters"`
}

type facilitySeed struct {
	FacilityID     string  `json:"facility_id"`
	YieldRatio     float64 `json:"yield_ratio"`
	InputMinLiters float64 `json:"input_min_liters"`
	InputMaxLiters float64 `json:"input_max_liters"`
}

type fleetSeed struct {
	Routes     []routeSeed    `json:"routes"`
	Vehicles   []vehicleSeed  `json:"vehicles"`
	Facilities []facilitySeed `json:"facilities"`
}

// LoadFleet parses the fleet seed file and builds validated domain routes.
// Any malformed entry fails the load; the engine never sees a partial fleet.
func LoadFleet(jsonPath string) (Fleet, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return Fleet{}, fmt.Errorf("load fleet: read %q: %w", jsonPath, err)
	}

	var seed fleetSeed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return Fleet{}, fmt.Errorf("load fleet: parse json: %w", err)
	}

	fleet := Fleet{
		Routes:     make(map[string]*domain.Route, len(seed.Routes)),
		Vehicles:   make([]services.VehicleAssignment, 0, len(seed.Vehicles)),
		Facilities: make([]services.Facility, 0, len(seed.Facilities)),
	}

	for _, r := range seed.Routes {
		waypoints := make([]domain.Coordinates, 0, len(r.Waypoints))
		for _, wp := range r.Waypoints {
			waypoints = append(waypoints, domain.Coordinates{Lat: wp.Lat, Lon: wp.Lon})
		}

		route, err := domain.NewRoute(strings.TrimSpace(r.RouteID), waypoints)
		if err != nil {
			return Fleet{}, fmt.Errorf("load fleet: %w", err)
		}

		if _, ok := fleet.Routes[route.ID]; ok {
			return Fleet{}, fmt.Errorf(
				"load fleet: %w: duplicate route id %q",
				domain.ErrConfiguration, route.ID,
			)
		}
		fleet.Routes[route.ID] = route
	}

	for _, v := range seed.Vehicles {
		fleet.Vehicles = append(fleet.Vehicles, services.VehicleAssignment{
			VehicleID:   strings.TrimSpace(v.VehicleID),
			RouteID:     strings.TrimSpace(v.RouteID),
			CargoLiters: v.CargoLiters,
		})
	}

	for _, f := range seed.Facilities {
		facility := services.Facility{
			FacilityID:     strings.TrimSpace(f.FacilityID),
			YieldRatio:     f.YieldRatio,
			InputMinLiters: f.InputMinLiters,
			InputMaxLiters: f.InputMaxLiters,
		}
		if err := facility.Validate(); err != nil {
			return Fleet{}, fmt.Errorf("load fleet: %w", err)
		}
		fleet.Facilities = append(fleet.Facilities, facility)
	}

	return fleet, nil
}
