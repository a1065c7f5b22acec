// Defines Config: the full parameter set needed to build and run a fleet
// simulation, and the validation a caller runs before trusting it.

package sim

import "fmt"

// VehicleStateVariant selects which VehicleState behavior a fleet runs.
// Only VehicleStateReference exists today; the field exists so a future
// alternative implementation can be selected without changing Config's
// shape.
type VehicleStateVariant string

const (
	VehicleStateReference VehicleStateVariant = "reference"
)

// Config is the full set of parameters needed to build and run a fleet
// simulation. Exactly one of NReqs or TCutoff must be set.
type Config[L comparable] struct {
	InitialLocations  map[string]L
	SeatCapacities    map[string]uint
	Space             TransportSpace[L]
	DispatcherName    string
	DispatcherParams  DispatcherParams
	VehicleStateClass VehicleStateVariant
	NReqs             *int
	TCutoff           *float64
}

// Validate checks the configuration invariants a simulation run depends
// on before anything is constructed: conflicting termination fields,
// missing capacity entries, non-positive capacity, zero vehicles, and
// unrecognized strategy names.
func (c *Config[L]) Validate() error {
	if len(c.InitialLocations) == 0 {
		return fmt.Errorf("config: at least one vehicle is required")
	}
	if (c.NReqs == nil) == (c.TCutoff == nil) {
		return fmt.Errorf("config: exactly one of n_reqs or t_cutoff must be set")
	}
	if c.NReqs != nil && *c.NReqs < 0 {
		return fmt.Errorf("config: n_reqs must be >= 0, got %d", *c.NReqs)
	}
	if c.Space == nil {
		return fmt.Errorf("config: space is required")
	}
	for id := range c.InitialLocations {
		cap, ok := c.SeatCapacities[id]
		if !ok {
			return fmt.Errorf("config: vehicle %q has no seat_capacity entry", id)
		}
		if cap == 0 {
			return fmt.Errorf("config: vehicle %q has non-positive seat capacity", id)
		}
	}
	switch c.DispatcherName {
	case "", "brute-force", "simple-ellipse":
	default:
		return fmt.Errorf("config: unknown dispatcher %q", c.DispatcherName)
	}
	switch c.VehicleStateClass {
	case "", VehicleStateReference:
	default:
		return fmt.Errorf("config: unknown vehicle_state_class %q", c.VehicleStateClass)
	}
	return nil
}

// BuildFleet validates the configuration and constructs a Fleet with one
// VehicleState per configured vehicle, all starting at simulated time 0.
func (c *Config[L]) BuildFleet() (*Fleet[L], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	dispatcher := NewDispatcher[L](c.DispatcherName, c.DispatcherParams)

	vehicles := make([]*VehicleState[L], 0, len(c.InitialLocations))
	for id, loc := range c.InitialLocations {
		vehicles = append(vehicles, NewVehicleState(id, c.SeatCapacities[id], 0, loc, c.Space, dispatcher))
	}
	return NewFleet(vehicles), nil
}

// UniformSeatCapacities builds a SeatCapacities map assigning the same
// capacity to every vehicle ID present in locations.
func UniformSeatCapacities[L comparable](locations map[string]L, capacity uint) map[string]uint {
	out := make(map[string]uint, len(locations))
	for id := range locations {
		out[id] = capacity
	}
	return out
}
