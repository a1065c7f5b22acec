// Package config loads a standalone run configuration from YAML and
// translates it into a sim.Config for the Euclidean/Manhattan R² case,
// the common shape for a configuration-file-driven run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/ridepool/dispatchsim/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// FileConfig is the on-disk shape of a run configuration. Graph-space runs
// don't serialize naturally as flat YAML edge lists at this scale and are
// expected to be assembled programmatically instead.
type FileConfig struct {
	Vehicles struct {
		Count        int     `yaml:"count"`
		SeatCapacity uint    `yaml:"seat_capacity"`
		InitialX     float64 `yaml:"initial_x"`
		InitialY     float64 `yaml:"initial_y"`
	} `yaml:"vehicles"`
	Space struct {
		Metric   string  `yaml:"metric"` // "euclidean" (default) or "manhattan"
		Velocity float64 `yaml:"velocity"`
		MinX     float64 `yaml:"min_x"`
		MaxX     float64 `yaml:"max_x"`
		MinY     float64 `yaml:"min_y"`
		MaxY     float64 `yaml:"max_y"`
	} `yaml:"space"`
	Dispatcher struct {
		Name              string  `yaml:"name"`
		MaxRelativeDetour float64 `yaml:"max_relative_detour"`
	} `yaml:"dispatcher"`
	// Requests configures the synthetic Poisson request generator the
	// standalone CLI drives the built fleet with; it has no bearing on
	// sim.Config itself.
	Requests struct {
		Rate float64 `yaml:"rate"`
		Seed int64   `yaml:"seed"`
	} `yaml:"requests"`
	NReqs   *int     `yaml:"n_reqs"`
	TCutoff *float64 `yaml:"t_cutoff"`
}

// Load reads and parses a FileConfig from path.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &fc, nil
}

// Build translates a FileConfig into a sim.Config[r2.Vec], ready for
// Validate/BuildFleet. It does not itself validate the result.
func (fc *FileConfig) Build() (sim.Config[r2.Vec], error) {
	var space *sim.R2Space
	switch fc.Space.Metric {
	case "", "euclidean":
		space = sim.NewEuclideanSpace(fc.Space.Velocity, fc.Space.MinX, fc.Space.MaxX, fc.Space.MinY, fc.Space.MaxY)
	case "manhattan":
		space = sim.NewManhattanSpace(fc.Space.Velocity, fc.Space.MinX, fc.Space.MaxX, fc.Space.MinY, fc.Space.MaxY)
	default:
		return sim.Config[r2.Vec]{}, fmt.Errorf("config: unknown space metric %q", fc.Space.Metric)
	}

	locations := make(map[string]r2.Vec, fc.Vehicles.Count)
	for i := 0; i < fc.Vehicles.Count; i++ {
		locations[fmt.Sprintf("%d", i)] = r2.Vec{X: fc.Vehicles.InitialX, Y: fc.Vehicles.InitialY}
	}

	return sim.Config[r2.Vec]{
		InitialLocations: locations,
		SeatCapacities:   sim.UniformSeatCapacities(locations, fc.Vehicles.SeatCapacity),
		Space:            space,
		DispatcherName:   fc.Dispatcher.Name,
		DispatcherParams: sim.DispatcherParams{MaxRelativeDetour: fc.Dispatcher.MaxRelativeDetour},
		NReqs:            fc.NReqs,
		TCutoff:          fc.TCutoff,
	}, nil
}
