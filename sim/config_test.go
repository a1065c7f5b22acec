package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func oneVehicleConfig(n int) Config[r2.Vec] {
	locs := map[string]r2.Vec{"0": {X: 0, Y: 0}}
	return Config[r2.Vec]{
		InitialLocations: locs,
		SeatCapacities:   UniformSeatCapacities(locs, 1),
		Space:            NewEuclideanSpace(1, -1000, 1000, -1000, 1000),
		DispatcherName:   "brute-force",
		NReqs:            &n,
	}
}

func TestConfig_Validate_Accepts(t *testing.T) {
	cfg := oneVehicleConfig(10)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RejectsNoVehicles(t *testing.T) {
	n := 10
	cfg := Config[r2.Vec]{NReqs: &n, Space: NewEuclideanSpace(1, 0, 1, 0, 1)}
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsXORViolation_BothSet(t *testing.T) {
	cfg := oneVehicleConfig(10)
	cutoff := 100.0
	cfg.TCutoff = &cutoff
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsXORViolation_NeitherSet(t *testing.T) {
	cfg := oneVehicleConfig(10)
	cfg.NReqs = nil
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsZeroCapacity(t *testing.T) {
	cfg := oneVehicleConfig(10)
	cfg.SeatCapacities["0"] = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsMissingCapacityEntry(t *testing.T) {
	cfg := oneVehicleConfig(10)
	delete(cfg.SeatCapacities, "0")
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsUnknownDispatcher(t *testing.T) {
	cfg := oneVehicleConfig(10)
	cfg.DispatcherName = "does-not-exist"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RejectsMissingSpace(t *testing.T) {
	cfg := oneVehicleConfig(10)
	cfg.Space = nil
	assert.Error(t, cfg.Validate())
}

func TestConfig_BuildFleet_OneVehiclePerLocation(t *testing.T) {
	cfg := oneVehicleConfig(10)
	fleet, err := cfg.BuildFleet()
	require.NoError(t, err)
	assert.Equal(t, 1, fleet.Len())
}
