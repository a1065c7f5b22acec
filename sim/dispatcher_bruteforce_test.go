package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestBruteForceDispatcher_AcceptsTailAppend(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(0))
	req := NewTransportationRequest("r0", 0, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 20, Y: 0}, OpenTimeWindow(), OpenTimeWindow())

	d := &BruteForceDispatcher[r2.Vec]{}
	sol, ok := d.Insert(req, sl, space, 1)
	require.True(t, ok)
	assert.Equal(t, 3, sol.Stoplist.Len())
	assert.InDelta(t, 20.0, sol.Cost, 1e-9) // 10 to origin + 10 to destination, no prior route to offset against
	require.NoError(t, sol.Stoplist.Validate(space, 1))
}

func TestBruteForceDispatcher_PrefersCheaperInteriorInsertion(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(0))

	tail := NewTransportationRequest("tail", 0, r2.Vec{X: 20, Y: 0}, r2.Vec{X: 30, Y: 0}, OpenTimeWindow(), OpenTimeWindow())
	d := &BruteForceDispatcher[r2.Vec]{}
	sol, ok := d.Insert(tail, sl, space, 2)
	require.True(t, ok)
	sl = sol.Stoplist

	// A request directly on the existing route costs nothing extra to serve.
	onRoute := NewTransportationRequest("onroute", 0, r2.Vec{X: 5, Y: 0}, r2.Vec{X: 15, Y: 0}, OpenTimeWindow(), OpenTimeWindow())
	sol2, ok := d.Insert(onRoute, sl, space, 2)
	require.True(t, ok)
	assert.InDelta(t, 0.0, sol2.Cost, 1e-9)
	require.NoError(t, sol2.Stoplist.Validate(space, 2))
}

func TestBruteForceDispatcher_RejectsOnPickupWindow(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(0))
	req := NewTransportationRequest("r0", 0, r2.Vec{X: 100, Y: 0}, r2.Vec{X: 110, Y: 0}, TimeWindow{Min: 0, Max: 1}, OpenTimeWindow())

	d := &BruteForceDispatcher[r2.Vec]{}
	_, ok := d.Insert(req, sl, space, 1)
	assert.False(t, ok)
}

func TestBruteForceDispatcher_RejectsOnDeliveryWindow(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(0))
	req := NewTransportationRequest("r0", 0, r2.Vec{X: 5, Y: 0}, r2.Vec{X: 100, Y: 0}, OpenTimeWindow(), TimeWindow{Min: 0, Max: 1})

	d := &BruteForceDispatcher[r2.Vec]{}
	_, ok := d.Insert(req, sl, space, 1)
	assert.False(t, ok)
}

func TestBruteForceDispatcher_RejectsOnCapacity(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(1))
	req := NewTransportationRequest("r0", 0, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 20, Y: 0}, OpenTimeWindow(), OpenTimeWindow())

	d := &BruteForceDispatcher[r2.Vec]{}
	_, ok := d.Insert(req, sl, space, 1)
	assert.False(t, ok)
}

// TestBruteForceDispatcher_RejectsInsertionThatBlowsDownstreamWindow covers a
// non-tail insertion where the cheapest (i, j) pair leaves a stop *after* j
// with a time window the propagated delay would violate. The dispatcher must
// keep searching past that candidate rather than committing to it.
func TestBruteForceDispatcher_RejectsInsertionThatBlowsDownstreamWindow(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(0))

	existing := &Request[r2.Vec]{ID: "existing", Role: RoleTransportation}
	sl.Insert(0, Stop[r2.Vec]{
		Location:                r2.Vec{X: 10, Y: 0},
		Request:                 existing,
		Action:                  ActionDropoff,
		OccupancyAfterServicing: 0,
		TimeWindow:              TimeWindow{Min: 0, Max: 10},
	}, space)

	// Inserting B's pickup and dropoff both ahead of the existing dropoff
	// (i=0, j=0) costs the same ~7.07 as (i=0, j=1) and, found first, would
	// win the tie, but it pushes the existing dropoff's ETA from 10 to
	// ~17.07, blowing its window. The feasible winner is (i=0, j=1):
	// pickup then the existing dropoff then B's own dropoff.
	req := NewTransportationRequest("b", 0, r2.Vec{X: 5, Y: 0}, r2.Vec{X: 5, Y: 5}, OpenTimeWindow(), OpenTimeWindow())

	d := &BruteForceDispatcher[r2.Vec]{}
	sol, ok := d.Insert(req, sl, space, 1)
	require.True(t, ok)
	require.Equal(t, 4, sol.Stoplist.Len())

	// The existing dropoff must still land within its own window, and B's
	// dropoff must come after it, not before.
	var existingIdx, bDropoffIdx int = -1, -1
	for i, stop := range sol.Stoplist.Stops {
		if stop.Request == existing {
			existingIdx = i
		}
		if stop.Request.ID == "b" && stop.Action == ActionDropoff {
			bDropoffIdx = i
		}
	}
	require.NotEqual(t, -1, existingIdx)
	require.NotEqual(t, -1, bDropoffIdx)
	assert.LessOrEqual(t, sol.Stoplist.Stops[existingIdx].EstimatedArrivalTime, 10.0)
	assert.Greater(t, bDropoffIdx, existingIdx)
}

func TestBruteForceDispatcher_NoFeasibleInsertionReturnsInfiniteCost(t *testing.T) {
	space := NewEuclideanSpace(1, -100, 100, -100, 100)
	sl := NewStoplist(0.0, r2.Vec{X: 0, Y: 0}, uint(0))
	req := NewTransportationRequest("r0", 0, r2.Vec{X: 100, Y: 0}, r2.Vec{X: 110, Y: 0}, TimeWindow{Min: 0, Max: 1}, OpenTimeWindow())

	d := &BruteForceDispatcher[r2.Vec]{}
	sol, ok := d.Insert(req, sl, space, 1)
	assert.False(t, ok)
	assert.True(t, math.IsInf(sol.Cost, 1))
}
