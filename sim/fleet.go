// Defines Fleet: the set of vehicles a fleet loop drives, iterated in a
// stable order so that tie-breaks ("lowest vehicle_id wins") are
// deterministic across runs.

package sim

import (
	"sort"
	"strconv"
)

// Fleet owns a set of vehicles sharing one TransportSpace and Dispatcher.
type Fleet[L comparable] struct {
	vehicles map[string]*VehicleState[L]
	order    []string
}

// NewFleet builds a Fleet from already-constructed vehicles. Vehicle IDs
// must be unique.
func NewFleet[L comparable](vehicles []*VehicleState[L]) *Fleet[L] {
	f := &Fleet[L]{vehicles: make(map[string]*VehicleState[L], len(vehicles))}
	for _, v := range vehicles {
		if _, exists := f.vehicles[v.ID]; exists {
			panic("fleet: duplicate vehicle id " + v.ID)
		}
		f.vehicles[v.ID] = v
		f.order = append(f.order, v.ID)
	}
	sort.Slice(f.order, func(a, b int) bool { return idLess(f.order[a], f.order[b]) })
	return f
}

// idLess orders vehicle IDs numerically when both parse as integers, and
// falls back to lexical order otherwise -- so integer-valued IDs tie-break
// the way a human expects ("2" before "10").
func idLess(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// Each calls fn once per vehicle, in stable ID order.
func (f *Fleet[L]) Each(fn func(v *VehicleState[L])) {
	for _, id := range f.order {
		fn(f.vehicles[id])
	}
}

// Len returns the number of vehicles in the fleet.
func (f *Fleet[L]) Len() int {
	return len(f.order)
}

// Vehicles returns the fleet's vehicles in stable ID order. The returned
// slice is owned by the caller.
func (f *Fleet[L]) Vehicles() []*VehicleState[L] {
	out := make([]*VehicleState[L], len(f.order))
	for i, id := range f.order {
		out[i] = f.vehicles[id]
	}
	return out
}
