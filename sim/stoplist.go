// Defines the Stoplist type: a vehicle's ordered plan of future stops,
// including the always-present current-position element (CPE) at index 0,
// and the two structural operations (insert/remove) that must leave the
// stoplist well-formed on every call: ETAs consistent with drive-first
// scheduling, time windows respected, occupancy within capacity, and every
// dropoff preceded by its own pickup.

package sim

import "fmt"

// Stoplist is an ordered sequence of Stops. Index 0 is always the current
// position element (CPE), an Action=Internal stop tagging an
// InternalRequest. The CPE is never removed.
type Stoplist[L comparable] struct {
	Stops []Stop[L]
}

// NewStoplist creates a fresh stoplist containing only a CPE at the given
// location and time, with the given starting occupancy (normally zero).
func NewStoplist[L comparable](now float64, loc L, occupancy uint) *Stoplist[L] {
	return &Stoplist[L]{Stops: []Stop[L]{newCurrentPositionElement(now, loc, occupancy)}}
}

// Len returns the number of stops, including the CPE.
func (sl *Stoplist[L]) Len() int {
	return len(sl.Stops)
}

// CPE returns the current position element.
func (sl *Stoplist[L]) CPE() Stop[L] {
	return sl.Stops[0]
}

// Clone returns a deep copy safe to mutate independently of sl. The
// dispatcher relies on this to propose a new stoplist without mutating the
// committed one.
func (sl *Stoplist[L]) Clone() *Stoplist[L] {
	out := make([]Stop[L], len(sl.Stops))
	copy(out, sl.Stops)
	return &Stoplist[L]{Stops: out}
}

// Remove deletes the i-th stop. Removing the CPE (i == 0) is forbidden and
// indicates a bug in the caller.
func (sl *Stoplist[L]) Remove(i int) {
	if i == 0 {
		panic("stoplist: cannot remove the current position element")
	}
	if i < 0 || i >= len(sl.Stops) {
		panic(fmt.Sprintf("stoplist: remove index %d out of range [0,%d)", i, len(sl.Stops)))
	}
	sl.Stops = append(sl.Stops[:i], sl.Stops[i+1:]...)
}

// Insert places stop immediately after index afterIdx (i.e. the new stop's
// index becomes afterIdx+1), computes its drive-first ETA from its new
// predecessor, then propagates the ETA delta forward through the rest of
// the stoplist so every later ETA still reflects drive-first scheduling.
func (sl *Stoplist[L]) Insert(afterIdx int, stop Stop[L], space TransportSpace[L]) {
	if afterIdx < 0 || afterIdx >= len(sl.Stops) {
		panic(fmt.Sprintf("stoplist: insert-after index %d out of range [0,%d)", afterIdx, len(sl.Stops)))
	}
	prev := sl.Stops[afterIdx]
	stop.EstimatedArrivalTime = prev.EstimatedDepartureTime() + space.T(prev.Location, stop.Location)

	grown := make([]Stop[L], 0, len(sl.Stops)+1)
	grown = append(grown, sl.Stops[:afterIdx+1]...)
	grown = append(grown, stop)
	grown = append(grown, sl.Stops[afterIdx+1:]...)
	sl.Stops = grown

	sl.propagateFrom(afterIdx + 1, space)
}

// propagateFrom recomputes EstimatedArrivalTime for every stop after index
// i (i itself is assumed already correct), following the drive-first rule.
func (sl *Stoplist[L]) propagateFrom(i int, space TransportSpace[L]) {
	for idx := i + 1; idx < len(sl.Stops); idx++ {
		prev := sl.Stops[idx-1]
		sl.Stops[idx].EstimatedArrivalTime = prev.EstimatedDepartureTime() + space.T(prev.Location, sl.Stops[idx].Location)
	}
}

// Validate checks well-formedness in one pass: CPE placement, ETA
// consistency, time windows, capacity, and pickup-before-dropoff ordering.
// Intended for tests and debug assertions, not the dispatch hot path.
func (sl *Stoplist[L]) Validate(space TransportSpace[L], seatCapacity uint) error {
	if len(sl.Stops) == 0 {
		return fmt.Errorf("stoplist is empty")
	}
	if sl.Stops[0].Action != ActionInternal {
		return fmt.Errorf("index 0 is not the current position element")
	}

	pickupIndex := map[string]int{}
	for i, s := range sl.Stops {
		if i > 0 {
			prev := sl.Stops[i-1]
			want := prev.EstimatedDepartureTime() + space.T(prev.Location, s.Location)
			if !floatEqual(want, s.EstimatedArrivalTime) {
				return fmt.Errorf("ETA mismatch at index %d: want %v, got %v", i, want, s.EstimatedArrivalTime)
			}
		}
		if s.EstimatedArrivalTime > s.TimeWindow.Max {
			return fmt.Errorf("time window violated at index %d: ETA %v exceeds window max %v", i, s.EstimatedArrivalTime, s.TimeWindow.Max)
		}
		if s.OccupancyAfterServicing > seatCapacity {
			return fmt.Errorf("capacity violated at index %d: occupancy %d exceeds capacity %d", i, s.OccupancyAfterServicing, seatCapacity)
		}
		if i > 0 {
			prevOcc := sl.Stops[i-1].OccupancyAfterServicing
			switch s.Action {
			case ActionPickup:
				if s.OccupancyAfterServicing != prevOcc+1 {
					return fmt.Errorf("occupancy mismatch at index %d: pickup occupancy %d, want %d", i, s.OccupancyAfterServicing, prevOcc+1)
				}
				pickupIndex[s.Request.ID] = i
			case ActionDropoff:
				if s.OccupancyAfterServicing+1 != prevOcc {
					return fmt.Errorf("occupancy mismatch at index %d: dropoff occupancy %d, want %d", i, s.OccupancyAfterServicing, prevOcc-1)
				}
				if pi, ok := pickupIndex[s.Request.ID]; !ok || pi >= i {
					return fmt.Errorf("dropoff for request %s at index %d has no earlier pickup", s.Request.ID, i)
				}
			}
		}
	}
	return nil
}

func floatEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
