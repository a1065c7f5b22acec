// Defines VehicleState: one vehicle's owned stoplist, the dispatcher and
// transport space it shares with the rest of the fleet, and the
// fast-forward / propose / commit state machine a fleet loop drives it
// through.

package sim

import "fmt"

// SingleVehicleSolution is what HandleSingleRequest reports back to the
// fleet loop: enough to pick a winner across vehicles without exposing the
// candidate stoplist itself.
type SingleVehicleSolution[L comparable] struct {
	VehicleID     string
	Cost          float64
	PickupWindow  TimeWindow
	DropoffWindow TimeWindow
	Feasible      bool
}

// proposalState tracks where a vehicle sits in the per-request state
// machine: Idle -> Proposed -> (Committed | Discarded) -> Idle.
type proposalState int

const (
	stateIdle proposalState = iota
	stateProposed
)

// VehicleState owns a stoplist, fast-forwards it through simulated time,
// and holds at most one tentative proposal from the dispatcher at a time.
type VehicleState[L comparable] struct {
	ID            string
	SeatCapacity  uint
	space         TransportSpace[L]
	dispatcher    Dispatcher[L]
	stoplist      *Stoplist[L]
	proposed      *Solution[L]
	proposalState proposalState
	lastForwarded float64
	everForwarded bool
}

// NewVehicleState creates a vehicle starting at (now, loc) with an empty
// stoplist (just its current-position element).
func NewVehicleState[L comparable](id string, seatCapacity uint, now float64, loc L, space TransportSpace[L], dispatcher Dispatcher[L]) *VehicleState[L] {
	return &VehicleState[L]{
		ID:           id,
		SeatCapacity: seatCapacity,
		space:        space,
		dispatcher:   dispatcher,
		stoplist:     NewStoplist[L](now, loc, 0),
	}
}

// Location is the vehicle's current-position element's location.
func (vs *VehicleState[L]) Location() L {
	return vs.stoplist.CPE().Location
}

// Time is the vehicle's current-position element's estimated arrival time,
// i.e. the simulated time this vehicle's state is valid as of.
func (vs *VehicleState[L]) Time() float64 {
	return vs.stoplist.CPE().EstimatedArrivalTime
}

// FastForward advances the vehicle's clock to t, emitting and removing
// every stop whose service time has arrived, in ETA order (the stoplist's
// own ordering). Idempotent: a second call with the same t is a no-op.
func (vs *VehicleState[L]) FastForward(t float64) []Event[L] {
	vs.proposed = nil
	vs.proposalState = stateIdle

	if vs.everForwarded && t == vs.lastForwarded {
		return nil
	}
	cpe := vs.stoplist.CPE()
	if t < cpe.EstimatedArrivalTime {
		panic(fmt.Sprintf("vehicle %s: fast_forward(%v) precedes current position's ETA %v", vs.ID, t, cpe.EstimatedArrivalTime))
	}

	var events []Event[L]
	lastLoc := cpe.Location
	lastOccupancy := cpe.OccupancyAfterServicing
	servicedAny := false

	for vs.stoplist.Len() > 1 {
		s := vs.stoplist.Stops[1]
		if s.ServiceTime() > t {
			break
		}
		switch s.Action {
		case ActionPickup:
			events = append(events, PickupEvent[L]{baseEvent: baseEvent{s.ServiceTime()}, RequestID: s.Request.ID, VehicleID: vs.ID})
		case ActionDropoff:
			events = append(events, DeliveryEvent[L]{baseEvent: baseEvent{s.ServiceTime()}, RequestID: s.Request.ID, VehicleID: vs.ID})
		}
		lastLoc = s.Location
		lastOccupancy = s.OccupancyAfterServicing
		servicedAny = true
		vs.stoplist.Remove(1)
	}

	if servicedAny {
		vs.stoplist.Stops[0].OccupancyAfterServicing = lastOccupancy
	}
	if vs.stoplist.Len() > 1 {
		next := vs.stoplist.Stops[1]
		nextLoc, residual := vs.space.InterpTime(lastLoc, next.Location, next.EstimatedArrivalTime-t)
		vs.stoplist.Stops[0].Location = nextLoc
		vs.stoplist.Stops[0].EstimatedArrivalTime = t + residual
	} else {
		vs.stoplist.Stops[0].Location = lastLoc
		vs.stoplist.Stops[0].EstimatedArrivalTime = t
	}

	vs.lastForwarded = t
	vs.everForwarded = true
	return events
}

// HandleSingleRequest asks this vehicle's dispatcher whether req fits,
// stashing a feasible result as a pending proposal without touching the
// committed stoplist.
func (vs *VehicleState[L]) HandleSingleRequest(req *Request[L]) SingleVehicleSolution[L] {
	solution, feasible := vs.dispatcher.Insert(req, vs.stoplist, vs.space, vs.SeatCapacity)
	if feasible {
		vs.proposed = &solution
		vs.proposalState = stateProposed
	} else {
		vs.proposed = nil
		vs.proposalState = stateIdle
	}
	return SingleVehicleSolution[L]{
		VehicleID:     vs.ID,
		Cost:          solution.Cost,
		PickupWindow:  solution.PickupWindow,
		DropoffWindow: solution.DropoffWindow,
		Feasible:      feasible,
	}
}

// CommitProposed replaces the committed stoplist with the pending proposal.
// Panics if no proposal is outstanding.
func (vs *VehicleState[L]) CommitProposed() {
	if vs.proposalState != stateProposed || vs.proposed == nil {
		panic(fmt.Sprintf("vehicle %s: commit_proposed called with no outstanding proposal", vs.ID))
	}
	vs.stoplist = vs.proposed.Stoplist
	vs.proposed = nil
	vs.proposalState = stateIdle
}

// DiscardProposed clears any outstanding proposal.
func (vs *VehicleState[L]) DiscardProposed() {
	vs.proposed = nil
	vs.proposalState = stateIdle
}
