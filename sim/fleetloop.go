// Defines FleetLoop: pulls requests in creation-timestamp order, ages every
// vehicle forward to each request's arrival, asks the fleet for the
// cheapest feasible insertion, commits the winner, and emits the resulting
// event stream over a channel.

package sim

import (
	"math"
	"sort"
	"sync"
)

// FleetLoop drives a Fleet through a stream of requests, producing a lazy
// event sequence. Request-by-request work is serial; only the per-vehicle
// handle_single_request step fans out across goroutines.
type FleetLoop[L comparable] struct {
	fleet *Fleet[L]
}

// NewFleetLoop builds a FleetLoop over fleet.
func NewFleetLoop[L comparable](fleet *Fleet[L]) *FleetLoop[L] {
	return &FleetLoop[L]{fleet: fleet}
}

// Run consumes requests until exhaustion or, if tCutoff is non-nil, until a
// request's creation_timestamp exceeds it, then fast-forwards every vehicle
// to +Inf to flush remaining stop events. The returned channel is closed
// once the run completes.
func (fl *FleetLoop[L]) Run(requests RequestIterator[L], tCutoff *float64) <-chan Event[L] {
	out := make(chan Event[L])

	go func() {
		defer close(out)

		for _, v := range fl.fleet.Vehicles() {
			out <- VehicleStateBeginEvent[L]{baseEvent: baseEvent{v.Time()}, VehicleID: v.ID, Location: v.Location()}
		}

		for {
			req, ok := requests.Next()
			if !ok {
				break
			}
			if tCutoff != nil && req.CreationTimestamp > *tCutoff {
				break
			}

			for _, evt := range fl.fastForwardAll(req.CreationTimestamp) {
				out <- evt
			}

			out <- NewRequestSubmissionEvent(req.CreationTimestamp, req)

			if req.IsTrivial() {
				out <- NewRequestRejectionEvent[L](req.CreationTimestamp, req.ID, ReasonTrivialRequest)
				continue
			}

			solutions := fl.solveAcrossFleet(req)
			best, bestVehicle := argminSolution(solutions)

			if math.IsInf(best.Cost, 1) {
				fl.fleet.Each(func(v *VehicleState[L]) { v.DiscardProposed() })
				out <- NewRequestRejectionEvent[L](req.CreationTimestamp, req.ID, ReasonNoFeasibleInsertion)
				continue
			}

			fl.fleet.Each(func(v *VehicleState[L]) {
				if v.ID == bestVehicle {
					v.CommitProposed()
				} else {
					v.DiscardProposed()
				}
			})
			out <- NewRequestAcceptanceEvent[L](req.CreationTimestamp, req.ID, bestVehicle, best.PickupWindow, best.DropoffWindow)
		}

		for _, evt := range fl.fastForwardAll(math.Inf(1)) {
			out <- evt
		}
		for _, v := range fl.fleet.Vehicles() {
			out <- VehicleStateEndEvent[L]{baseEvent: baseEvent{v.Time()}, VehicleID: v.ID, Location: v.Location()}
		}
	}()

	return out
}

// fastForwardAll ages every vehicle to t and returns the resulting stop
// events, stably ordered by timestamp (which, since vehicles are visited in
// ascending ID order, also breaks timestamp ties by vehicle_id).
func (fl *FleetLoop[L]) fastForwardAll(t float64) []Event[L] {
	var events []Event[L]
	fl.fleet.Each(func(v *VehicleState[L]) {
		events = append(events, v.FastForward(t)...)
	})
	sort.SliceStable(events, func(a, b int) bool { return events[a].Timestamp() < events[b].Timestamp() })
	return events
}

// solveAcrossFleet calls HandleSingleRequest on every vehicle concurrently.
// Each goroutine writes to its own pre-assigned slice index, so no
// synchronization beyond the WaitGroup is needed.
func (fl *FleetLoop[L]) solveAcrossFleet(req *Request[L]) []SingleVehicleSolution[L] {
	vehicles := fl.fleet.Vehicles()
	solutions := make([]SingleVehicleSolution[L], len(vehicles))

	var wg sync.WaitGroup
	for i, v := range vehicles {
		wg.Add(1)
		go func(i int, v *VehicleState[L]) {
			defer wg.Done()
			solutions[i] = v.HandleSingleRequest(req)
		}(i, v)
	}
	wg.Wait()

	return solutions
}

// argminSolution returns the lowest-cost solution and its vehicle ID,
// breaking ties by keeping the first-found (solutions is in ascending
// vehicle-ID order, so this yields "lowest vehicle_id wins").
func argminSolution[L comparable](solutions []SingleVehicleSolution[L]) (SingleVehicleSolution[L], string) {
	best := SingleVehicleSolution[L]{Cost: math.Inf(1)}
	for _, s := range solutions {
		if s.Cost < best.Cost {
			best = s
		}
	}
	return best, best.VehicleID
}
