// Implements the brute-force, total-travel-time-minimizing insertion
// dispatcher: enumerate every ordered pair of insertion indices, reject
// infeasible candidates on time windows and capacity, and keep the
// cheapest feasible one.

package sim

import "math"

// BruteForceDispatcher enumerates every (pickup-after, dropoff-after) index
// pair and keeps the cheapest feasible insertion. It never mutates the
// stoplist it is given.
type BruteForceDispatcher[L comparable] struct{}

func (d *BruteForceDispatcher[L]) Insert(req *Request[L], sl *Stoplist[L], space TransportSpace[L], seatCapacity uint) (Solution[L], bool) {
	n := sl.Len()
	bestCost := math.Inf(1)
	bestI, bestJ := -1, -1

	for i := 0; i < n; i++ {
		si := sl.Stops[i]
		if si.OccupancyAfterServicing == seatCapacity {
			// Carrying the extra passenger from here would violate capacity.
			continue
		}
		cpatPu := si.EstimatedDepartureTime() + space.T(si.Location, req.Origin)
		if cpatPu > req.PickupWindow.Max {
			continue
		}
		pickupDeparture := maxF(cpatPu, req.PickupWindow.Min)

		// departureAtJ/locAtJ describe the (possibly delayed) departure from
		// whatever sits at index j once the pickup has been inserted; they
		// seed at the pickup itself for the j == i case.
		departureAtJ := pickupDeparture
		locAtJ := req.Origin

		for j := i; j < n; j++ {
			if j > i {
				stop := sl.Stops[j]
				if stop.OccupancyAfterServicing == seatCapacity {
					// This stop, and every later one, sits between the
					// pickup and any dropoff index >= j: no larger j helps.
					break
				}
				var newArrival float64
				if j == i+1 {
					newArrival = pickupDeparture + space.T(req.Origin, stop.Location)
				} else {
					newArrival = stop.EstimatedArrivalTime + (departureAtJ - sl.Stops[j-1].EstimatedDepartureTime())
				}
				if newArrival > stop.TimeWindow.Max {
					// This stop (and hence every larger j, which still
					// passes through it) can't absorb the delay.
					break
				}
				departureAtJ = maxF(newArrival, stop.TimeWindow.Min)
				locAtJ = stop.Location
			}

			cpatDo := departureAtJ + space.T(locAtJ, req.Destination)
			if cpatDo > req.DeliveryWindow.Max {
				continue
			}
			destDeparture := maxF(cpatDo, req.DeliveryWindow.Min)
			if !downstreamFeasible(space, sl, req, j, destDeparture) {
				continue
			}

			cost := insertionCost(space, sl, req, i, j)
			if cost < bestCost {
				bestCost, bestI, bestJ = cost, i, j
			}
		}
	}

	if bestI < 0 {
		return Solution[L]{Cost: math.Inf(1)}, false
	}
	return buildInsertedStoplist(sl, space, req, bestI, bestJ, bestCost, seatCapacity), true
}

// downstreamFeasible checks every stop after the dropoff insertion point j
// for a time-window violation once the dropoff's delay propagates forward,
// stopping as soon as a stop departs exactly when it originally did (the
// delay has been fully absorbed, so nothing further shifts) or the
// stoplist ends.
func downstreamFeasible[L comparable](space TransportSpace[L], sl *Stoplist[L], req *Request[L], j int, destDeparture float64) bool {
	n := sl.Len()
	departure := destDeparture

	for k := j + 1; k < n; k++ {
		stop := sl.Stops[k]
		var newArrival float64
		if k == j+1 {
			newArrival = departure + space.T(req.Destination, stop.Location)
		} else {
			newArrival = stop.EstimatedArrivalTime + (departure - sl.Stops[k-1].EstimatedDepartureTime())
		}
		if newArrival > stop.TimeWindow.Max {
			return false
		}
		departure = maxF(newArrival, stop.TimeWindow.Min)
		if floatEqual(departure, stop.EstimatedDepartureTime()) {
			return true
		}
	}
	return true
}

// insertionCost is the total added travel time of inserting req's pickup
// after index i and dropoff after index j (j >= i), computed as the
// standard marginal-detour cost for each leg: t(a,x) + t(x,b) - t(a,b),
// dropping the second/third term when the insertion is at the tail.
func insertionCost[L comparable](space TransportSpace[L], sl *Stoplist[L], req *Request[L], i, j int) float64 {
	n := sl.Len()

	aLoc := sl.Stops[i].Location
	var pickupCost float64
	if i+1 < n {
		bLoc := sl.Stops[i+1].Location
		pickupCost = space.T(aLoc, req.Origin) + space.T(req.Origin, bLoc) - space.T(aLoc, bLoc)
	} else {
		pickupCost = space.T(aLoc, req.Origin)
	}

	var cLoc L
	if j == i {
		cLoc = req.Origin
	} else {
		cLoc = sl.Stops[j].Location
	}
	var dropoffCost float64
	if j+1 < n {
		dLoc := sl.Stops[j+1].Location
		dropoffCost = space.T(cLoc, req.Destination) + space.T(req.Destination, dLoc) - space.T(cLoc, dLoc)
	} else {
		dropoffCost = space.T(cLoc, req.Destination)
	}

	return pickupCost + dropoffCost
}

// buildInsertedStoplist materializes the winning (i, j) candidate: clone,
// insert the pickup, bump occupancy across the segment the new passenger
// rides, insert the dropoff. Insert() re-derives ETAs forward at each step.
// The pickup is inserted first and the dropoff second, against the
// already-shifted indices -- never the pickup stop twice.
func buildInsertedStoplist[L comparable](sl *Stoplist[L], space TransportSpace[L], req *Request[L], i, j int, cost float64, seatCapacity uint) Solution[L] {
	out := sl.Clone()

	pickupIdx := i + 1
	pickup := Stop[L]{
		Location:                req.Origin,
		Request:                 req,
		Action:                  ActionPickup,
		OccupancyAfterServicing: out.Stops[i].OccupancyAfterServicing + 1,
		TimeWindow:              req.PickupWindow,
	}
	out.Insert(i, pickup, space)

	dropoffAfterIdx := pickupIdx
	if j > i {
		dropoffAfterIdx = j + 1 // shifted index of the original j-th stop
		for idx := pickupIdx + 1; idx <= dropoffAfterIdx; idx++ {
			out.Stops[idx].OccupancyAfterServicing++
		}
	}

	dropoff := Stop[L]{
		Location:                req.Destination,
		Request:                 req,
		Action:                  ActionDropoff,
		OccupancyAfterServicing: out.Stops[dropoffAfterIdx].OccupancyAfterServicing - 1,
		TimeWindow:              req.DeliveryWindow,
	}
	out.Insert(dropoffAfterIdx, dropoff, space)

	return Solution[L]{
		Stoplist:      out,
		Cost:          cost,
		PickupWindow:  req.PickupWindow,
		DropoffWindow: req.DeliveryWindow,
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
