// Package sim provides the core ridepooling simulation engine: per-vehicle
// stoplist management, insertion dispatch, and the fleet loop that ties
// them to a stream of transportation requests.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go, stop.go, stoplist.go: the data model a vehicle carries
//     around -- requests, planned stops, and the ordered plan they sit in.
//   - space.go, space_r2.go, space_graph.go: TransportSpace, the distance /
//     travel-time / route-interpolation abstraction both the dispatcher and
//     the fast-forward step depend on.
//   - dispatcher.go, dispatcher_bruteforce.go, dispatcher_ellipse.go: the
//     insertion search, in both its reference and relative-detour forms.
//   - vehicle.go: VehicleState, which owns a stoplist and the propose/
//     commit/discard state machine a fleet loop drives it through.
//   - fleet.go, fleetloop.go: the request-by-request simulation loop and
//     the event stream it produces.
//
// # Architecture
//
// TransportSpace and Dispatcher are the two pluggable strategy interfaces.
// A TransportSpace is constructed by the caller and handed to Config as a
// value; a Dispatcher is selected by name through Config and NewDispatcher,
// which panics on an unrecognized name, matching this module's convention
// for strategy selection at configuration time.
//
// # Key Interfaces
//
//   - TransportSpace[L]: distance, travel time, route interpolation.
//   - Dispatcher[L]: feasible single-vehicle insertion search.
//   - RequestIterator[L]: the lazy, non-restartable request sequence a
//     fleet loop consumes.
//   - Event[L]: the sealed set of lifecycle events a run produces.
package sim
