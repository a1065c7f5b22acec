// Defines the TransportSpace capability set: distance, travel time, and
// route interpolation over an opaque location type. TransportSpace and
// Dispatcher are the two pluggable strategy interfaces of this module.

package sim

import "math/rand"

// TransportSpace is a metric space of locations of type L. All operations
// must be total and side-effect free on locations the space itself
// produced; passing a location not produced by the space is undefined
// behavior.
type TransportSpace[L comparable] interface {
	// D returns the distance between u and v. Must be a metric: symmetric,
	// zero iff u == v, and triangle-inequality-respecting.
	D(u, v L) float64

	// T returns the travel time between u and v.
	T(u, v L) float64

	// InterpTime returns the next discrete location reached while traveling
	// from u to v with timeToDest remaining before reaching v, and the
	// residual "jump time" left over once that next location is attained
	// (zero for continuous spaces, where the returned point always lands
	// exactly timeToDest away from v).
	InterpTime(u, v L, timeToDest float64) (next L, residual float64)

	// InterpDist is InterpTime's distance-denominated analogue.
	InterpDist(u, v L, distToDest float64) (next L, residual float64)

	// RandomPoint draws a location uniformly at random from the space's
	// domain. Not exercised by the dispatcher; provided for request
	// generators.
	RandomPoint(rng *rand.Rand) L
}
