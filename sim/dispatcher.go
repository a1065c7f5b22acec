// Defines the Dispatcher capability set: the single-vehicle insertion
// search at the heart of the simulator. A Dispatcher is a pure function of
// its inputs -- it must never mutate the stoplist it is given.

package sim

import "fmt"

// Solution is the result of a successful insertion: a new stoplist
// (obtained from the input by inserting exactly one Pickup and one Dropoff
// stop), the insertion cost under the dispatcher's own cost model (the total
// added travel time for the brute-force dispatcher), and the pickup/dropoff
// windows to report on acceptance. The windows are passed through unmodified, never
// tightened.
type Solution[L comparable] struct {
	Stoplist      *Stoplist[L]
	Cost          float64
	PickupWindow  TimeWindow
	DropoffWindow TimeWindow
}

// Dispatcher decides whether, and how, a single vehicle's stoplist can
// absorb a new transportation request. feasible == false means "no
// insertion satisfies the dispatcher's constraints" (capacity plus time
// windows or relative detour, depending on the variant); it is an ordinary
// outcome, never an error.
type Dispatcher[L comparable] interface {
	Insert(req *Request[L], sl *Stoplist[L], space TransportSpace[L], seatCapacity uint) (solution Solution[L], feasible bool)
}

// DispatcherParams configures the dispatcher variants that take
// parameters. Fields unused by a given variant are ignored.
type DispatcherParams struct {
	// MaxRelativeDetour configures the simple-ellipse dispatcher: the
	// maximum allowed (d(u,x)+d(x,v))/d(u,v) - 1 for any single-stop
	// insertion x between u and v.
	MaxRelativeDetour float64
}

// NewDispatcher creates a Dispatcher by name. Valid names are
// "brute-force" (default) and "simple-ellipse". Panics on an unrecognized
// name, matching this module's convention for strategy selection at
// configuration time.
func NewDispatcher[L comparable](name string, params DispatcherParams) Dispatcher[L] {
	switch name {
	case "", "brute-force":
		return &BruteForceDispatcher[L]{}
	case "simple-ellipse":
		return &SimpleEllipseDispatcher[L]{MaxRelativeDetour: params.MaxRelativeDetour}
	default:
		panic(fmt.Sprintf("unknown dispatcher %q; valid dispatchers: [brute-force, simple-ellipse]", name))
	}
}
