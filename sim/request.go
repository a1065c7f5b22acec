// Defines the Request type that models a single transportation request or
// the internal bookkeeping request used to tag a vehicle's current-position
// stop. Tracks identity, timing windows, and the role that discriminates the
// two flavors.

package sim

import "math"

// Role discriminates why a Request exists: an ordinary transportation
// request submitted by a rider, or the internal placeholder request that
// tags the current-position element of a vehicle's stoplist.
type Role string

const (
	RoleTransportation Role = "transportation"
	RoleInternal       Role = "internal"
)

// InternalRequestID is the stable ID used for every internal request that
// tags a current-position element. Internal requests are never matched by
// ID against rider-submitted requests.
const InternalRequestID = "-1"

// TimeWindow is an inclusive [Min, Max] service-time window. Max may be
// +Inf (no deadline); Min defaults to zero.
type TimeWindow struct {
	Min float64
	Max float64
}

// OpenTimeWindow returns a window that opens at zero and has no upper bound.
func OpenTimeWindow() TimeWindow {
	return TimeWindow{Min: 0, Max: math.Inf(1)}
}

// Contains reports whether t is within [Min, Max], non-strict on both ends.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.Min && t <= w.Max
}

// Request models either a rider's transportation request or the internal
// request used to tag a vehicle's current-position element.
//
// Requests are shared by reference between the Stops they generate: a
// TransportationRequest is pointed to by exactly its Pickup and Dropoff
// Stop, and stays alive exactly as long as one of those Stops remains in
// some vehicle's stoplist.
type Request[L comparable] struct {
	ID                string
	Role              Role
	CreationTimestamp float64

	// Valid only for Role == RoleTransportation.
	Origin         L
	Destination    L
	PickupWindow   TimeWindow
	DeliveryWindow TimeWindow

	// Valid only for Role == RoleInternal.
	Location L
}

// NewTransportationRequest constructs a rider request. PickupWindow.Max and
// DeliveryWindow.Max may be math.Inf(1) for no deadline.
func NewTransportationRequest[L comparable](id string, creationTimestamp float64, origin, destination L, pickupWindow, deliveryWindow TimeWindow) *Request[L] {
	return &Request[L]{
		ID:                id,
		Role:              RoleTransportation,
		CreationTimestamp: creationTimestamp,
		Origin:            origin,
		Destination:       destination,
		PickupWindow:      pickupWindow,
		DeliveryWindow:    deliveryWindow,
	}
}

// NewInternalRequest constructs the placeholder request for a vehicle's
// current-position element.
func NewInternalRequest[L comparable](creationTimestamp float64, location L) *Request[L] {
	return &Request[L]{
		ID:                InternalRequestID,
		Role:              RoleInternal,
		CreationTimestamp: creationTimestamp,
		Location:          location,
	}
}

// IsTrivial reports whether a transportation request's origin and
// destination coincide -- grounds for an immediate TrivialRequest
// rejection.
func (r *Request[L]) IsTrivial() bool {
	return r.Role == RoleTransportation && r.Origin == r.Destination
}
