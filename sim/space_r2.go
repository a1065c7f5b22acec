// Implements TransportSpace over continuous R² locations, using
// gonum.org/v1/gonum/spatial/r2.Vec as Loc. Two metrics are supported:
// Euclidean and Manhattan (L1), both scaled by a constant velocity:
// t(u,v) = d(u,v) / velocity for a scalar velocity > 0.

package sim

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Metric selects the distance function an R2Space uses.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
)

// R2Space is a TransportSpace over r2.Vec locations, bounded for the
// purposes of RandomPoint by [MinX,MaxX] x [MinY,MaxY].
type R2Space struct {
	Velocity                  float64
	Metric                    Metric
	MinX, MaxX, MinY, MaxY    float64
}

// NewEuclideanSpace creates an R2Space using Euclidean distance.
func NewEuclideanSpace(velocity float64, minX, maxX, minY, maxY float64) *R2Space {
	return &R2Space{Velocity: velocity, Metric: MetricEuclidean, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// NewManhattanSpace creates an R2Space using Manhattan (L1) distance.
func NewManhattanSpace(velocity float64, minX, maxX, minY, maxY float64) *R2Space {
	return &R2Space{Velocity: velocity, Metric: MetricManhattan, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

func (s *R2Space) D(u, v r2.Vec) float64 {
	dx := v.X - u.X
	dy := v.Y - u.Y
	switch s.Metric {
	case MetricManhattan:
		return math.Abs(dx) + math.Abs(dy)
	default:
		return math.Hypot(dx, dy)
	}
}

func (s *R2Space) T(u, v r2.Vec) float64 {
	return s.D(u, v) / s.Velocity
}

// InterpTime returns the point timeToDest before v along the straight line
// from u to v, and a zero residual: continuous spaces have no discrete
// "next node" to overshoot.
func (s *R2Space) InterpTime(u, v r2.Vec, timeToDest float64) (r2.Vec, float64) {
	total := s.T(u, v)
	return s.interp(u, v, timeToDest, total), 0
}

// InterpDist is InterpTime's distance-denominated analogue.
func (s *R2Space) InterpDist(u, v r2.Vec, distToDest float64) (r2.Vec, float64) {
	total := s.D(u, v)
	return s.interp(u, v, distToDest, total), 0
}

func (s *R2Space) interp(u, v r2.Vec, remaining, total float64) r2.Vec {
	if total <= 0 {
		return v
	}
	frac := remaining / total
	return r2.Vec{
		X: v.X - frac*(v.X-u.X),
		Y: v.Y - frac*(v.Y-u.Y),
	}
}

// RandomPoint draws a uniform point from the space's bounding box.
func (s *R2Space) RandomPoint(rng *rand.Rand) r2.Vec {
	return r2.Vec{
		X: s.MinX + rng.Float64()*(s.MaxX-s.MinX),
		Y: s.MinY + rng.Float64()*(s.MaxY-s.MinY),
	}
}
