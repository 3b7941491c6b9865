// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) distance algorithm.
//
// GJK finds the point of the Minkowski difference A - B closest to the origin.
// If that point is the origin itself the shapes overlap; otherwise its length
// is the distance between the shapes and its direction separates them. The
// algorithm builds a simplex incrementally, reducing it to the feature closest
// to the origin after each new support point, and typically converges in 3-6
// iterations.
//
// Shapes are only accessed through their support functions, so any convex
// shape implementing actor.SupportFinder works.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
//   - Ericson: "Real-Time Collision Detection" (2004), closest point routines
package gjk

import (
	"sync"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits simplex refinement to prevent infinite loops.
	MaxIterations = 64

	// degenerateLengthSqr is the squared length below which a direction or
	// simplex feature is treated as zero.
	degenerateLengthSqr = 1e-24
)

// Simplex represents a set of 1-4 points in the Minkowski difference space.
// The simplex evolves during GJK iterations, always containing the most recent support points.
// Size progression: 1 point → 2 points (line) → 3 points (triangle) → 4 points (tetrahedron)
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) contains(p mgl64.Vec3) bool {
	for i := 0; i < s.Count; i++ {
		if s.Points[i] == p {
			return true
		}
	}
	return false
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// Returns:
//
//	Support point: furthestPoint(A, direction) - furthestPoint(B, -direction)
//
// This is the fundamental query that makes GJK work for any convex shape - shapes only
// need to implement a Support() function, not expose their full geometry.
func MinkowskiSupport(a, b actor.SupportFinder, direction mgl64.Vec3) mgl64.Vec3 {
	supportA := a.Support(direction)
	supportB := b.Support(direction.Mul(-1))
	return supportA.Sub(supportB)
}

// Result describes the outcome of a distance query.
type Result struct {
	// Intersecting is true when the origin lies inside the Minkowski difference
	// or within tolerance of it. The simplex then encloses or touches the origin
	// and can seed EPA.
	Intersecting bool
	// Bounded is true when the query stopped early because the distance was
	// proven larger than maxDistance. Distance then holds that lower bound.
	Bounded bool
	// Converged is false when MaxIterations was reached.
	Converged bool
	// Closest is the point of A - B closest to the origin (or the best
	// estimate so far).
	Closest mgl64.Vec3
	// Distance is |Closest|, or the lower bound when Bounded.
	Distance float64
	// Direction is the unit vector from the origin toward Closest.
	Direction mgl64.Vec3
}

// Distance computes the distance between convex shapes a and b.
//
// Algorithm overview:
//  1. Seed the simplex with the support point along direction
//  2. Query the support point w toward the origin from the current closest point v
//  3. Stop early if w proves the distance exceeds maxDistance
//  4. Stop when w does not improve on v by more than tolerance
//  5. Add w, reduce the simplex to the feature closest to the origin, repeat
//
// The simplex is modified in place. When the result is Intersecting, it holds
// the points that enclose or touch the origin.
func Distance(a, b actor.SupportFinder, direction mgl64.Vec3, tolerance, maxDistance float64, simplex *Simplex) Result {
	if direction.LenSqr() < degenerateLengthSqr {
		direction = mgl64.Vec3{0, 1, 0}
	}

	simplex.Points[0] = MinkowskiSupport(a, b, direction)
	simplex.Count = 1
	v := simplex.Points[0]

	for i := 0; i < MaxIterations; i++ {
		vLenSqr := v.LenSqr()
		if vLenSqr <= tolerance*tolerance {
			// The origin is on (or numerically on) the current simplex.
			return Result{Intersecting: true, Converged: true, Closest: v, Distance: 0}
		}
		vLen := v.Len()
		unit := v.Mul(1.0 / vLen)

		w := MinkowskiSupport(a, b, v.Mul(-1))

		// w·(v/|v|) is a lower bound of the distance: the whole difference lies
		// on the far side of the plane through w perpendicular to v.
		lowerBound := w.Dot(unit)
		if lowerBound > maxDistance {
			return Result{Bounded: true, Converged: true, Closest: v, Distance: lowerBound, Direction: unit}
		}

		if vLen-lowerBound <= tolerance || simplex.contains(w) {
			return Result{Converged: true, Closest: v, Distance: vLen, Direction: unit}
		}

		simplex.Points[simplex.Count] = w
		simplex.Count++

		var enclosed bool
		v, enclosed = closestOnSimplex(simplex)
		if enclosed {
			return Result{Intersecting: true, Converged: true, Closest: mgl64.Vec3{}, Distance: 0}
		}
	}

	// Failed to converge after MaxIterations (very rare, may indicate numerical issues)
	vLen := v.Len()
	if vLen <= tolerance {
		return Result{Intersecting: true, Closest: v}
	}
	return Result{Closest: v, Distance: vLen, Direction: v.Mul(1.0 / vLen)}
}
