// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK finds the origin inside the Minkowski difference A - B.
// It expands a polytope (starting from GJK's final simplex) toward the
// boundary of the difference, finding the face closest to the origin. That
// face's outward normal is the direction of minimum penetration and its
// distance to the origin is the penetration depth.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits polytope expansion to prevent infinite loops.
	// Typical convergence: 5-15 iterations for simple shapes.
	MaxIterations = 64

	// degenerateNormalLength is the cross product length below which a face
	// is considered to have zero area.
	degenerateNormalLength = 1e-12

	// Small initial capacity for PolytopeBuilder - grows dynamically as needed
	polytopeInitialCapacity = 16
)

var (
	// ErrNoConvergence is returned when the polytope did not converge within
	// MaxIterations. The accompanying Result holds the best estimate.
	ErrNoConvergence = errors.New("epa: no convergence")

	// ErrDegenerate is returned when the Minkowski difference is flat, so no
	// tetrahedron can be built around the origin.
	ErrDegenerate = errors.New("epa: degenerate minkowski difference")
)

// Result is the minimum penetration found by EPA.
type Result struct {
	// Normal is the unit outward normal of the closest polytope face. Moving
	// A by -Normal*Depth separates the shapes.
	Normal mgl64.Vec3
	// Depth is the support distance along Normal, always >= the face
	// distance and >= 0 up to tolerance.
	Depth float64
	// Iterations is the number of expansion steps performed.
	Iterations int
}

// Penetration computes the minimum penetration of overlapping convex shapes.
//
// Algorithm overview:
//  1. Complete the simplex from GJK to a tetrahedron
//  2. Build initial polytope faces from it
//  3. Find face closest to origin
//  4. Get support point in face normal direction
//  5. If converged (new point doesn't improve distance by tolerance) → done
//  6. Otherwise, expand polytope by adding support point
//  7. Repeat from step 3
//
// The simplex is modified in place while being completed.
func Penetration(a, b actor.SupportFinder, simplex *gjk.Simplex, tolerance float64) (Result, error) {
	if err := completeSimplex(a, b, simplex, tolerance); err != nil {
		return Result{}, err
	}

	builder := polytopeBuilderPool.Get().(*PolytopeBuilder)
	defer polytopeBuilderPool.Put(builder)
	builder.Reset()

	if err := builder.BuildInitialFaces(simplex); err != nil {
		return Result{}, err
	}

	best := Result{Depth: math.Inf(1)}
	for i := 0; i < MaxIterations; i++ {
		closestIndex := builder.FindClosestFaceIndex()
		if closestIndex < 0 {
			break
		}
		closestFace := builder.faces[closestIndex]

		support := gjk.MinkowskiSupport(a, b, closestFace.Normal)
		distance := support.Dot(closestFace.Normal)

		// distance is an upper bound of the penetration, the face distance a
		// lower bound.
		if distance < best.Depth {
			best = Result{Normal: closestFace.Normal, Depth: distance, Iterations: i}
		}

		if distance-closestFace.Distance <= tolerance {
			return best, nil
		}

		if !builder.AddPointAndRebuildFaces(support, tolerance) {
			// The support point does not expand the polytope any further
			return best, nil
		}
	}

	if math.IsInf(best.Depth, 1) {
		return Result{}, ErrDegenerate
	}
	best.Iterations = MaxIterations
	return best, fmt.Errorf("%w after %d iterations (depth %g)", ErrNoConvergence, MaxIterations, best.Depth)
}

// searchAxes are tried in order when the simplex needs more points.
var searchAxes = [6]mgl64.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// completeSimplex grows a GJK simplex of 1-3 points into a tetrahedron of
// non-zero volume by querying supports away from its current span.
//
// GJK stops early when the origin lies on a vertex, edge or face of the
// simplex (shapes touching), so EPA cannot assume 4 points.
func completeSimplex(a, b actor.SupportFinder, simplex *gjk.Simplex, tolerance float64) error {
	if simplex.Count == 0 {
		simplex.Points[0] = gjk.MinkowskiSupport(a, b, searchAxes[0])
		simplex.Count = 1
	}

	if simplex.Count == 1 {
		p0 := simplex.Points[0]
		for _, axis := range searchAxes {
			w := gjk.MinkowskiSupport(a, b, axis)
			if w.Sub(p0).Len() > tolerance {
				simplex.Points[1] = w
				simplex.Count = 2
				break
			}
		}
		if simplex.Count < 2 {
			return fmt.Errorf("%w: single point", ErrDegenerate)
		}
	}

	if simplex.Count == 2 {
		p0, p1 := simplex.Points[0], simplex.Points[1]
		direction := p1.Sub(p0).Normalize()

		// Pick the axis least aligned with the segment to build perpendiculars
		var axis mgl64.Vec3
		least := 0
		for i := 1; i < 3; i++ {
			if math.Abs(direction[i]) < math.Abs(direction[least]) {
				least = i
			}
		}
		axis[least] = 1
		perp1 := direction.Cross(axis).Normalize()
		perp2 := direction.Cross(perp1)

		for _, search := range [4]mgl64.Vec3{perp1, perp1.Mul(-1), perp2, perp2.Mul(-1)} {
			w := gjk.MinkowskiSupport(a, b, search)
			offset := w.Sub(p0)
			if offset.Sub(direction.Mul(offset.Dot(direction))).Len() > tolerance {
				simplex.Points[2] = w
				simplex.Count = 3
				break
			}
		}
		if simplex.Count < 3 {
			return fmt.Errorf("%w: collinear", ErrDegenerate)
		}
	}

	if simplex.Count == 3 {
		p0, p1, p2 := simplex.Points[0], simplex.Points[1], simplex.Points[2]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		if normal.Len() < degenerateNormalLength {
			return fmt.Errorf("%w: collinear", ErrDegenerate)
		}
		normal = normal.Normalize()

		for _, search := range [2]mgl64.Vec3{normal, normal.Mul(-1)} {
			w := gjk.MinkowskiSupport(a, b, search)
			if math.Abs(w.Sub(p0).Dot(normal)) > tolerance {
				simplex.Points[3] = w
				simplex.Count = 4
				break
			}
		}
		if simplex.Count < 4 {
			return fmt.Errorf("%w: coplanar", ErrDegenerate)
		}
	}

	return nil
}
