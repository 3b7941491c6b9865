// Package depth finds the minimum signed penetration depth between a convex
// hull and a triangle.
//
// The search runs over the Minkowski difference D = hull - triangle, with
// depth(N) = support_D(N)·N for a unit normal N pointing from the hull toward
// the triangle. Positive depths mean overlap, negative depths mean separation
// by that distance. GJK handles the separated case and EPA the overlapping
// one.
package depth

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/epa"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Result is the outcome of a minimum-depth search.
type Result struct {
	// Depth is the minimum signed depth found. It is only an upper bound
	// when Bounded is set.
	Depth float64
	// Normal is the unit contact normal, from the hull toward the triangle.
	Normal mgl64.Vec3
	// ClosestOnHull is the hull support point along Normal.
	ClosestOnHull mgl64.Vec3
	// Bounded is set when the search stopped as soon as the depth was proven
	// below the rejection threshold.
	Bounded bool
	// Converged is false when the underlying iteration limits were reached.
	Converged bool
}

// loggerPtr holds the logger installed by the root package. A nil logger
// disables logging.
var loggerPtr atomic.Pointer[slog.Logger]

// SetLogger installs the logger used for debug records about searches that
// fell back to an estimate. Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(l)
}

func logDebug(msg string, args ...any) {
	if l := loggerPtr.Load(); l != nil {
		l.Debug(msg, args...)
	}
}

// FindMinimumDepth searches for the normal minimizing depth(N).
//
// initialNormal seeds the search and is returned as is when the difference is
// degenerate. tolerance bounds the gap between the reported depth and the true
// minimum. The search stops early once depth is proven to be below
// rejectionThreshold; the caller then rejects the pair.
func FindMinimumDepth(hull, triangle actor.SupportFinder, initialNormal mgl64.Vec3, tolerance, rejectionThreshold float64) Result {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer gjk.SimplexPool.Put(simplex)
	simplex.Reset()

	distance := gjk.Distance(hull, triangle, initialNormal.Mul(-1), tolerance, -rejectionThreshold, simplex)

	if !distance.Intersecting {
		// The closest point of D points from the triangle toward the hull.
		normal := distance.Direction.Mul(-1)
		if distance.Direction.LenSqr() == 0 {
			normal = initialNormal
		}
		return Result{
			Depth:         -distance.Distance,
			Normal:        normal,
			ClosestOnHull: hull.Support(normal),
			Bounded:       distance.Bounded,
			Converged:     distance.Converged,
		}
	}

	penetration, err := epa.Penetration(hull, triangle, simplex, tolerance)
	switch {
	case err == nil:
		return Result{
			Depth:         penetration.Depth,
			Normal:        penetration.Normal,
			ClosestOnHull: hull.Support(penetration.Normal),
			Converged:     true,
		}
	case errors.Is(err, epa.ErrNoConvergence):
		logDebug("depth search did not converge, using best estimate",
			"error", err, "depth", penetration.Depth, "iterations", penetration.Iterations)
		return Result{
			Depth:         penetration.Depth,
			Normal:        penetration.Normal,
			ClosestOnHull: hull.Support(penetration.Normal),
		}
	default:
		logDebug("depth search degenerate, evaluating initial normal", "error", err)
		return Result{
			Depth:         Evaluate(hull, triangle, initialNormal),
			Normal:        initialNormal,
			ClosestOnHull: hull.Support(initialNormal),
		}
	}
}

// Evaluate returns depth(normal) = support_D(normal)·normal. Any normal gives
// an upper bound of the minimum depth.
func Evaluate(hull, triangle actor.SupportFinder, normal mgl64.Vec3) float64 {
	return gjk.MinkowskiSupport(hull, triangle, normal).Dot(normal)
}
