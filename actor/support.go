package actor

import "github.com/go-gl/mathgl/mgl64"

// SupportFinder is the only capability the depth search needs from a shape:
// the furthest point of the shape along a direction.
//
// The direction does not need to be normalized. Implementations must be safe
// for concurrent use when the shape is not being modified.
type SupportFinder interface {
	Support(direction mgl64.Vec3) mgl64.Vec3
}

// ShapeInterface is implemented by the collision shapes of this package
type ShapeInterface interface {
	SupportFinder
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform) AABB
	// EstimateEpsilonScale returns a characteristic size of the shape used to
	// scale numerical tolerances.
	EstimateEpsilonScale() float64
}

var (
	_ ShapeInterface = Triangle{}
	_ ShapeInterface = (*ConvexHull)(nil)
)

// OffsetSupport translates another support finder by a fixed offset.
// The collision tester uses it to place a triangle that was recentred on its
// centroid back at its hull-local position.
type OffsetSupport struct {
	Shape  SupportFinder
	Offset mgl64.Vec3
}

func (o OffsetSupport) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return o.Shape.Support(direction).Add(o.Offset)
}
