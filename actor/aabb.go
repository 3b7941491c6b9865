package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// boundsOf returns the AABB enclosing the given points after transformation.
func boundsOf(points []mgl64.Vec3, transform Transform) AABB {
	if len(points) == 0 {
		return AABB{Min: transform.Position, Max: transform.Position}
	}

	worldPoint := transform.Apply(points[0])
	min := worldPoint
	max := worldPoint

	for i := 1; i < len(points); i++ {
		worldPoint = transform.Apply(points[i])

		min[0] = math.Min(min[0], worldPoint[0])
		min[1] = math.Min(min[1], worldPoint[1])
		min[2] = math.Min(min[2], worldPoint[2])

		max[0] = math.Max(max[0], worldPoint[0])
		max[1] = math.Max(max[1], worldPoint[1])
		max[2] = math.Max(max[2], worldPoint[2])
	}

	return AABB{Min: min, Max: max}
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}
