package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a one-sided triangle collision shape, typically a piece of a
// static mesh. The front face, the only one that generates contacts, is the
// side from which A, B and C appear counterclockwise; its normal is AB × AC.
// Meshes authored with clockwise front faces must swap B and C.
type Triangle struct {
	A, B, C mgl64.Vec3
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Normal returns the unnormalized front face normal AB × AC. Its length is
// twice the triangle's area.
func (t Triangle) Normal() mgl64.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Vertex returns A, B or C for index 0, 1 or 2.
func (t Triangle) Vertex(i int) mgl64.Vec3 {
	switch i {
	case 0:
		return t.A
	case 1:
		return t.B
	default:
		return t.C
	}
}

// Support returns the vertex furthest along direction. Ties resolve to the
// earliest vertex so results are repeatable.
func (t Triangle) Support(direction mgl64.Vec3) mgl64.Vec3 {
	best := t.A
	bestDot := t.A.Dot(direction)
	if d := t.B.Dot(direction); d > bestDot {
		best, bestDot = t.B, d
	}
	if d := t.C.Dot(direction); d > bestDot {
		best = t.C
	}
	return best
}

func (t Triangle) ComputeAABB(transform Transform) AABB {
	return boundsOf([]mgl64.Vec3{t.A, t.B, t.C}, transform)
}

// EstimateEpsilonScale returns the largest absolute coordinate of the
// vertices measured from the centroid. A triangle collapsed to a point
// returns 0.
func (t Triangle) EstimateEpsilonScale() float64 {
	centroid := t.Centroid()
	scale := 0.0
	for i := 0; i < 3; i++ {
		offset := t.Vertex(i).Sub(centroid)
		scale = math.Max(scale, math.Max(math.Abs(offset[0]), math.Max(math.Abs(offset[1]), math.Abs(offset[2]))))
	}
	return scale
}
