package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a triangle of the expanding polytope.
type Face struct {
	Points   [3]mgl64.Vec3 // Triangle vertices
	Normal   mgl64.Vec3    // Unit normal pointing out of the polytope
	Distance float64       // Signed distance from the origin to the face plane
}

// degenerate reports whether the face has no usable normal.
func (f *Face) degenerate() bool {
	return math.IsInf(f.Distance, 1)
}

// createFaceOutward builds a face whose normal points away from interior, a
// point strictly inside the polytope.
//
// Faces are never flipped toward the origin: when the origin lies slightly
// outside a face because of rounding, the distance stays negative so that the
// face is still picked as the closest one. A zero-area face gets an infinite
// distance and is never selected.
func createFaceOutward(p0, p1, p2, interior mgl64.Vec3) Face {
	face := Face{Points: [3]mgl64.Vec3{p0, p1, p2}}

	normal := p1.Sub(p0).Cross(p2.Sub(p0))
	normalLength := normal.Len()
	if normalLength < degenerateNormalLength {
		face.Distance = math.Inf(1)
		return face
	}
	normal = normal.Mul(1.0 / normalLength)

	// If normal points toward the interior, it's pointing inward
	if normal.Dot(interior.Sub(p0)) > 0 {
		normal = normal.Mul(-1)
	}

	face.Normal = normal
	face.Distance = p0.Dot(normal)
	return face
}

// Edge is an undirected polytope edge.
type Edge struct {
	A, B mgl64.Vec3
}

func normalizeEdge(edge Edge) Edge {
	// Ensure consistent edge representation (A < B lexicographically)
	// This allows us to detect duplicate edges regardless of order
	if compareVec3(edge.A, edge.B) > 0 {
		return Edge{edge.B, edge.A}
	}
	return edge
}

func compareVec3(a, b mgl64.Vec3) int {
	// Compare vectors lexicographically (x, then y, then z)
	for i := 0; i < 3; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
