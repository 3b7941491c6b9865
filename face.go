package narrowphase

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// representativeFace is the hull face the manifold is built on.
type representativeFace struct {
	index    int
	normal   mgl64.Vec3 // outward face normal
	vertices []int      // counterclockwise vertex indices
	origin   mgl64.Vec3 // last face vertex
	tangentX mgl64.Vec3
	tangentY mgl64.Vec3
}

// selectFace picks the hull face most aligned with normal among the faces
// whose plane passes within boundingEpsilon of closestOnHull. When no face
// qualifies, the most aligned face overall is used.
func selectFace(hull *actor.ConvexHull, normal, closestOnHull mgl64.Vec3, boundingEpsilon float64) representativeFace {
	best, bestAny := -1, 0
	bestDot, bestAnyDot := math.Inf(-1), math.Inf(-1)

	for i := 0; i < hull.FaceCount(); i++ {
		plane := hull.FacePlane(i)
		alignment := plane.Normal.Dot(normal)
		if alignment > bestAnyDot {
			bestAny, bestAnyDot = i, alignment
		}
		if math.Abs(plane.Distance(closestOnHull)) <= boundingEpsilon && alignment > bestDot {
			best, bestDot = i, alignment
		}
	}
	if best < 0 {
		best = bestAny
	}

	faceNormal := hull.FacePlane(best).Normal
	vertices := hull.FaceVertexIndices(best)
	tangentX, tangentY := getTangentBasis(faceNormal)

	return representativeFace{
		index:    best,
		normal:   faceNormal,
		vertices: vertices,
		origin:   hull.Vertex(vertices[len(vertices)-1]),
		tangentX: tangentX,
		tangentY: tangentY,
	}
}

// toFace returns the tangent coordinates of a point of the face plane.
func (f *representativeFace) toFace(point mgl64.Vec3) (float64, float64) {
	offset := point.Sub(f.origin)
	return offset.Dot(f.tangentX), offset.Dot(f.tangentY)
}

// fromFace returns the hull-local point at tangent coordinates (x, y).
func (f *representativeFace) fromFace(x, y float64) mgl64.Vec3 {
	return f.origin.Add(f.tangentX.Mul(x)).Add(f.tangentY.Mul(y))
}

func getTangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	tangent1 := mgl64.Vec3{1, 0, 0}
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	}

	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()

	return tangent1, tangent2
}
