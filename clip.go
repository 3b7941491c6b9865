package narrowphase

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// maxCandidates bounds the candidates gathered for one pair before reduction.
const maxCandidates = 6

// candidate is a potential contact in the representative face's tangent
// basis.
type candidate struct {
	X, Y      float64
	FeatureID int
}

type candidateBuffer struct {
	items [maxCandidates]candidate
	count int
}

func (b *candidateBuffer) full() bool {
	return b.count >= maxCandidates
}

func (b *candidateBuffer) add(x, y float64, featureID int) {
	if b.full() {
		return
	}
	b.items[b.count] = candidate{X: x, Y: y, FeatureID: featureID}
	b.count++
}

// hullEdgeFeatureID identifies a contact produced on the hull face edge
// (start, end) at the given endpoint.
func hullEdgeFeatureID(start, end, endpoint int) int {
	return ((start ^ end) << 8) + endpoint
}

// clipFaceAgainstTriangle clips every edge of the representative face against
// the triangle's edge planes, viewed along normal. Triangle vertices are given
// in hull-local space. It returns, per triangle vertex, the largest outward
// distance to a face edge: a vertex is inside the face when it is 0.
func clipFaceAgainstTriangle(hull *actor.ConvexHull, face *representativeFace, normal mgl64.Vec3, triangle [3]mgl64.Vec3, buffer *candidateBuffer) [3]float64 {
	var edgePlanes [3]mgl64.Vec3
	for k := 0; k < 3; k++ {
		edgePlanes[k] = normal.Cross(triangle[(k+1)%3].Sub(triangle[k]))
	}

	var containment [3]float64
	previousIndex := face.vertices[len(face.vertices)-1]
	previous := hull.Vertex(previousIndex)

	for _, currentIndex := range face.vertices {
		current := hull.Vertex(currentIndex)
		edge := current.Sub(previous)

		edgeOutward := edge.Cross(normal)
		for k := 0; k < 3; k++ {
			containment[k] = math.Max(containment[k], edgeOutward.Dot(triangle[k].Sub(previous)))
		}

		latestEntry, earliestExit := 0.0, 1.0
		for k := 0; k < 3; k++ {
			numerator := triangle[k].Sub(previous).Dot(edgePlanes[k])
			denominator := edge.Dot(edgePlanes[k])
			switch {
			case denominator < 0:
				latestEntry = math.Max(latestEntry, numerator/denominator)
			case denominator > 0:
				earliestExit = math.Min(earliestExit, numerator/denominator)
			case numerator < 0:
				// Parallel and fully outside this plane.
				earliestExit = -1
			}
		}

		if earliestExit >= latestEntry && !buffer.full() {
			x, y := face.toFace(previous.Add(edge.Mul(earliestExit)))
			buffer.add(x, y, hullEdgeFeatureID(previousIndex, currentIndex, currentIndex))
		}
		if latestEntry < earliestExit && latestEntry > 0 && !buffer.full() {
			x, y := face.toFace(previous.Add(edge.Mul(latestEntry)))
			buffer.add(x, y, hullEdgeFeatureID(previousIndex, currentIndex, previousIndex))
		}

		previousIndex, previous = currentIndex, current
	}

	return containment
}

// projectContainedVertices adds the triangle vertices lying inside the face
// outline, projected along normal onto the face plane.
func projectContainedVertices(face *representativeFace, normal mgl64.Vec3, triangle [3]mgl64.Vec3, containment [3]float64, buffer *candidateBuffer) {
	alignment := face.normal.Dot(normal)
	for k := 0; k < 3 && !buffer.full(); k++ {
		if containment[k] > 0 {
			continue
		}
		offset := triangle[k].Sub(face.origin)
		t := offset.Dot(face.normal) / alignment
		projected := offset.Sub(normal.Mul(t))
		buffer.add(projected.Dot(face.tangentX), projected.Dot(face.tangentY), k)
	}
}
