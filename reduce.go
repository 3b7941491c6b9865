package narrowphase

import (
	"github.com/go-gl/mathgl/mgl64"
)

// minimumAreaScale scales epsilonScale² into the smallest signed area a
// third or fourth contact must span to be kept.
const minimumAreaScale = 1e-6

// reduce turns the clipped candidates into a manifold of at most MaxContacts
// contacts.
//
// Depths are measured from the face plane to the triangle plane along normal.
// Candidates shallower than depthThreshold are dropped. When more than
// MaxContacts remain, the deepest one is kept, then the one furthest from it,
// then the two spanning the largest areas on each side of that segment.
//
// Offsets are returned in world orientation: rotationB maps hull-local
// vectors to world space and offsetB is the hull position relative to the
// triangle.
func reduce(buffer *candidateBuffer, triangleNormal, normal, triangleCenter mgl64.Vec3, face *representativeFace, epsilonScale, depthThreshold float64, rotationB mgl64.Mat3, offsetB mgl64.Vec3) Manifold {
	var kept [maxCandidates]candidate
	var depths [maxCandidates]float64
	var positions [maxCandidates]mgl64.Vec3
	count := 0

	inverseAlignment := 1 / normal.Dot(triangleNormal)
	for i := 0; i < buffer.count; i++ {
		c := buffer.items[i]
		position := face.fromFace(c.X, c.Y)
		depth := position.Sub(triangleCenter).Dot(triangleNormal) * inverseAlignment
		if depth < depthThreshold {
			continue
		}
		kept[count], depths[count], positions[count] = c, depth, position
		count++
	}

	var manifold Manifold
	if count == 0 {
		return manifold
	}

	selected := make([]int, 0, MaxContacts)
	if count <= MaxContacts {
		for i := 0; i < count; i++ {
			selected = append(selected, i)
		}
	} else {
		selected = selectSpanningContacts(kept[:count], depths[:count], epsilonScale)
	}

	worldNormal := rotationB.Mul3x1(normal)
	for _, i := range selected {
		offsetOnHull := rotationB.Mul3x1(positions[i])
		manifold.Contacts[manifold.Count] = Contact{
			OffsetA:   offsetOnHull.Add(offsetB).Sub(worldNormal.Mul(depths[i])),
			OffsetB:   offsetOnHull,
			Depth:     depths[i],
			FeatureID: kept[i].FeatureID,
		}
		manifold.Count++
	}
	manifold.Normal = worldNormal

	return manifold
}

// selectSpanningContacts picks up to MaxContacts indices out of candidates.
// Ties resolve to the lowest index.
func selectSpanningContacts(candidates []candidate, depths []float64, epsilonScale float64) []int {
	deepest := 0
	for i := 1; i < len(candidates); i++ {
		if depths[i] > depths[deepest] {
			deepest = i
		}
	}

	start := candidates[deepest]
	furthest, furthestDistance := -1, -1.0
	for i, c := range candidates {
		if i == deepest {
			continue
		}
		dx, dy := c.X-start.X, c.Y-start.Y
		if d := dx*dx + dy*dy; d > furthestDistance {
			furthest, furthestDistance = i, d
		}
	}

	selected := []int{deepest, furthest}

	end := candidates[furthest]
	segmentX, segmentY := end.X-start.X, end.Y-start.Y
	minimum, maximum := -1, -1
	minimumArea, maximumArea := 0.0, 0.0
	for i, c := range candidates {
		if i == deepest || i == furthest {
			continue
		}
		area := segmentX*(c.Y-start.Y) - segmentY*(c.X-start.X)
		if area < minimumArea {
			minimum, minimumArea = i, area
		}
		if area > maximumArea {
			maximum, maximumArea = i, area
		}
	}

	areaEpsilon := epsilonScale * epsilonScale * minimumAreaScale
	if minimum >= 0 && -minimumArea > areaEpsilon {
		selected = append(selected, minimum)
	}
	if maximum >= 0 && maximumArea > areaEpsilon {
		selected = append(selected, maximum)
	}

	return selected
}
