package epa

import (
	"fmt"
	"sync"

	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// PolytopeBuilder manages polytope expansion with reusable buffers.
type PolytopeBuilder struct {
	// Faces of the current polytope
	faces []Face

	// Edge tracking for boundary detection
	edges []EdgeEntry

	// Visible face tracking
	visibleIndices []int

	// Point strictly inside the polytope, used to orient new faces. The
	// polytope only grows, so a point inside the initial tetrahedron stays
	// inside.
	interior mgl64.Vec3
}

// EdgeEntry represents an edge with occurrence counting for boundary detection.
// An edge is a boundary edge if it appears exactly once (count == 1).
type EdgeEntry struct {
	Edge
	Count int // Occurrence count (1 = boundary edge, 2+ = internal edge)
}

// polytopeBuilderPool recycles builders between EPA runs.
var polytopeBuilderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:          make([]Face, 0, polytopeInitialCapacity),
			edges:          make([]EdgeEntry, 0, polytopeInitialCapacity),
			visibleIndices: make([]int, 0, polytopeInitialCapacity),
		}
	},
}

// Reset prepares the builder for reuse by clearing all slices.
func (b *PolytopeBuilder) Reset() {
	b.faces = b.faces[:0]
	b.edges = b.edges[:0]
	b.visibleIndices = b.visibleIndices[:0]
	b.interior = mgl64.Vec3{}
}

// BuildInitialFaces creates the initial polytope from a tetrahedron simplex.
// All four faces are kept, including those touching the origin.
func (b *PolytopeBuilder) BuildInitialFaces(simplex *gjk.Simplex) error {
	if simplex.Count != 4 {
		return fmt.Errorf("invalid simplex count: %d (expected 4)", simplex.Count)
	}

	p0, p1, p2, p3 := simplex.Points[0], simplex.Points[1], simplex.Points[2], simplex.Points[3]
	b.interior = p0.Add(p1).Add(p2).Add(p3).Mul(0.25)

	b.faces = append(b.faces,
		createFaceOutward(p0, p1, p2, b.interior),
		createFaceOutward(p0, p2, p3, b.interior),
		createFaceOutward(p0, p3, p1, b.interior),
		createFaceOutward(p1, p3, p2, b.interior),
	)
	return nil
}

// FindClosestFaceIndex returns the index of the non-degenerate face closest to
// the origin. Returns -1 if there is none.
func (b *PolytopeBuilder) FindClosestFaceIndex() int {
	closestIndex := -1
	for i := range b.faces {
		if b.faces[i].degenerate() {
			continue
		}
		if closestIndex < 0 || b.faces[i].Distance < b.faces[closestIndex].Distance {
			closestIndex = i
		}
	}
	return closestIndex
}

// findBoundaryEdges identifies boundary edges from visible faces.
// A boundary edge appears exactly once (count == 1), while internal edges
// appear twice and are filtered out.
func (b *PolytopeBuilder) findBoundaryEdges() {
	b.edges = b.edges[:0]

	for _, faceIdx := range b.visibleIndices {
		face := &b.faces[faceIdx]

		// Three edges per triangle
		edges := [3]Edge{
			{face.Points[0], face.Points[1]},
			{face.Points[1], face.Points[2]},
			{face.Points[2], face.Points[0]},
		}

		for _, edge := range edges {
			edge = normalizeEdge(edge)
			if edgeIdx := b.findEdgeIndex(edge); edgeIdx >= 0 {
				b.edges[edgeIdx].Count++
			} else {
				b.edges = append(b.edges, EdgeEntry{Edge: edge, Count: 1})
			}
		}
	}
}

// findEdgeIndex performs linear search for an edge in the edges buffer.
// Linear search is efficient for small edge counts (typically < 30).
func (b *PolytopeBuilder) findEdgeIndex(edge Edge) int {
	for i := range b.edges {
		if b.edges[i].Edge == edge {
			return i
		}
	}
	return -1
}

// findVisibleFaces populates visibleIndices with faces the support point lies
// in front of by more than tolerance.
func (b *PolytopeBuilder) findVisibleFaces(support mgl64.Vec3, tolerance float64) {
	b.visibleIndices = b.visibleIndices[:0]

	for i := range b.faces {
		face := &b.faces[i]
		if face.degenerate() {
			continue
		}
		if support.Sub(face.Points[0]).Dot(face.Normal) > tolerance {
			b.visibleIndices = append(b.visibleIndices, i)
		}
	}
}

// removeVisibleFaces removes faces marked in visibleIndices, preserving the
// order of the remaining faces so that expansion is deterministic.
func (b *PolytopeBuilder) removeVisibleFaces() {
	kept := b.faces[:0]
	next := 0
	for i := range b.faces {
		if next < len(b.visibleIndices) && b.visibleIndices[next] == i {
			next++
			continue
		}
		kept = append(kept, b.faces[i])
	}
	b.faces = kept
}

// addBoundaryFaces creates new faces connecting boundary edges to the support point.
func (b *PolytopeBuilder) addBoundaryFaces(support mgl64.Vec3) {
	for i := range b.edges {
		edge := &b.edges[i]
		if edge.Count != 1 {
			continue
		}
		b.faces = append(b.faces, createFaceOutward(edge.A, edge.B, support, b.interior))
	}
}

// AddPointAndRebuildFaces expands the polytope by adding a support point:
//  1. Finds visible faces from the support point
//  2. Identifies boundary edges of the visible region
//  3. Removes visible faces
//  4. Creates new faces connecting boundary edges to the support point
//
// Returns false when no face is visible, meaning the point does not expand
// the polytope.
func (b *PolytopeBuilder) AddPointAndRebuildFaces(support mgl64.Vec3, tolerance float64) bool {
	b.findVisibleFaces(support, tolerance)
	if len(b.visibleIndices) == 0 {
		return false
	}

	b.findBoundaryEdges()
	b.removeVisibleFaces()
	b.addBoundaryFaces(support)
	return true
}
