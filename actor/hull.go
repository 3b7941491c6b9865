package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidHull is wrapped by every error returned while building a ConvexHull.
var ErrInvalidHull = errors.New("invalid convex hull")

// Plane is the set of points p with Normal·p = Offset. Normal is unit length.
type Plane struct {
	Normal mgl64.Vec3
	Offset float64
}

// Distance returns the signed distance of point from the plane, positive on
// the side Normal points to.
func (p Plane) Distance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) - p.Offset
}

// ConvexHull is a convex polyhedron given by its vertices and faces.
// Faces list vertex indices wound counterclockwise when seen from outside the
// hull, so that the face normal derived from the winding points outward.
//
// A ConvexHull is immutable once built and may be shared by any number of
// goroutines.
type ConvexHull struct {
	points       []mgl64.Vec3
	faces        [][]int
	planes       []Plane
	epsilonScale float64
}

// NewConvexHull validates the topology and computes face planes.
//
// Every face must have at least three distinct, in-range vertex indices, a
// non-degenerate area, and every hull point must lie on or behind it.
func NewConvexHull(points []mgl64.Vec3, faces [][]int) (*ConvexHull, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 points, got %d", ErrInvalidHull, len(points))
	}
	if len(faces) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 faces, got %d", ErrInvalidHull, len(faces))
	}

	hull := &ConvexHull{
		points: make([]mgl64.Vec3, len(points)),
		faces:  make([][]int, len(faces)),
		planes: make([]Plane, len(faces)),
	}
	copy(hull.points, points)

	for _, p := range points {
		hull.epsilonScale = math.Max(hull.epsilonScale, math.Max(math.Abs(p[0]), math.Max(math.Abs(p[1]), math.Abs(p[2]))))
	}
	if hull.epsilonScale == 0 {
		return nil, fmt.Errorf("%w: all points are at the origin", ErrInvalidHull)
	}
	tolerance := hull.epsilonScale * 1e-6

	for f, face := range faces {
		if len(face) < 3 {
			return nil, fmt.Errorf("%w: face %d has %d vertices", ErrInvalidHull, f, len(face))
		}
		for _, index := range face {
			if index < 0 || index >= len(points) {
				return nil, fmt.Errorf("%w: face %d references vertex %d out of range", ErrInvalidHull, f, index)
			}
		}
		hull.faces[f] = append([]int(nil), face...)

		// Newell's method, robust for any planar polygon.
		var normal mgl64.Vec3
		var center mgl64.Vec3
		previous := points[face[len(face)-1]]
		for _, index := range face {
			current := points[index]
			normal[0] += (previous[1] - current[1]) * (previous[2] + current[2])
			normal[1] += (previous[2] - current[2]) * (previous[0] + current[0])
			normal[2] += (previous[0] - current[0]) * (previous[1] + current[1])
			center = center.Add(current)
			previous = current
		}
		length := normal.Len()
		if length <= tolerance*tolerance {
			return nil, fmt.Errorf("%w: face %d is degenerate", ErrInvalidHull, f)
		}
		normal = normal.Mul(1.0 / length)
		center = center.Mul(1.0 / float64(len(face)))
		hull.planes[f] = Plane{Normal: normal, Offset: normal.Dot(center)}
	}

	for f, plane := range hull.planes {
		for i, p := range hull.points {
			if plane.Distance(p) > tolerance {
				return nil, fmt.Errorf("%w: point %d lies outside face %d (wrong winding or not convex)", ErrInvalidHull, i, f)
			}
		}
	}

	return hull, nil
}

// NewBoxHull creates a box centered on the origin.
func NewBoxHull(halfExtents mgl64.Vec3) (*ConvexHull, error) {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	// Corner i has +x when bit 0 is set, +y for bit 1 and +z for bit 2.
	points := make([]mgl64.Vec3, 8)
	for i := range points {
		p := mgl64.Vec3{-hx, -hy, -hz}
		if i&1 != 0 {
			p[0] = hx
		}
		if i&2 != 0 {
			p[1] = hy
		}
		if i&4 != 0 {
			p[2] = hz
		}
		points[i] = p
	}

	// Counterclockwise seen from outside.
	faces := [][]int{
		{1, 3, 7, 5}, // +X
		{0, 4, 6, 2}, // -X
		{2, 6, 7, 3}, // +Y
		{0, 1, 5, 4}, // -Y
		{4, 5, 7, 6}, // +Z
		{0, 2, 3, 1}, // -Z
	}

	return NewConvexHull(points, faces)
}

// NewPrismHull creates a right prism along Y whose cross-section is a regular
// polygon with the given number of sides inscribed in a circle of radius.
func NewPrismHull(sides int, radius, halfHeight float64) (*ConvexHull, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: prism needs at least 3 sides, got %d", ErrInvalidHull, sides)
	}

	points := make([]mgl64.Vec3, 2*sides)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		x, z := radius*math.Cos(angle), radius*math.Sin(angle)
		points[i] = mgl64.Vec3{x, -halfHeight, z}
		points[sides+i] = mgl64.Vec3{x, halfHeight, z}
	}

	faces := make([][]int, 0, sides+2)
	bottom := make([]int, sides)
	top := make([]int, sides)
	for i := 0; i < sides; i++ {
		bottom[i] = i
		top[i] = 2*sides - 1 - i
	}
	faces = append(faces, bottom, top)
	for i := 0; i < sides; i++ {
		next := (i + 1) % sides
		faces = append(faces, []int{i, sides + i, sides + next, next})
	}

	return NewConvexHull(points, faces)
}

// FaceCount returns the number of faces.
func (h *ConvexHull) FaceCount() int {
	return len(h.faces)
}

// FaceVertexIndices returns the vertex indices of a face in counterclockwise
// order. The returned slice is shared with the hull and must not be modified.
func (h *ConvexHull) FaceVertexIndices(face int) []int {
	return h.faces[face]
}

// FacePlane returns the outward plane of a face.
func (h *ConvexHull) FacePlane(face int) Plane {
	return h.planes[face]
}

// Vertex returns a hull point in hull-local space.
func (h *ConvexHull) Vertex(index int) mgl64.Vec3 {
	return h.points[index]
}

// Support returns the hull point furthest along direction. Ties resolve to
// the lowest index.
func (h *ConvexHull) Support(direction mgl64.Vec3) mgl64.Vec3 {
	best := h.points[0]
	bestDot := best.Dot(direction)
	for i := 1; i < len(h.points); i++ {
		if d := h.points[i].Dot(direction); d > bestDot {
			best, bestDot = h.points[i], d
		}
	}
	return best
}

func (h *ConvexHull) ComputeAABB(transform Transform) AABB {
	return boundsOf(h.points, transform)
}

// EstimateEpsilonScale returns the largest absolute coordinate of any hull
// point.
func (h *ConvexHull) EstimateEpsilonScale() float64 {
	return h.epsilonScale
}
