package gjk

import "github.com/go-gl/mathgl/mgl64"

// closestOnSimplex finds the point of the simplex closest to the origin and
// reduces the simplex to the smallest feature (vertex, edge, face) containing
// that point.
//
// Behavior by simplex dimension:
//   - 1 point: the point itself
//   - 2 points (segment): Voronoi regions of the two endpoints and the edge
//   - 3 points (triangle): Voronoi regions of vertices, edges and the face
//   - 4 points (tetrahedron): every face the origin is outside of is tested,
//     the closest wins
//
// Returns enclosed=true only when a tetrahedron contains the origin; the
// simplex is then left untouched.
func closestOnSimplex(simplex *Simplex) (mgl64.Vec3, bool) {
	switch simplex.Count {
	case 1:
		return simplex.Points[0], false
	case 2:
		return segment(simplex), false
	case 3:
		return triangle(simplex), false
	case 4:
		return tetrahedron(simplex)
	}
	return mgl64.Vec3{}, false
}

// keep rewrites the simplex with the listed points, in order.
func keep(simplex *Simplex, points ...mgl64.Vec3) {
	copy(simplex.Points[:], points)
	simplex.Count = len(points)
}

// segment handles the line simplex case (2 points: A and B).
func segment(simplex *Simplex) mgl64.Vec3 {
	a := simplex.Points[0]
	b := simplex.Points[1]
	closest, count := closestOnSegment(a, b)
	switch count {
	case 0:
		keep(simplex, a)
	case 1:
		keep(simplex, b)
	}
	return closest
}

// closestOnSegment returns the point of AB closest to the origin and which
// feature holds it: 0 for A, 1 for B, 2 for the open edge.
func closestOnSegment(a, b mgl64.Vec3) (mgl64.Vec3, int) {
	ab := b.Sub(a)
	lengthSqr := ab.LenSqr()

	// Handle degenerate case: identical points
	if lengthSqr < degenerateLengthSqr {
		return b, 1
	}

	t := -a.Dot(ab) / lengthSqr
	if t <= 0 {
		return a, 0
	}
	if t >= 1 {
		return b, 1
	}
	return a.Add(ab.Mul(t)), 2
}

// triangle handles the triangle simplex case (3 points: A, B, C).
//
// Degenerate case: If points are collinear (flat triangle), the closest of the
// three edges is kept instead.
func triangle(simplex *Simplex) mgl64.Vec3 {
	a := simplex.Points[0]
	b := simplex.Points[1]
	c := simplex.Points[2]

	if b.Sub(a).Cross(c.Sub(a)).LenSqr() < degenerateLengthSqr {
		edges := [3][2]mgl64.Vec3{{a, b}, {b, c}, {a, c}}
		var best mgl64.Vec3
		bestEdge := -1
		for i, edge := range edges {
			closest, _ := closestOnSegment(edge[0], edge[1])
			if bestEdge < 0 || closest.LenSqr() < best.LenSqr() {
				best, bestEdge = closest, i
			}
		}
		keep(simplex, edges[bestEdge][0], edges[bestEdge][1])
		return segment(simplex)
	}

	closest, feature := closestOnTriangle(a, b, c)
	switch feature {
	case featureA:
		keep(simplex, a)
	case featureB:
		keep(simplex, b)
	case featureC:
		keep(simplex, c)
	case featureAB:
		keep(simplex, a, b)
	case featureAC:
		keep(simplex, a, c)
	case featureBC:
		keep(simplex, b, c)
	}
	return closest
}

const (
	featureA = iota
	featureB
	featureC
	featureAB
	featureAC
	featureBC
	featureABC
)

// closestOnTriangle returns the point of triangle ABC closest to the origin
// and the feature holding it, using barycentric Voronoi region tests.
func closestOnTriangle(a, b, c mgl64.Vec3) (mgl64.Vec3, int) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	// Region A
	ap := a.Mul(-1)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, featureA
	}

	// Region B
	bp := b.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, featureB
	}

	// Region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), featureAB
	}

	// Region C
	cp := c.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, featureC
	}

	// Region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w)), featureAC
	}

	// Region BC
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w)), featureBC
	}

	// Inside the face
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), featureABC
}

// tetrahedron handles the tetrahedron simplex case (4 points: A, B, C, D).
//
// This is the only case that can report the origin as enclosed. Each face is
// tested only if the origin lies on its outer side (opposite the 4th vertex);
// faces of a flat tetrahedron are always tested.
func tetrahedron(simplex *Simplex) (mgl64.Vec3, bool) {
	p := simplex.Points
	faces := [4][4]mgl64.Vec3{
		{p[0], p[1], p[2], p[3]},
		{p[0], p[2], p[3], p[1]},
		{p[0], p[3], p[1], p[2]},
		{p[1], p[3], p[2], p[0]},
	}

	var best mgl64.Vec3
	bestFace := -1
	for i, face := range faces {
		if !originOutsideFace(face[0], face[1], face[2], face[3]) {
			continue
		}
		keep(simplex, face[0], face[1], face[2])
		closest := triangle(simplex)
		if bestFace < 0 || closest.LenSqr() < best.LenSqr() {
			best, bestFace = closest, i
		}
		keep(simplex, p[0], p[1], p[2], p[3])
	}

	if bestFace < 0 {
		// The origin is inside the tetrahedron
		return mgl64.Vec3{}, true
	}

	face := faces[bestFace]
	keep(simplex, face[0], face[1], face[2])
	return triangle(simplex), false
}

// originOutsideFace reports whether the origin and d lie on opposite sides of
// the plane through a, b, c. A degenerate configuration counts as outside.
func originOutsideFace(a, b, c, d mgl64.Vec3) bool {
	normal := b.Sub(a).Cross(c.Sub(a))
	signOrigin := normal.Dot(a.Mul(-1))
	signD := normal.Dot(d.Sub(a))
	if signD*signD < degenerateLengthSqr {
		return true
	}
	return signOrigin*signD < 0
}
