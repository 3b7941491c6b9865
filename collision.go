// Package narrowphase generates contact manifolds between triangles and
// convex hulls.
//
// Pairs are processed in batches of wide.Lanes. Each lane holds one
// triangle/hull pair picked by a broad phase; the tester finds the minimum
// penetration depth of the pair, selects the hull face facing the triangle,
// clips that face against the triangle and reduces the result to at most
// MaxContacts contacts.
package narrowphase

import (
	"errors"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/depth"
	"github.com/akmonengine/narrowphase/wide"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_DEPTH_TOLERANCE_SCALE     = 1e-5
	DEFAULT_BOUNDING_PLANE_SCALE      = 1e-4
	DEFAULT_DEGENERATE_TRIANGLE_SCALE = 1e-6
)

// ErrOrientationRequired is returned by the call shapes that omit an
// orientation. Triangle/hull pairs are always tested with both orientations.
var ErrOrientationRequired = errors.New("narrowphase: triangle/hull test requires both orientations")

// TriangleHullTester computes contact manifolds for batches of triangle/hull
// pairs. The zero value is ready to use. A tester holds no state between
// calls and may be shared by goroutines.
//
// The scales below are multiplied by the pair's epsilon scale, the smaller of
// the two shapes' characteristic sizes. Zero selects the default.
type TriangleHullTester struct {
	// DepthToleranceScale sets the accuracy of the depth search.
	DepthToleranceScale float64
	// BoundingPlaneScale sets how far a hull face plane may be from the
	// deepest hull point and still be picked as the representative face.
	BoundingPlaneScale float64
	// DegenerateTriangleScale sets the smallest |AB × AC| a triangle may have.
	DegenerateTriangleScale float64
}

func (t *TriangleHullTester) scales() (depthTolerance, boundingPlane, degenerateTriangle float64) {
	depthTolerance, boundingPlane, degenerateTriangle = t.DepthToleranceScale, t.BoundingPlaneScale, t.DegenerateTriangleScale
	if depthTolerance <= 0 {
		depthTolerance = DEFAULT_DEPTH_TOLERANCE_SCALE
	}
	if boundingPlane <= 0 {
		boundingPlane = DEFAULT_BOUNDING_PLANE_SCALE
	}
	if degenerateTriangle <= 0 {
		degenerateTriangle = DEFAULT_DEGENERATE_TRIANGLE_SCALE
	}
	return depthTolerance, boundingPlane, degenerateTriangle
}

// Test computes the manifolds of the first pairCount lanes.
//
// a holds the triangles in their local space and b the hulls. margin is the
// speculative margin of each pair: contacts separated by less than it are
// still reported, with a negative depth. offsetB is the hull position minus
// the triangle position, in world space. Lanes at or beyond pairCount, lanes
// with a nil hull and lanes without contact hold a zero Manifold.
func (t *TriangleHullTester) Test(a *TriangleWide, b *HullWide, margin *wide.F64, offsetB *wide.Vec3, orientationA, orientationB *wide.Quat, pairCount int) ManifoldBatch {
	var manifolds ManifoldBatch

	inactive := wide.InactiveMask(pairCount)
	var missingHull wide.Mask
	for i := range b.Hulls {
		missingHull[i] = b.Hulls[i] == nil
	}
	inactive = inactive.Or(missingHull)
	if inactive.All() {
		return manifolds
	}

	depthToleranceScale, boundingPlaneScale, degenerateScale := t.scales()
	f := newFrame(a, offsetB, orientationA, orientationB)

	var triangles [wide.Lanes]actor.Triangle
	var triangleShapes, hullShapes [wide.Lanes]actor.ShapeInterface
	for i := 0; i < wide.Lanes; i++ {
		if inactive[i] {
			continue
		}
		triangles[i] = actor.Triangle{A: f.triangle[0].Slot(i), B: f.triangle[1].Slot(i), C: f.triangle[2].Slot(i)}
		triangleShapes[i], hullShapes[i] = triangles[i], b.Hulls[i]
	}
	epsilonScale := epsilonScales(triangleShapes).Min(epsilonScales(hullShapes))

	triangleNormalLength := f.triangleNormal.Length()
	degenerate := triangleNormalLength.LessEqual(epsilonScale.Scale(degenerateScale))
	for i := 0; i < wide.Lanes; i++ {
		if degenerate[i] && !inactive[i] {
			Logger().Debug("triangle/hull lane rejected", "lane", i, "reason", "degenerate triangle",
				"area2", triangleNormalLength[i])
		}
	}
	inactive = inactive.Or(degenerate)

	// Depth search, one lane at a time.
	var normals wide.Vec3
	var depths wide.F64
	var bounded wide.Mask
	var closestOnHull [wide.Lanes]mgl64.Vec3
	for i := 0; i < wide.Lanes; i++ {
		if inactive[i] {
			continue
		}
		result := depth.FindMinimumDepth(b.Hulls[i], actor.OffsetSupport{Shape: triangles[i], Offset: f.center.Slot(i)},
			f.initialNormal.Slot(i), depthToleranceScale*epsilonScale[i], -margin[i])
		if !result.Converged {
			Logger().Debug("triangle/hull depth search did not converge", "lane", i, "depth", result.Depth)
		}
		normals.SetSlot(i, result.Normal)
		depths[i] = result.Depth
		bounded[i] = result.Bounded
		closestOnHull[i] = result.ClosestOnHull
	}

	backFace := f.triangleNormal.Dot(normals).GreaterEqual(wide.Splat(0))
	for i := 0; i < wide.Lanes; i++ {
		if backFace[i] && !inactive[i] {
			Logger().Debug("triangle/hull lane rejected", "lane", i, "reason", "back face")
		}
	}
	rejected := backFace.Or(bounded).Or(depths.Less(margin.Neg()))
	inactive = inactive.Or(rejected)
	if inactive.All() {
		return manifolds
	}
	Logger().Debug("triangle/hull batch", "pairs", pairCount, "active", wide.Lanes-inactive.Count())

	for i := 0; i < wide.Lanes; i++ {
		if inactive[i] {
			continue
		}
		hull := b.Hulls[i]
		normal := normals.Slot(i)
		center := f.center.Slot(i)
		triangle := triangles[i]

		face := selectFace(hull, normal, closestOnHull[i], boundingPlaneScale*epsilonScale[i])

		vertices := [3]mgl64.Vec3{triangle.A.Add(center), triangle.B.Add(center), triangle.C.Add(center)}
		var buffer candidateBuffer
		containment := clipFaceAgainstTriangle(hull, &face, normal, vertices, &buffer)
		projectContainedVertices(&face, normal, vertices, containment, &buffer)

		manifolds[i] = reduce(&buffer, f.triangleNormal.Slot(i), normal, center, &face, epsilonScale[i],
			-margin[i], f.rotationB.Slot(i), offsetB.Slot(i))
	}

	return manifolds
}

// epsilonScales returns each lane's shape size. Nil lanes hold 0.
func epsilonScales(shapes [wide.Lanes]actor.ShapeInterface) wide.F64 {
	var result wide.F64
	for i, shape := range shapes {
		if shape != nil {
			result[i] = shape.EstimateEpsilonScale()
		}
	}
	return result
}

// TestWithoutOrientationA is the call shape used for pairs whose triangle is
// axis aligned. It is not supported for triangle/hull pairs.
func (t *TriangleHullTester) TestWithoutOrientationA(a *TriangleWide, b *HullWide, margin *wide.F64, offsetB *wide.Vec3, orientationB *wide.Quat, pairCount int) (ManifoldBatch, error) {
	return ManifoldBatch{}, ErrOrientationRequired
}

// TestWithoutOrientations is the call shape used for pairs where neither
// shape is rotated. It is not supported for triangle/hull pairs.
func (t *TriangleHullTester) TestWithoutOrientations(a *TriangleWide, b *HullWide, margin *wide.F64, offsetB *wide.Vec3, pairCount int) (ManifoldBatch, error) {
	return ManifoldBatch{}, ErrOrientationRequired
}
