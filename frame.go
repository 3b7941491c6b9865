package narrowphase

import (
	"github.com/akmonengine/narrowphase/wide"
	"github.com/go-gl/mathgl/mgl64"
)

// minInitialNormalLength is the distance between the shape origins below
// which the initial depth search normal falls back to +Y.
const minInitialNormalLength = 1e-8

// frame is the pair geometry expressed in the hull's local space, for every
// lane.
type frame struct {
	rotationB wide.Mat3
	// Triangle vertices rotated into hull space and recentred on their
	// centroid.
	triangle [3]wide.Vec3
	// center is the triangle centroid in hull-local space.
	center wide.Vec3
	// triangleNormal is AB × AC, unnormalized.
	triangleNormal wide.Vec3
	// initialNormal is the unit direction from the hull origin toward the
	// triangle's origin, used to seed the depth search.
	initialNormal wide.Vec3
}

// newFrame moves every lane's triangle into its hull's local space.
func newFrame(a *TriangleWide, offsetB *wide.Vec3, orientationA, orientationB *wide.Quat) frame {
	rotationA := wide.Mat3FromQuat(*orientationA)
	rotationB := wide.Mat3FromQuat(*orientationB)
	relative := rotationB.TransposeMul(rotationA)
	localOffsetB := rotationB.TransformTransposed(*offsetB)

	vA := relative.Transform(a.A)
	vB := relative.Transform(a.B)
	vC := relative.Transform(a.C)
	centroid := vA.Add(vB).Add(vC).Scale(wide.Splat(1.0 / 3.0))

	f := frame{
		rotationB: rotationB,
		triangle:  [3]wide.Vec3{vA.Sub(centroid), vB.Sub(centroid), vC.Sub(centroid)},
		center:    centroid.Sub(localOffsetB),
	}
	f.triangleNormal = f.triangle[1].Sub(f.triangle[0]).Cross(f.triangle[2].Sub(f.triangle[0]))

	localOffsetA := localOffsetB.Neg()
	length := localOffsetA.Length()
	tooShort := length.Less(wide.Splat(minInitialNormalLength))
	normalized := localOffsetA.Scale(wide.Splat(1).Div(length))
	f.initialNormal = normalized.Select(tooShort, wide.Broadcast(mgl64.Vec3{0, 1, 0}))

	return f
}
