package wide

import "github.com/go-gl/mathgl/mgl64"

// Quat stores Lanes quaternions in Structure-of-Arrays layout.
type Quat struct {
	X, Y, Z, W F64
}

// QuatIdent returns a Quat with every lane set to the identity rotation.
func QuatIdent() Quat {
	return Quat{W: Splat(1)}
}

// Slot reads lane i as an mgl64 quaternion.
func (q *Quat) Slot(i int) mgl64.Quat {
	return mgl64.Quat{W: q.W[i], V: mgl64.Vec3{q.X[i], q.Y[i], q.Z[i]}}
}

// SetSlot writes r into lane i.
func (q *Quat) SetSlot(i int, r mgl64.Quat) {
	q.X[i] = r.V[0]
	q.Y[i] = r.V[1]
	q.Z[i] = r.V[2]
	q.W[i] = r.W
}

// Mat3 stores Lanes 3x3 matrices as three row vectors.
// Transform computes (X·v, Y·v, Z·v).
type Mat3 struct {
	X, Y, Z Vec3
}

// Mat3FromQuat builds the rotation matrix of each lane's unit quaternion.
func Mat3FromQuat(q Quat) Mat3 {
	var m Mat3
	for i := 0; i < Lanes; i++ {
		x, y, z, w := q.X[i], q.Y[i], q.Z[i], q.W[i]
		xx, yy, zz := x*x, y*y, z*z
		xy, xz, yz := x*y, x*z, y*z
		wx, wy, wz := w*x, w*y, w*z

		m.X.X[i] = 1 - 2*(yy+zz)
		m.X.Y[i] = 2 * (xy - wz)
		m.X.Z[i] = 2 * (xz + wy)

		m.Y.X[i] = 2 * (xy + wz)
		m.Y.Y[i] = 1 - 2*(xx+zz)
		m.Y.Z[i] = 2 * (yz - wx)

		m.Z.X[i] = 2 * (xz - wy)
		m.Z.Y[i] = 2 * (yz + wx)
		m.Z.Z[i] = 1 - 2*(xx+yy)
	}
	return m
}

// Slot reads lane i as an mgl64 matrix.
func (m *Mat3) Slot(i int) mgl64.Mat3 {
	return mgl64.Mat3FromRows(m.X.Slot(i), m.Y.Slot(i), m.Z.Slot(i))
}

// Transform multiplies each lane's vector by the lane's matrix.
func (m Mat3) Transform(v Vec3) Vec3 {
	return Vec3{X: m.X.Dot(v), Y: m.Y.Dot(v), Z: m.Z.Dot(v)}
}

// TransformTransposed multiplies each lane's vector by the transpose of the
// lane's matrix. For rotations this is the inverse transform.
func (m Mat3) TransformTransposed(v Vec3) Vec3 {
	return m.X.Scale(v.X).Add(m.Y.Scale(v.Y)).Add(m.Z.Scale(v.Z))
}

// TransposeMul returns transpose(m) * other for every lane. With m and other
// two world orientations, the result maps other's local space into m's.
func (m Mat3) TransposeMul(other Mat3) Mat3 {
	return Mat3{
		X: other.X.Scale(m.X.X).Add(other.Y.Scale(m.Y.X)).Add(other.Z.Scale(m.Z.X)),
		Y: other.X.Scale(m.X.Y).Add(other.Y.Scale(m.Y.Y)).Add(other.Z.Scale(m.Z.Y)),
		Z: other.X.Scale(m.X.Z).Add(other.Y.Scale(m.Y.Z)).Add(other.Z.Scale(m.Z.Z)),
	}
}
