package wide

import "github.com/go-gl/mathgl/mgl64"

// Vec3 stores Lanes 3D vectors in Structure-of-Arrays layout.
type Vec3 struct {
	X, Y, Z F64
}

// Broadcast creates a Vec3 with every lane set to v.
func Broadcast(v mgl64.Vec3) Vec3 {
	return Vec3{X: Splat(v[0]), Y: Splat(v[1]), Z: Splat(v[2])}
}

// Slot reads lane i as an mgl64 vector.
func (v *Vec3) Slot(i int) mgl64.Vec3 {
	return mgl64.Vec3{v.X[i], v.Y[i], v.Z[i]}
}

// SetSlot writes p into lane i.
func (v *Vec3) SetSlot(i int, p mgl64.Vec3) {
	v.X[i] = p[0]
	v.Y[i] = p[1]
	v.Z[i] = p[2]
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X.Add(other.X), Y: v.Y.Add(other.Y), Z: v.Z.Add(other.Z)}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X.Sub(other.X), Y: v.Y.Sub(other.Y), Z: v.Z.Sub(other.Z)}
}

// Scale multiplies each lane's vector by the matching lane of s.
func (v Vec3) Scale(s F64) Vec3 {
	return Vec3{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()}
}

func (v Vec3) Dot(other Vec3) F64 {
	return v.X.Mul(other.X).Add(v.Y.Mul(other.Y)).Add(v.Z.Mul(other.Z))
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y.Mul(other.Z).Sub(v.Z.Mul(other.Y)),
		Y: v.Z.Mul(other.X).Sub(v.X.Mul(other.Z)),
		Z: v.X.Mul(other.Y).Sub(v.Y.Mul(other.X)),
	}
}

func (v Vec3) Length() F64 {
	return v.Dot(v).Sqrt()
}

// Select returns onTrue's lanes where mask is set and v's lanes elsewhere.
func (v Vec3) Select(mask Mask, onTrue Vec3) Vec3 {
	return Vec3{X: v.X.Select(mask, onTrue.X), Y: v.Y.Select(mask, onTrue.Y), Z: v.Z.Select(mask, onTrue.Z)}
}
