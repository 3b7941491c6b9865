package narrowphase

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/wide"
	"github.com/go-gl/mathgl/mgl64"
)

// TriangleWide holds one triangle per lane, in the triangle's local space.
type TriangleWide struct {
	A, B, C wide.Vec3
}

// SetSlot writes t into lane i.
func (t *TriangleWide) SetSlot(i int, triangle actor.Triangle) {
	t.A.SetSlot(i, triangle.A)
	t.B.SetSlot(i, triangle.B)
	t.C.SetSlot(i, triangle.C)
}

// Slot reads lane i.
func (t *TriangleWide) Slot(i int) actor.Triangle {
	return actor.Triangle{A: t.A.Slot(i), B: t.B.Slot(i), C: t.C.Slot(i)}
}

// HullWide holds one hull reference per lane. A nil hull marks the lane
// inactive.
type HullWide struct {
	Hulls [wide.Lanes]*actor.ConvexHull
}

// Pair is a triangle/hull pair selected by the broad phase.
type Pair struct {
	Triangle   actor.Triangle
	Hull       *actor.ConvexHull
	TransformA actor.Transform // Triangle pose
	TransformB actor.Transform // Hull pose
	// SpeculativeMargin is the separation up to which contacts are still
	// generated, with negative depth.
	SpeculativeMargin float64
}

// TriangleHullBatch packs up to wide.Lanes pairs into the lane layout
// expected by TriangleHullTester.Test.
type TriangleHullBatch struct {
	Triangles    TriangleWide
	Hulls        HullWide
	Margins      wide.F64
	OffsetB      wide.Vec3
	OrientationA wide.Quat
	OrientationB wide.Quat
	Count        int
}

// Add fills the next lane with pair. It returns false when the batch is full.
func (b *TriangleHullBatch) Add(pair Pair) bool {
	if b.Count >= wide.Lanes {
		return false
	}

	i := b.Count
	b.Triangles.SetSlot(i, pair.Triangle)
	b.Hulls.Hulls[i] = pair.Hull
	b.Margins[i] = pair.SpeculativeMargin
	b.OffsetB.SetSlot(i, pair.TransformB.Position.Sub(pair.TransformA.Position))
	b.OrientationA.SetSlot(i, pair.TransformA.Rotation)
	b.OrientationB.SetSlot(i, pair.TransformB.Rotation)
	b.Count++
	return true
}

// Reset empties the batch. Stale lanes beyond Count are ignored by Test.
func (b *TriangleHullBatch) Reset() {
	b.Hulls = HullWide{}
	b.Count = 0
}

// Test runs tester over the populated lanes.
func (b *TriangleHullBatch) Test(tester *TriangleHullTester) ManifoldBatch {
	return tester.Test(&b.Triangles, &b.Hulls, &b.Margins, &b.OffsetB, &b.OrientationA, &b.OrientationB, b.Count)
}

// WorldContact returns the world positions of a contact produced for this
// pair, on the triangle and on the hull.
func (p Pair) WorldContact(contact Contact) (onTriangle, onHull mgl64.Vec3) {
	return p.TransformA.Position.Add(contact.OffsetA), p.TransformB.Position.Add(contact.OffsetB)
}
