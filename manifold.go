package narrowphase

import (
	"github.com/akmonengine/narrowphase/wide"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxContacts is the maximum number of contacts in a Manifold.
const MaxContacts = 4

// Contact is a single contact point between a triangle (A) and a hull (B).
type Contact struct {
	// OffsetA goes from the triangle's origin to the contact on the triangle.
	OffsetA mgl64.Vec3
	// OffsetB goes from the hull's origin to the contact on the hull face.
	OffsetB mgl64.Vec3
	// Depth is the penetration along the normal. Negative values are
	// speculative contacts separated by that distance.
	Depth float64
	// FeatureID identifies the geometric feature that produced the contact so
	// the solver can match contacts across frames. Triangle vertices use 0, 1
	// and 2; hull face edges use values of 256 and above.
	FeatureID int
}

// Manifold is the contact set of one triangle/hull pair.
type Manifold struct {
	// Normal is the world-space unit normal, from the hull toward the
	// triangle. Zero when Count is 0.
	Normal   mgl64.Vec3
	Contacts [MaxContacts]Contact
	Count    int
}

// Active returns the populated contacts.
func (m *Manifold) Active() []Contact {
	return m.Contacts[:m.Count]
}

// ManifoldBatch holds one Manifold per lane.
type ManifoldBatch [wide.Lanes]Manifold
