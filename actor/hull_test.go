package actor

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) <= tolerance &&
		math.Abs(a.Y()-b.Y()) <= tolerance &&
		math.Abs(a.Z()-b.Z()) <= tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func createBoxHull(t testing.TB, halfExtents mgl64.Vec3) *ConvexHull {
	t.Helper()
	hull, err := NewBoxHull(halfExtents)
	if err != nil {
		t.Fatalf("NewBoxHull(%v) failed: %v", halfExtents, err)
	}
	return hull
}

func TestNewBoxHull_FacePlanes(t *testing.T) {
	hull := createBoxHull(t, mgl64.Vec3{1, 2, 3})

	expected := []Plane{
		{Normal: mgl64.Vec3{1, 0, 0}, Offset: 1},
		{Normal: mgl64.Vec3{-1, 0, 0}, Offset: 1},
		{Normal: mgl64.Vec3{0, 1, 0}, Offset: 2},
		{Normal: mgl64.Vec3{0, -1, 0}, Offset: 2},
		{Normal: mgl64.Vec3{0, 0, 1}, Offset: 3},
		{Normal: mgl64.Vec3{0, 0, -1}, Offset: 3},
	}
	if hull.FaceCount() != len(expected) {
		t.Fatalf("FaceCount() = %d, want %d", hull.FaceCount(), len(expected))
	}

	for i, want := range expected {
		got := hull.FacePlane(i)
		if !vec3Equal(got.Normal, want.Normal, 1e-12) || !floatEqual(got.Offset, want.Offset, 1e-12) {
			t.Errorf("FacePlane(%d) = %+v, want %+v", i, got, want)
		}
		for _, index := range hull.FaceVertexIndices(i) {
			if d := got.Distance(hull.Vertex(index)); !floatEqual(d, 0, 1e-12) {
				t.Errorf("face %d vertex %d is %v off its plane", i, index, d)
			}
		}
	}

	if hull.EstimateEpsilonScale() != 3 {
		t.Errorf("EstimateEpsilonScale() = %v, want 3", hull.EstimateEpsilonScale())
	}
}

func TestNewPrismHull(t *testing.T) {
	for _, sides := range []int{3, 6, 16} {
		hull, err := NewPrismHull(sides, 0.5, 0.25)
		if err != nil {
			t.Fatalf("NewPrismHull(%d) failed: %v", sides, err)
		}
		if hull.FaceCount() != sides+2 {
			t.Errorf("sides=%d: FaceCount() = %d, want %d", sides, hull.FaceCount(), sides+2)
		}
		if got := hull.FacePlane(0).Normal; !vec3Equal(got, mgl64.Vec3{0, -1, 0}, 1e-12) {
			t.Errorf("sides=%d: bottom normal = %v, want (0, -1, 0)", sides, got)
		}
		if got := hull.FacePlane(1).Normal; !vec3Equal(got, mgl64.Vec3{0, 1, 0}, 1e-12) {
			t.Errorf("sides=%d: top normal = %v, want (0, 1, 0)", sides, got)
		}
	}

	if _, err := NewPrismHull(2, 1, 1); !errors.Is(err, ErrInvalidHull) {
		t.Errorf("NewPrismHull(2) error = %v, want ErrInvalidHull", err)
	}
}

func TestNewConvexHull_Errors(t *testing.T) {
	tetrahedron := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	tests := []struct {
		name   string
		points []mgl64.Vec3
		faces  [][]int
	}{
		{"too few points", tetrahedron[:3], [][]int{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}, {0, 1, 2}}},
		{"too few faces", tetrahedron, [][]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}}},
		{"face with two vertices", tetrahedron, [][]int{{0, 2}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}},
		{"index out of range", tetrahedron, [][]int{{0, 2, 7}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}},
		{"degenerate face", tetrahedron, [][]int{{0, 1, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}},
		{"wrong winding", tetrahedron, [][]int{{0, 1, 2}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}},
		{"all points at origin", []mgl64.Vec3{{}, {}, {}, {}}, [][]int{{0, 1, 2}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConvexHull(tt.points, tt.faces)
			if !errors.Is(err, ErrInvalidHull) {
				t.Errorf("NewConvexHull() error = %v, want ErrInvalidHull", err)
			}
		})
	}
}

func TestNewConvexHull_Tetrahedron(t *testing.T) {
	points := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	faces := [][]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}

	hull, err := NewConvexHull(points, faces)
	if err != nil {
		t.Fatalf("NewConvexHull() failed: %v", err)
	}

	diagonal := mgl64.Vec3{1, 1, 1}.Normalize()
	if got := hull.FacePlane(3).Normal; !vec3Equal(got, diagonal, 1e-12) {
		t.Errorf("slanted face normal = %v, want %v", got, diagonal)
	}

	// The hull keeps its own copies.
	points[1] = mgl64.Vec3{5, 5, 5}
	faces[0][0] = 3
	if hull.Vertex(1) != (mgl64.Vec3{1, 0, 0}) || hull.FaceVertexIndices(0)[0] != 0 {
		t.Error("hull aliases the input slices")
	}
}

func TestConvexHullSupport(t *testing.T) {
	hull := createBoxHull(t, mgl64.Vec3{1, 2, 3})

	tests := []struct {
		name      string
		direction mgl64.Vec3
		expected  mgl64.Vec3
	}{
		{"positive octant", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 2, 3}},
		{"negative octant", mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{-1, -2, -3}},
		{"mixed", mgl64.Vec3{1, -1, 1}, mgl64.Vec3{1, -2, 3}},
		// Ties resolve to the lowest index, corner 0.
		{"zero direction", mgl64.Vec3{}, mgl64.Vec3{-1, -2, -3}},
		{"face tie", mgl64.Vec3{0, -1, 0}, mgl64.Vec3{-1, -2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hull.Support(tt.direction); got != tt.expected {
				t.Errorf("Support(%v) = %v, want %v", tt.direction, got, tt.expected)
			}
		})
	}
}

func TestConvexHullComputeAABB(t *testing.T) {
	hull := createBoxHull(t, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name        string
		transform   Transform
		expectedMin mgl64.Vec3
		expectedMax mgl64.Vec3
	}{
		{
			name:        "identity",
			transform:   NewTransform(),
			expectedMin: mgl64.Vec3{-1, -1, -1},
			expectedMax: mgl64.Vec3{1, 1, 1},
		},
		{
			name:        "translated",
			transform:   Transform{Position: mgl64.Vec3{5, 0, -2}, Rotation: mgl64.QuatIdent()},
			expectedMin: mgl64.Vec3{4, -1, -3},
			expectedMax: mgl64.Vec3{6, 1, -1},
		},
		{
			name:        "rotated 45 degrees around Y",
			transform:   Transform{Rotation: mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})},
			expectedMin: mgl64.Vec3{-math.Sqrt2, -1, -math.Sqrt2},
			expectedMax: mgl64.Vec3{math.Sqrt2, 1, math.Sqrt2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aabb := hull.ComputeAABB(tt.transform)
			if !vec3Equal(aabb.Min, tt.expectedMin, 1e-9) || !vec3Equal(aabb.Max, tt.expectedMax, 1e-9) {
				t.Errorf("ComputeAABB() = %v - %v, want %v - %v", aabb.Min, aabb.Max, tt.expectedMin, tt.expectedMax)
			}
		})
	}
}

func TestOffsetSupport(t *testing.T) {
	hull := createBoxHull(t, mgl64.Vec3{1, 1, 1})
	shifted := OffsetSupport{Shape: hull, Offset: mgl64.Vec3{10, 0, 0}}

	if got := shifted.Support(mgl64.Vec3{1, 1, 1}); got != (mgl64.Vec3{11, 1, 1}) {
		t.Errorf("Support() = %v, want (11, 1, 1)", got)
	}
}

func BenchmarkConvexHullSupport(b *testing.B) {
	hull, err := NewPrismHull(32, 1, 1)
	if err != nil {
		b.Fatal(err)
	}
	direction := mgl64.Vec3{0.3, -0.8, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hull.Support(direction)
	}
}
