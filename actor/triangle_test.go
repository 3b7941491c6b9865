package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTriangle_NormalAndCentroid(t *testing.T) {
	triangle := Triangle{A: mgl64.Vec3{0, 0, 0}, B: mgl64.Vec3{0, 0, 3}, C: mgl64.Vec3{3, 0, 0}}

	if got := triangle.Normal(); !vec3Equal(got, mgl64.Vec3{0, 9, 0}, 1e-12) {
		t.Errorf("Normal() = %v, want (0, 9, 0)", got)
	}
	if got := triangle.Centroid(); !vec3Equal(got, mgl64.Vec3{1, 0, 1}, 1e-12) {
		t.Errorf("Centroid() = %v, want (1, 0, 1)", got)
	}
	for i, want := range []mgl64.Vec3{triangle.A, triangle.B, triangle.C} {
		if got := triangle.Vertex(i); got != want {
			t.Errorf("Vertex(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestTriangle_Support(t *testing.T) {
	triangle := Triangle{A: mgl64.Vec3{-1, 0, 0}, B: mgl64.Vec3{1, 0, 0}, C: mgl64.Vec3{0, 0, 1}}

	tests := []struct {
		name      string
		direction mgl64.Vec3
		expected  mgl64.Vec3
	}{
		{"toward A", mgl64.Vec3{-1, 0, 0}, triangle.A},
		{"toward B", mgl64.Vec3{1, 0, -0.5}, triangle.B},
		{"toward C", mgl64.Vec3{0, 0, 1}, triangle.C},
		{"tie resolves to A", mgl64.Vec3{0, 1, 0}, triangle.A},
		{"tie between B and C", mgl64.Vec3{1, 0, 1}, triangle.B},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := triangle.Support(tt.direction); got != tt.expected {
				t.Errorf("Support(%v) = %v, want %v", tt.direction, got, tt.expected)
			}
		})
	}
}

func TestTriangle_EstimateEpsilonScale(t *testing.T) {
	tests := []struct {
		name     string
		triangle Triangle
		expected float64
	}{
		{"collapsed", Triangle{A: mgl64.Vec3{5, 5, 5}, B: mgl64.Vec3{5, 5, 5}, C: mgl64.Vec3{5, 5, 5}}, 0},
		{"centered", Triangle{A: mgl64.Vec3{-3, 0, 0}, B: mgl64.Vec3{3, 0, 0}, C: mgl64.Vec3{0, 0, 0}}, 3},
		// Far from the origin the scale follows the triangle's size.
		{"translated", Triangle{A: mgl64.Vec3{997, 0, 0}, B: mgl64.Vec3{1003, 0, 0}, C: mgl64.Vec3{1000, 0, 0}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.triangle.EstimateEpsilonScale(); !floatEqual(got, tt.expected, 1e-9) {
				t.Errorf("EstimateEpsilonScale() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTriangle_ComputeAABB(t *testing.T) {
	triangle := Triangle{A: mgl64.Vec3{0, 0, 0}, B: mgl64.Vec3{0, 0, 2}, C: mgl64.Vec3{2, 0, 0}}
	transform := Transform{
		Position: mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}),
	}

	aabb := triangle.ComputeAABB(transform)
	// Rotating 90 degrees around X maps +Z onto -Y.
	if !vec3Equal(aabb.Min, mgl64.Vec3{1, -1, 1}, 1e-9) || !vec3Equal(aabb.Max, mgl64.Vec3{3, 1, 1}, 1e-9) {
		t.Errorf("ComputeAABB() = %v - %v, want (1, -1, 1) - (3, 1, 1)", aabb.Min, aabb.Max)
	}
}

func TestTransform_ApplyInverse(t *testing.T) {
	transforms := []Transform{
		NewTransform(),
		{Position: mgl64.Vec3{1, -2, 3}, Rotation: mgl64.QuatIdent()},
		{Position: mgl64.Vec3{-4, 0.5, 2}, Rotation: mgl64.QuatRotate(1.1, mgl64.Vec3{1, 2, -1}.Normalize())},
	}
	points := []mgl64.Vec3{{0, 0, 0}, {1, 2, 3}, {-0.5, 7, 0.25}}

	for i, transform := range transforms {
		for _, p := range points {
			if got := transform.ApplyInverse(transform.Apply(p)); !vec3Equal(got, p, 1e-12) {
				t.Errorf("transform %d: ApplyInverse(Apply(%v)) = %v", i, p, got)
			}
		}
	}
}
