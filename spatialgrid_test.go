package narrowphase

import (
	"testing"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToCell(t *testing.T) {
	grid := NewTriangleGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"fractional", mgl64.Vec3{0.5, 0.5, 0.5}, CellKey{0, 0, 0}},
		{"large", mgl64.Vec3{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewTriangleGrid(1.0, 16)

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"origin", CellKey{0, 0, 0}, 0},
		{"simple", CellKey{1, 2, 3}, 0},
		{"negative", CellKey{-1, -2, -3}, 13},
		{"large", CellKey{100, 200, 300}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			if result < 0 || result >= len(grid.cells) {
				t.Errorf("hashCell(%v) = %d, out of range [0, %d)", tt.key, result, len(grid.cells))
			}
			if result != tt.expected {
				t.Errorf("hashCell(%v) = %d, want %d", tt.key, result, tt.expected)
			}
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {16, 16}, {17, 32}, {1000, 1024},
	}

	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// gridMesh returns a flat mesh of 2*n*n unit triangles covering [0, n]² in XZ,
// facing +Y.
func gridMesh(n int) []actor.Triangle {
	triangles := make([]actor.Triangle, 0, 2*n*n)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			p00 := mgl64.Vec3{float64(x), 0, float64(z)}
			p10 := mgl64.Vec3{float64(x + 1), 0, float64(z)}
			p01 := mgl64.Vec3{float64(x), 0, float64(z + 1)}
			p11 := mgl64.Vec3{float64(x + 1), 0, float64(z + 1)}
			triangles = append(triangles,
				actor.Triangle{A: p00, B: p01, C: p10},
				actor.Triangle{A: p10, B: p01, C: p11},
			)
		}
	}
	return triangles
}

func TestGridMesh_FacesUp(t *testing.T) {
	for i, triangle := range gridMesh(2) {
		if triangle.Normal().Y() <= 0 {
			t.Errorf("triangle %d normal %v should face +Y", i, triangle.Normal())
		}
	}
}

func TestTriangleGrid_Query(t *testing.T) {
	grid := NewTriangleGrid(1.0, 64)
	grid.Build(gridMesh(4), actor.NewTransform())

	tests := []struct {
		name string
		aabb actor.AABB
		want []int
	}{
		{"outside", actor.AABB{Min: mgl64.Vec3{10, 0, 10}, Max: mgl64.Vec3{11, 1, 11}}, []int{}},
		{"above mesh", actor.AABB{Min: mgl64.Vec3{0.2, 0.5, 0.2}, Max: mgl64.Vec3{0.8, 1, 0.8}}, []int{}},
		{"inside first cell", actor.AABB{Min: mgl64.Vec3{0.2, -0.1, 0.2}, Max: mgl64.Vec3{0.4, 0.1, 0.4}}, []int{0, 1}},
		{"spanning cells", actor.AABB{Min: mgl64.Vec3{0.5, -0.1, 0.2}, Max: mgl64.Vec3{1.5, 0.1, 0.4}}, []int{0, 1, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.Query(tt.aabb)
			if len(got) != len(tt.want) {
				t.Fatalf("Query() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Query() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestTriangleGrid_Clear(t *testing.T) {
	grid := NewTriangleGrid(1.0, 64)
	grid.Build(gridMesh(2), actor.NewTransform())
	grid.Clear()

	for i, cell := range grid.cells {
		if len(cell.triangleIndices) != 0 {
			t.Errorf("cell %d still holds %d triangles", i, len(cell.triangleIndices))
		}
	}
	if got := grid.Query(actor.AABB{Min: mgl64.Vec3{0, -1, 0}, Max: mgl64.Vec3{2, 1, 2}}); len(got) != 0 {
		t.Errorf("Query() after Clear = %v, want none", got)
	}
}

func TestTriangleGrid_Pairs(t *testing.T) {
	box := createBoxHull(t, mgl64.Vec3{0.5, 0.5, 0.5})
	meshTransform := actor.Transform{Position: mgl64.Vec3{-2, 0, -2}, Rotation: mgl64.QuatIdent()}

	grid := NewTriangleGrid(1.0, 64)
	grid.Build(gridMesh(4), meshTransform)

	boxTransform := actor.Transform{Position: mgl64.Vec3{0.1, 0.49, 0.1}, Rotation: mgl64.QuatIdent()}
	pairs := grid.Pairs(box, boxTransform, 0.05)
	if len(pairs) == 0 {
		t.Fatal("Pairs() found no triangles under the box")
	}

	for i, pair := range pairs {
		if pair.Hull != box || pair.TransformA != meshTransform || pair.TransformB != boxTransform {
			t.Errorf("pair %d not built from the query inputs: %+v", i, pair)
		}
	}

	tester := TriangleHullTester{}
	total := 0
	for _, m := range TestPairs(&tester, pairs, 2) {
		total += m.Count
		if m.Count > 0 && !vec3Equal(m.Normal, mgl64.Vec3{0, -1, 0}, 1e-6) {
			t.Errorf("Normal = %v, want (0, -1, 0)", m.Normal)
		}
	}
	if total == 0 {
		t.Error("box resting on the mesh produced no contacts")
	}
}

func BenchmarkTriangleGrid_Query(b *testing.B) {
	grid := NewTriangleGrid(1.0, 1024)
	grid.Build(gridMesh(32), actor.NewTransform())
	aabb := actor.AABB{Min: mgl64.Vec3{10.2, -0.5, 10.2}, Max: mgl64.Vec3{11.8, 0.5, 11.8}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.Query(aabb)
	}
}
