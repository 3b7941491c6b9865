package narrowphase

import (
	"math"
	"sort"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the integer coordinate of a grid cell.
type CellKey struct {
	X, Y, Z int
}

// Cell holds the indices of the triangles overlapping it.
type Cell struct {
	triangleIndices []int
}

// TriangleGrid is a uniform hashed grid over the triangles of a static mesh.
// It finds the mesh triangles a hull may touch and packs them into Pairs.
//
// The grid is read-only after Build and may be queried from several
// goroutines.
type TriangleGrid struct {
	cellSize  float64
	cells     []Cell
	cellMask  int
	triangles []actor.Triangle
	bounds    []actor.AABB
	transform actor.Transform
}

// NewTriangleGrid creates an empty grid. numCells is rounded up to a power of
// two.
func NewTriangleGrid(cellSize float64, numCells int) *TriangleGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].triangleIndices = make([]int, 0, 8)
	}

	return &TriangleGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Build indexes the mesh triangles, given in mesh-local space, placed at
// transform. Any previous content is cleared.
func (g *TriangleGrid) Build(triangles []actor.Triangle, transform actor.Transform) {
	g.Clear()
	g.transform = transform
	g.triangles = append(g.triangles[:0], triangles...)
	g.bounds = g.bounds[:0]

	for i, triangle := range triangles {
		aabb := triangle.ComputeAABB(transform)
		g.bounds = append(g.bounds, aabb)
		g.insert(i, aabb)
	}
	g.SortCells()
}

func (g *TriangleGrid) insert(triangleIndex int, aabb actor.AABB) {
	minCell := g.worldToCell(aabb.Min)
	maxCell := g.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := g.hashCell(CellKey{x, y, z})
				g.cells[cellIdx].triangleIndices = append(g.cells[cellIdx].triangleIndices, triangleIndex)
			}
		}
	}
}

func (g *TriangleGrid) Clear() {
	for i := range g.cells {
		g.cells[i].triangleIndices = g.cells[i].triangleIndices[:0]
	}
	g.triangles = g.triangles[:0]
	g.bounds = g.bounds[:0]
}

func (g *TriangleGrid) SortCells() {
	for i := range g.cells {
		if len(g.cells[i].triangleIndices) > 1 {
			sort.Ints(g.cells[i].triangleIndices)
		}
	}
}

// Query returns, in increasing order, the indices of the triangles whose
// bounds overlap aabb.
func (g *TriangleGrid) Query(aabb actor.AABB) []int {
	minCell := g.worldToCell(aabb.Min)
	maxCell := g.worldToCell(aabb.Max)

	seen := make(map[int]struct{})
	result := make([]int, 0, 8)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := g.hashCell(CellKey{x, y, z})
				for _, triangleIdx := range g.cells[cellIdx].triangleIndices {
					if _, ok := seen[triangleIdx]; ok {
						continue
					}
					seen[triangleIdx] = struct{}{}
					if g.bounds[triangleIdx].Overlaps(aabb) {
						result = append(result, triangleIdx)
					}
				}
			}
		}
	}
	sort.Ints(result)

	return result
}

// Pairs returns a Pair for every mesh triangle near hull placed at transform.
// The hull bounds are expanded by speculativeMargin before the lookup.
func (g *TriangleGrid) Pairs(hull *actor.ConvexHull, transform actor.Transform, speculativeMargin float64) []Pair {
	indices := g.Query(hull.ComputeAABB(transform).Expand(speculativeMargin))

	pairs := make([]Pair, 0, len(indices))
	for _, i := range indices {
		pairs = append(pairs, Pair{
			Triangle:          g.triangles[i],
			Hull:              hull,
			TransformA:        g.transform,
			TransformB:        transform,
			SpeculativeMargin: speculativeMargin,
		})
	}
	return pairs
}

func (g *TriangleGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / g.cellSize)),
		Y: int(math.Floor(pos.Y() / g.cellSize)),
		Z: int(math.Floor(pos.Z() / g.cellSize)),
	}
}

func (g *TriangleGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
