package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/akmonengine/narrowphase"
	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ManifoldDebugger prints the contacts produced for a pair.
type ManifoldDebugger struct{}

func (d *ManifoldDebugger) DebugManifold(index int, pair narrowphase.Pair, manifold narrowphase.Manifold) {
	if manifold.Count == 0 {
		return
	}

	fmt.Printf("Triangle %d vs hull:\n", index)
	fmt.Printf("   Normal: %v\n", manifold.Normal)
	for i, contact := range manifold.Active() {
		onTriangle, onHull := pair.WorldContact(contact)
		fmt.Printf("   Contact %d: id=%d depth=%.6f\n", i, contact.FeatureID, contact.Depth)
		fmt.Printf("      on triangle: %v\n", onTriangle)
		fmt.Printf("      on hull:     %v\n", onHull)
	}
}

// groundMesh returns a flat square of two triangles facing +Y.
func groundMesh(halfSize float64) []actor.Triangle {
	p00 := mgl64.Vec3{-halfSize, 0, -halfSize}
	p10 := mgl64.Vec3{halfSize, 0, -halfSize}
	p01 := mgl64.Vec3{-halfSize, 0, halfSize}
	p11 := mgl64.Vec3{halfSize, 0, halfSize}

	return []actor.Triangle{
		{A: p00, B: p01, C: p10},
		{A: p10, B: p01, C: p11},
	}
}

func main() {
	narrowphase.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	box, err := actor.NewBoxHull(mgl64.Vec3{0.5, 0.5, 0.5})
	if err != nil {
		log.Fatal(err)
	}

	meshTransform := actor.NewTransform()
	grid := narrowphase.NewTriangleGrid(2.0, 64)
	grid.Build(groundMesh(5), meshTransform)

	boxTransform := actor.Transform{
		Position: mgl64.Vec3{0.3, 0.49, -0.2},
		Rotation: mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0}),
	}
	const speculativeMargin = 0.05

	boxBounds := box.ComputeAABB(boxTransform).Expand(speculativeMargin)
	pairs := grid.Pairs(box, boxTransform, speculativeMargin)
	fmt.Printf("Box bounds %v - %v, %d candidate triangles\n", boxBounds.Min, boxBounds.Max, len(pairs))

	tester := narrowphase.TriangleHullTester{}
	manifolds := narrowphase.TestPairs(&tester, pairs, 2)

	debugger := &ManifoldDebugger{}
	for i, manifold := range manifolds {
		if !pairs[i].Triangle.ComputeAABB(meshTransform).Overlaps(boxBounds) {
			continue
		}
		debugger.DebugManifold(i, pairs[i], manifold)
	}
}
