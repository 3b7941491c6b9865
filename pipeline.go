package narrowphase

import (
	"sync"

	"github.com/akmonengine/narrowphase/wide"
)

const DEFAULT_WORKERS = 1

func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}

// batchRange is a run of at most wide.Lanes consecutive pairs.
type batchRange struct {
	start, end int
}

// TestPairs computes the manifold of every pair, in pair order.
//
// Pairs are packed into batches of wide.Lanes which are spread over workers
// goroutines. Values below DEFAULT_WORKERS select DEFAULT_WORKERS.
func TestPairs(tester *TriangleHullTester, pairs []Pair, workers int) []Manifold {
	workers = max(DEFAULT_WORKERS, workers)
	manifolds := make([]Manifold, len(pairs))
	if len(pairs) == 0 {
		return manifolds
	}

	ranges := make([]batchRange, 0, (len(pairs)+wide.Lanes-1)/wide.Lanes)
	for start := 0; start < len(pairs); start += wide.Lanes {
		ranges = append(ranges, batchRange{start: start, end: min(start+wide.Lanes, len(pairs))})
	}

	task(min(workers, len(ranges)), ranges, func(r batchRange) {
		var batch TriangleHullBatch
		for _, pair := range pairs[r.start:r.end] {
			batch.Add(pair)
		}
		results := batch.Test(tester)
		// Each batch writes a disjoint range.
		copy(manifolds[r.start:r.end], results[:batch.Count])
	})

	return manifolds
}
