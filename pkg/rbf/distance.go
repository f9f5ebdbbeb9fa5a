package rbf

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// buildDistanceMatrix computes the pairwise Euclidean distances between all
// sample points. The result is symmetric with a zero diagonal; coincident
// points produce zero off-diagonal entries, which the solver later rejects
// unless smoothing is applied.
//
// The matrix is O(n²) in both time and memory, the dominant memory cost of
// the pipeline. In practice this caps the usable sample count at a few
// thousand points.
//
// Rows are filled in parallel; every entry is recomputed from the point
// coordinates alone, so the values do not depend on how rows are split
// across goroutines. An empty point set yields a nil matrix, which the
// pipeline short-circuits before use.
func buildDistanceMatrix(points []Point3D) *mat.Dense {
	n := len(points)
	if n == 0 {
		return nil
	}

	d := mat.NewDense(n, n, nil)

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	rowsPerWorker := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				pi := points[i]
				for j := 0; j < n; j++ {
					d.Set(i, j, euclidean(pi, points[j]))
				}
			}
		}(start, end)
	}
	wg.Wait()

	return d
}
