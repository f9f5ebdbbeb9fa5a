package rbf

import (
	"context"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// boundingBox is the axis-aligned extent of a sample set.
type boundingBox struct {
	Min, Max Point3D
}

func computeBounds(points []Point3D) boundingBox {
	b := boundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}

// evaluateAt computes the fitted field at p as the coefficient-weighted sum
// of basis functions centered on the samples. Samples are always visited in
// ascending index order so the accumulated value is identical no matter how
// grid points are distributed across goroutines.
func evaluateAt(p Point3D, points []Point3D, weights []float64, kt KernelType, eps float64) float64 {
	sum := 0.0
	for i, s := range points {
		sum += weights[i] * kt.evaluate(euclidean(p, s), eps)
	}
	return sum
}

// evaluateGrid samples the fitted interpolant on a regular lattice spanning
// the sample bounding box and derives a confidence value per lattice point
// from its distance to the nearest sample.
//
// Each axis is subdivided into cfg.GridResolution equal steps, giving
// (GridResolution+1)³ lattice points ordered x-fastest. A resolution of 0
// degenerates to the single bounding-box corner. Confidence is
// exp(-minDist/avgStep) where avgStep is the mean per-axis step size; a
// fully degenerate lattice (avgStep 0) gets confidence 1 at zero distance
// and 0 elsewhere, so no division by zero occurs.
//
// Cost is O(n·g³) kernel evaluations for n samples and g points per axis,
// the second dominant cost after the solve: a resolution of 20 with a few
// hundred samples already means tens of millions of evaluations. The z-slabs
// of the lattice are evaluated in parallel, and cancellation is checked
// before each slab.
func evaluateGrid(ctx context.Context, points []Point3D, weights []float64, cfg Config) ([]Point3D, []float64, []float64, error) {
	res := cfg.GridResolution
	g := res + 1
	total := g * g * g

	bounds := computeBounds(points)
	var stepX, stepY, stepZ float64
	if res > 0 {
		stepX = (bounds.Max.X - bounds.Min.X) / float64(res)
		stepY = (bounds.Max.Y - bounds.Min.Y) / float64(res)
		stepZ = (bounds.Max.Z - bounds.Min.Z) / float64(res)
	}
	avgStep := (stepX + stepY + stepZ) / 3

	// The tree partitions its input, so index it over a copy to keep the
	// sample order aligned with the coefficient vector.
	treePoints := make(points3D, len(points))
	copy(treePoints, points)
	tree := kdtree.New(treePoints, true)

	gridPoints := make([]Point3D, total)
	values := make([]float64, total)
	confidence := make([]float64, total)

	workers := runtime.NumCPU()
	if workers > g {
		workers = g
	}
	slabsPerWorker := (g + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startZ := w * slabsPerWorker
		endZ := startZ + slabsPerWorker
		if endZ > g {
			endZ = g
		}
		if startZ >= g {
			break
		}

		wg.Add(1)
		go func(startZ, endZ int) {
			defer wg.Done()
			for iz := startZ; iz < endZ; iz++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for iy := 0; iy < g; iy++ {
					for ix := 0; ix < g; ix++ {
						p := Point3D{
							X: bounds.Min.X + float64(ix)*stepX,
							Y: bounds.Min.Y + float64(iy)*stepY,
							Z: bounds.Min.Z + float64(iz)*stepZ,
						}

						idx := ix + g*(iy+g*iz)
						gridPoints[idx] = p
						values[idx] = evaluateAt(p, points, weights, cfg.KernelType, cfg.KernelParameter)

						_, distSq := tree.Nearest(p)
						minDist := math.Sqrt(distSq)
						if avgStep > 0 {
							confidence[idx] = math.Exp(-minDist / avgStep)
						} else if minDist == 0 {
							confidence[idx] = 1
						}
					}
				}
			}
		}(startZ, endZ)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}
	return gridPoints, values, confidence, nil
}
