package rbf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// pivotThreshold is the magnitude below which the best available pivot is
// rejected and the system declared singular.
const pivotThreshold = 1e-12

// solveCoefficients solves K·w = v by Gaussian elimination with partial
// pivoting and returns the interpolation coefficient vector w.
//
// At each elimination column the row with the largest absolute entry is
// swapped to the pivot position. The search uses a strict > comparison, so
// among equal-magnitude candidates the lowest-indexed row wins and repeated
// runs over identical inputs eliminate in the same order.
//
// If the chosen pivot magnitude falls below pivotThreshold the solve fails
// with a SingularSystemError; no degraded solution is returned.
//
// The kernel matrix is copied before elimination, so the caller's matrix is
// left intact. This is the O(n³) bottleneck of the pipeline for large
// sample counts.
func solveCoefficients(kernel *mat.Dense, values []float64) ([]float64, error) {
	n := len(values)
	a := mat.DenseCopyOf(kernel).RawMatrix()
	b := make([]float64, n)
	copy(b, values)

	// Forward elimination with partial pivoting.
	for col := 0; col < n; col++ {
		maxRow := col
		maxAbs := math.Abs(a.Data[col*a.Stride+col])
		for r := col + 1; r < n; r++ {
			if abs := math.Abs(a.Data[r*a.Stride+col]); abs > maxAbs {
				maxAbs = abs
				maxRow = r
			}
		}

		if maxAbs < pivotThreshold {
			return nil, &SingularSystemError{Column: col, Pivot: maxAbs}
		}

		if maxRow != col {
			ri := a.Data[col*a.Stride : col*a.Stride+n]
			rj := a.Data[maxRow*a.Stride : maxRow*a.Stride+n]
			for c := col; c < n; c++ {
				ri[c], rj[c] = rj[c], ri[c]
			}
			b[col], b[maxRow] = b[maxRow], b[col]
		}

		pivot := a.Data[col*a.Stride+col]
		for r := col + 1; r < n; r++ {
			factor := a.Data[r*a.Stride+col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a.Data[r*a.Stride+c] -= factor * a.Data[col*a.Stride+c]
			}
			b[r] -= factor * b[col]
		}
	}

	// Back substitution.
	w := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a.Data[i*a.Stride+j] * w[j]
		}
		w[i] = sum / a.Data[i*a.Stride+i]
	}

	return w, nil
}
