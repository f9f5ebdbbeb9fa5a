package rbf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// KernelType selects the radial basis function used to weight distances.
type KernelType string

// Kernel types supported by the engine.
const (
	Gaussian        KernelType = "gaussian"
	Multiquadric    KernelType = "multiquadric"
	ThinPlateSpline KernelType = "thinPlateSpline"
	Cubic           KernelType = "cubic"
)

func (k KernelType) valid() bool {
	switch k {
	case Gaussian, Multiquadric, ThinPlateSpline, Cubic:
		return true
	}
	return false
}

// usesParameter reports whether the kernel formula consumes the shape
// parameter epsilon. Thin-plate spline and cubic kernels accept it but
// never read it.
func (k KernelType) usesParameter() bool {
	return k == Gaussian || k == Multiquadric
}

// evaluate computes the basis function at distance d with shape parameter
// eps. The thin-plate spline is defined as 0 at d = 0, its mathematical
// limit, so ln(0) never reaches the result.
func (k KernelType) evaluate(d, eps float64) float64 {
	switch k {
	case Gaussian:
		e := eps * d
		return math.Exp(-e * e)
	case Multiquadric:
		e := eps * d
		return math.Sqrt(1 + e*e)
	case ThinPlateSpline:
		if d == 0 {
			return 0
		}
		return d * d * math.Log(d)
	case Cubic:
		return d * d * d
	}
	return math.NaN()
}

// buildKernelMatrix maps the distance matrix through the configured basis
// function and adds the smoothing factor to every diagonal entry. The
// uniform diagonal perturbation preserves symmetry.
func buildKernelMatrix(dist *mat.Dense, cfg Config) *mat.Dense {
	n, _ := dist.Dims()
	k := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := cfg.KernelType.evaluate(dist.At(i, j), cfg.KernelParameter)
			k.Set(i, j, v)
			k.Set(j, i, v)
		}
		k.Set(i, i, k.At(i, i)+cfg.SmoothingFactor)
	}
	return k
}
