// Package rbf implements radial-basis-function interpolation of scattered
// 3D samples onto a regular lattice. A dense kernel matrix is built from
// the pairwise sample distances, solved for interpolation coefficients by
// Gaussian elimination with partial pivoting, and the fitted field is then
// evaluated over the bounding-box lattice together with a nearest-sample
// confidence field and summary statistics.
//
// The engine is a pure function of its inputs: every matrix and buffer is
// created per call and released when the call returns, and independent
// invocations share no state.
package rbf

import (
	"context"
	"fmt"
)

// Config holds the recognized interpolation options.
type Config struct {
	// KernelType selects the radial basis function.
	KernelType KernelType `json:"kernelType" yaml:"kernelType"`

	// KernelParameter shapes the kernel's decay. It must be positive for
	// the gaussian and multiquadric kernels; thinPlateSpline and cubic
	// accept it but do not use it.
	KernelParameter float64 `json:"kernelParameter" yaml:"kernelParameter"`

	// SmoothingFactor is the non-negative regularization added to the
	// kernel matrix diagonal. Zero yields exact interpolation at the cost
	// of ill-conditioning when samples are close together.
	SmoothingFactor float64 `json:"smoothingFactor" yaml:"smoothingFactor"`

	// MaxIterations and Tolerance are reserved for iterative-refinement
	// solver variants. The direct solver does not consume them, but they
	// are part of the stable configuration contract.
	MaxIterations int     `json:"maxIterations" yaml:"maxIterations"`
	Tolerance     float64 `json:"tolerance" yaml:"tolerance"`

	// GridResolution is the number of subdivisions per axis of the output
	// lattice, producing (GridResolution+1)³ grid points. Zero degenerates
	// to a single lattice point; negative values are rejected.
	GridResolution int `json:"gridResolution" yaml:"gridResolution"`
}

// DefaultConfig returns the configuration used when the caller supplies
// none.
func DefaultConfig() Config {
	return Config{
		KernelType:      Gaussian,
		KernelParameter: 1.0,
		SmoothingFactor: 0.01,
		MaxIterations:   100,
		Tolerance:       1e-8,
		GridResolution:  20,
	}
}

// Result is the output aggregate of one interpolation. GridPoints, Values
// and Confidence are parallel sequences of identical length with index
// correspondence; Confidence entries lie in [0,1], higher meaning nearer to
// the original data.
type Result struct {
	GridPoints []Point3D  `json:"gridPoints" yaml:"gridPoints"`
	Values     []float64  `json:"values" yaml:"values"`
	Confidence []float64  `json:"confidence" yaml:"confidence"`
	Statistics Statistics `json:"statistics" yaml:"statistics"`
}

// ProgressCallback receives the coarse percentage milestones of a running
// interpolation. Values are monotonically non-decreasing, starting at 0 and
// ending at 100 on success.
type ProgressCallback func(percent int)

// Progress milestones emitted at each stage boundary, weighted roughly by
// stage cost.
const (
	progressStart        = 0
	progressDistanceDone = 15
	progressKernelDone   = 30
	progressSolveDone    = 65
	progressGridDone     = 90
	progressDone         = 100
)

// Interpolator runs the interpolation pipeline. The zero value is usable;
// a progress callback is optional.
type Interpolator struct {
	progress ProgressCallback
}

// NewInterpolator returns an interpolator with no progress callback set.
func NewInterpolator() *Interpolator {
	return &Interpolator{}
}

// SetProgressCallback sets the callback invoked at each stage boundary.
func (it *Interpolator) SetProgressCallback(cb ProgressCallback) {
	it.progress = cb
}

func (it *Interpolator) report(percent int) {
	if it.progress != nil {
		it.progress(percent)
	}
}

// Interpolate fits an RBF interpolant to the given samples and evaluates it
// over the bounding-box lattice described by cfg.
//
// points and values must be index-aligned sequences of equal length; the
// i-th value belongs to the i-th point. Empty inputs produce an empty
// result rather than an error. All failures are terminal: no partial or
// degraded result is ever returned, and the caller retries with adjusted
// parameters (typically a larger smoothing factor after a
// SingularSystemError).
//
// Cancellation through ctx is honored between pipeline stages and between
// lattice slabs during grid evaluation; an in-flight solve runs to
// completion.
func (it *Interpolator) Interpolate(ctx context.Context, points []Point3D, values []float64, cfg Config) (*Result, error) {
	if err := validateRequest(points, values, cfg); err != nil {
		return nil, err
	}

	it.report(progressStart)

	if len(points) == 0 {
		it.report(progressDone)
		return &Result{
			GridPoints: []Point3D{},
			Values:     []float64{},
			Confidence: []float64{},
		}, nil
	}

	dist := buildDistanceMatrix(points)
	it.report(progressDistanceDone)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kernel := buildKernelMatrix(dist, cfg)
	it.report(progressKernelDone)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	weights, err := solveCoefficients(kernel, values)
	if err != nil {
		return nil, err
	}
	it.report(progressSolveDone)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gridPoints, fieldValues, confidence, err := evaluateGrid(ctx, points, weights, cfg)
	if err != nil {
		return nil, err
	}
	it.report(progressGridDone)

	result := &Result{
		GridPoints: gridPoints,
		Values:     fieldValues,
		Confidence: confidence,
		Statistics: summarize(fieldValues),
	}
	it.report(progressDone)

	return result, nil
}

func validateRequest(points []Point3D, values []float64, cfg Config) error {
	if len(points) != len(values) {
		return &InvalidConfigError{Reason: fmt.Sprintf(
			"points and values must be index-aligned: %d points, %d values", len(points), len(values))}
	}
	if !cfg.KernelType.valid() {
		return &InvalidConfigError{Reason: fmt.Sprintf("unsupported kernel type %q", cfg.KernelType)}
	}
	if cfg.KernelType.usesParameter() && cfg.KernelParameter <= 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf(
			"kernel parameter must be positive for kernel %q, got %g", cfg.KernelType, cfg.KernelParameter)}
	}
	if cfg.SmoothingFactor < 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf("smoothing factor must be non-negative, got %g", cfg.SmoothingFactor)}
	}
	if cfg.GridResolution < 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf("grid resolution must be non-negative, got %d", cfg.GridResolution)}
	}
	if cfg.MaxIterations < 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf("max iterations must be non-negative, got %d", cfg.MaxIterations)}
	}
	if cfg.Tolerance < 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf("tolerance must be non-negative, got %g", cfg.Tolerance)}
	}
	return nil
}
