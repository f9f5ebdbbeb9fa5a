package rbf

import "fmt"

// InvalidConfigError reports a request rejected during validation, before
// any matrix is built.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// SingularSystemError reports that Gaussian elimination found no usable
// pivot in some column. It typically means duplicate or near-duplicate
// sample points combined with a zero smoothing factor; the remedy is to
// raise the smoothing factor or deduplicate the samples.
type SingularSystemError struct {
	// Column is the elimination column whose best pivot was rejected.
	Column int

	// Pivot is the magnitude of the rejected pivot.
	Pivot float64
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular system: pivot magnitude %.3e at column %d is below %.0e; increase smoothingFactor or deduplicate samples",
		e.Pivot, e.Column, pivotThreshold)
}
