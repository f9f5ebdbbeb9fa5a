package rbf

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes the interpolated field.
type Statistics struct {
	MeanValue float64 `json:"meanValue" yaml:"meanValue"`
	StdDev    float64 `json:"stdDev" yaml:"stdDev"`
	MinValue  float64 `json:"minValue" yaml:"minValue"`
	MaxValue  float64 `json:"maxValue" yaml:"maxValue"`

	// RMSE is a simplified proxy kept under its historical name: it equals
	// the population standard deviation of the output field, not a true
	// root-mean-square error against held-out ground truth.
	RMSE float64 `json:"rmse" yaml:"rmse"`
}

// summarize computes mean, population standard deviation, min and max over
// the output field. An empty field yields all-zero statistics.
func summarize(values []float64) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}

	std := stat.PopStdDev(values, nil)
	return Statistics{
		MeanValue: stat.Mean(values, nil),
		StdDev:    std,
		MinValue:  floats.Min(values),
		MaxValue:  floats.Max(values),
		RMSE:      std,
	}
}
