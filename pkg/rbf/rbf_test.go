package rbf

import (
	"context"
	"errors"
	"math"
	"testing"
)

// TestFlatFieldInterpolation interpolates four corner samples of a unit
// square that all carry the same value; the fitted field should stay close
// to that constant across the grid and reproduce it at the corners.
func TestFlatFieldInterpolation(t *testing.T) {
	points := []Point3D{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
	}
	values := []float64{10, 10, 10, 10}

	cfg := Config{
		KernelType:      Gaussian,
		KernelParameter: 1,
		SmoothingFactor: 0.01,
		GridResolution:  2,
	}

	result, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)
	if err != nil {
		t.Fatalf("Interpolation failed: %v", err)
	}

	expectedLen := 3 * 3 * 3
	if len(result.GridPoints) != expectedLen {
		t.Fatalf("Expected %d grid points, got %d", expectedLen, len(result.GridPoints))
	}
	if len(result.Values) != expectedLen || len(result.Confidence) != expectedLen {
		t.Fatalf("Parallel sequences must share the grid length: %d values, %d confidence",
			len(result.Values), len(result.Confidence))
	}

	// Away from the samples a gaussian fit of a constant drifts, but it
	// should stay near the constant everywhere in the box
	for i, v := range result.Values {
		if math.Abs(v-10) > 3 {
			t.Errorf("Grid value %d = %.3f strayed too far from the flat field value 10", i, v)
		}
	}

	// At the sample locations the fit must be tight
	for i, gp := range result.GridPoints {
		for _, s := range points {
			if gp == s {
				if math.Abs(result.Values[i]-10) > 0.1 {
					t.Errorf("Value at sample location %v: expected ~10, got %.4f", gp, result.Values[i])
				}
			}
		}
	}
}

// TestExactInterpolation verifies that with zero smoothing the fitted field
// reproduces each sample value at its own location.
func TestExactInterpolation(t *testing.T) {
	points := []Point3D{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	}
	values := []float64{1, 2, 3, 4, 5}

	cfg := Config{
		KernelType:      Gaussian,
		KernelParameter: 1,
		SmoothingFactor: 0,
		GridResolution:  1,
	}

	dist := buildDistanceMatrix(points)
	kernel := buildKernelMatrix(dist, cfg)
	weights, err := solveCoefficients(kernel, values)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	for i, p := range points {
		fitted := evaluateAt(p, points, weights, cfg.KernelType, cfg.KernelParameter)
		if math.Abs(fitted-values[i]) > 1e-6 {
			t.Errorf("Fitted value at sample %d: expected %.6f, got %.6f", i, values[i], fitted)
		}
	}
}

// TestCoincidentSamplesFail verifies Scenario B: two coincident points with
// different values and no smoothing must surface a singular system.
func TestCoincidentSamplesFail(t *testing.T) {
	points := []Point3D{
		{1, 1, 1},
		{1, 1, 1},
	}
	values := []float64{5, 7}

	cfg := Config{
		KernelType:      Gaussian,
		KernelParameter: 1,
		SmoothingFactor: 0,
		GridResolution:  1,
	}

	_, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)

	var singular *SingularSystemError
	if !errors.As(err, &singular) {
		t.Fatalf("Expected SingularSystemError, got %v", err)
	}
}

// TestCoincidentSamplesWithSmoothing verifies the documented remedy: the
// same input succeeds once a smoothing factor is applied.
func TestCoincidentSamplesWithSmoothing(t *testing.T) {
	points := []Point3D{
		{1, 1, 1},
		{1, 1, 1},
		{2, 2, 2},
	}
	values := []float64{5, 7, 9}

	cfg := Config{
		KernelType:      Gaussian,
		KernelParameter: 1,
		SmoothingFactor: 0.1,
		GridResolution:  1,
	}

	if _, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg); err != nil {
		t.Fatalf("Smoothed interpolation should succeed, got %v", err)
	}
}

// TestDegenerateGrid verifies Scenario C: resolution 0 produces exactly one
// grid point at the bounding-box corner with a finite confidence.
func TestDegenerateGrid(t *testing.T) {
	points := []Point3D{
		{0, 0, 0},
		{1, 2, 3},
		{3, 1, 2},
	}
	values := []float64{1, 2, 3}

	cfg := Config{
		KernelType:      Gaussian,
		KernelParameter: 1,
		SmoothingFactor: 0.01,
		GridResolution:  0,
	}

	result, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)
	if err != nil {
		t.Fatalf("Interpolation failed: %v", err)
	}

	if len(result.GridPoints) != 1 {
		t.Fatalf("Expected exactly 1 grid point, got %d", len(result.GridPoints))
	}

	corner := result.GridPoints[0]
	if corner != (Point3D{0, 0, 0}) {
		t.Errorf("Expected the bounding-box corner (0,0,0), got %v", corner)
	}

	conf := result.Confidence[0]
	if math.IsNaN(conf) || conf < 0 || conf > 1 {
		t.Errorf("Confidence must be finite in [0,1], got %v", conf)
	}
	// The corner coincides with the first sample, so the degenerate lattice
	// rule applies at zero distance
	if conf != 1 {
		t.Errorf("Expected confidence 1 at a sample location, got %v", conf)
	}
}

// TestEmptyInput verifies Scenario D: zero samples yield an empty result
// with all-zero statistics, not an error.
func TestEmptyInput(t *testing.T) {
	result, err := NewInterpolator().Interpolate(context.Background(), nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Empty input should not fail: %v", err)
	}

	if len(result.GridPoints) != 0 || len(result.Values) != 0 || len(result.Confidence) != 0 {
		t.Errorf("Expected empty sequences, got %d/%d/%d",
			len(result.GridPoints), len(result.Values), len(result.Confidence))
	}
	if result.Statistics != (Statistics{}) {
		t.Errorf("Expected all-zero statistics, got %+v", result.Statistics)
	}
}

// TestMismatchedLengths verifies Scenario E: misaligned points and values
// are rejected before any computation, never silently truncated.
func TestMismatchedLengths(t *testing.T) {
	points := []Point3D{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	values := []float64{1, 2}

	_, err := NewInterpolator().Interpolate(context.Background(), points, values, DefaultConfig())

	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidConfigError, got %v", err)
	}
}

// TestInvalidConfigurations verifies the fail-fast validation paths
func TestInvalidConfigurations(t *testing.T) {
	points := []Point3D{{0, 0, 0}, {1, 1, 1}}
	values := []float64{1, 2}

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unsupported kernel", func(c *Config) { c.KernelType = "quintic" }},
		{"negative grid resolution", func(c *Config) { c.GridResolution = -1 }},
		{"negative smoothing", func(c *Config) { c.SmoothingFactor = -0.5 }},
		{"non-positive kernel parameter", func(c *Config) { c.KernelParameter = 0 }},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }},
		{"negative max iterations", func(c *Config) { c.MaxIterations = -1 }},
	}

	for _, tc := range testCases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)

		_, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)

		var invalid *InvalidConfigError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected InvalidConfigError, got %v", tc.name, err)
		}
	}
}

// TestConfidenceMonotonicity verifies that confidence is higher at a sample
// location than far from all samples.
func TestConfidenceMonotonicity(t *testing.T) {
	points := []Point3D{
		{0, 0, 0},
		{2, 2, 2},
	}
	values := []float64{1, 2}

	cfg := Config{
		KernelType:      Gaussian,
		KernelParameter: 1,
		SmoothingFactor: 0.01,
		GridResolution:  2,
	}

	result, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)
	if err != nil {
		t.Fatalf("Interpolation failed: %v", err)
	}

	// Grid is {0,1,2}^3 in x-fastest order: index 0 is the sample (0,0,0),
	// index 13 is the center (1,1,1), the farthest lattice point from both samples
	atSample := result.Confidence[0]
	atCenter := result.Confidence[13]

	if atSample != 1 {
		t.Errorf("Confidence at a sample location should be 1, got %v", atSample)
	}
	if atSample <= atCenter {
		t.Errorf("Confidence at sample (%v) should exceed confidence far from samples (%v)",
			atSample, atCenter)
	}
}

// TestDeterminism verifies bitwise-identical results across invocations
func TestDeterminism(t *testing.T) {
	points := scatterPoints(30)
	values := make([]float64, len(points))
	for i := range values {
		values[i] = math.Sin(float64(i) * 0.9)
	}

	cfg := Config{
		KernelType:      Multiquadric,
		KernelParameter: 0.5,
		SmoothingFactor: 0.001,
		GridResolution:  4,
	}

	first, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	for i := range first.Values {
		if first.Values[i] != second.Values[i] {
			t.Fatalf("Values diverge at %d: %v vs %v", i, first.Values[i], second.Values[i])
		}
		if first.Confidence[i] != second.Confidence[i] {
			t.Fatalf("Confidence diverges at %d: %v vs %v", i, first.Confidence[i], second.Confidence[i])
		}
	}
}

// TestProgressMilestones verifies the six monotonic progress notifications
func TestProgressMilestones(t *testing.T) {
	points := scatterPoints(10)
	values := make([]float64, len(points))
	for i := range values {
		values[i] = float64(i)
	}

	var milestones []int
	it := NewInterpolator()
	it.SetProgressCallback(func(percent int) {
		milestones = append(milestones, percent)
	})

	cfg := DefaultConfig()
	cfg.GridResolution = 2
	if _, err := it.Interpolate(context.Background(), points, values, cfg); err != nil {
		t.Fatalf("Interpolation failed: %v", err)
	}

	if len(milestones) != 6 {
		t.Fatalf("Expected 6 milestones, got %d: %v", len(milestones), milestones)
	}
	if milestones[0] != 0 {
		t.Errorf("First milestone should be 0, got %d", milestones[0])
	}
	if milestones[len(milestones)-1] != 100 {
		t.Errorf("Last milestone should be 100, got %d", milestones[len(milestones)-1])
	}
	for i := 1; i < len(milestones); i++ {
		if milestones[i] < milestones[i-1] {
			t.Errorf("Milestones must be non-decreasing: %v", milestones)
		}
	}
}

// TestCancellation verifies that a cancelled context stops the pipeline
// between stages.
func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points := scatterPoints(10)
	values := make([]float64, len(points))

	_, err := NewInterpolator().Interpolate(ctx, points, values, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

// TestStatisticsSummary verifies the statistics over a known field
func TestStatisticsSummary(t *testing.T) {
	stats := summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if math.Abs(stats.MeanValue-5) > 1e-12 {
		t.Errorf("Expected mean 5, got %g", stats.MeanValue)
	}
	if math.Abs(stats.StdDev-2) > 1e-12 {
		t.Errorf("Expected population stddev 2, got %g", stats.StdDev)
	}
	if stats.MinValue != 2 || stats.MaxValue != 9 {
		t.Errorf("Expected min 2 and max 9, got %g and %g", stats.MinValue, stats.MaxValue)
	}
	if stats.RMSE != stats.StdDev {
		t.Errorf("RMSE proxy must equal the stddev, got %g vs %g", stats.RMSE, stats.StdDev)
	}

	if empty := summarize(nil); empty != (Statistics{}) {
		t.Errorf("Empty field should produce zero statistics, got %+v", empty)
	}
}

// BenchmarkInterpolate benchmarks the full pipeline on a moderate dataset
func BenchmarkInterpolate(b *testing.B) {
	points := scatterPoints(100)
	values := make([]float64, len(points))
	for i := range values {
		values[i] = math.Sin(float64(i) * 0.3)
	}

	cfg := DefaultConfig()
	cfg.GridResolution = 10

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewInterpolator().Interpolate(context.Background(), points, values, cfg); err != nil {
			b.Fatalf("Interpolation failed: %v", err)
		}
	}
}
