package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"geofield/pkg/rbf"
)

// BoreholeSample is a single measurement of a stratigraphic boundary: the
// location of the borehole intersection and the scalar attached to it,
// typically the boundary elevation.
type BoreholeSample struct {
	// X, Y, Z locate the sample in the site coordinate system
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`

	// Value is the interpolated scalar, e.g. the elevation of the boundary
	Value float64 `yaml:"value" json:"value"`
}

// BoreholeSet is an ordered collection of samples belonging to one
// geological surface. Order is irrelevant to the math but is preserved so
// that points and values stay index-aligned.
type BoreholeSet struct {
	// Name identifies the surface the samples describe
	Name string `yaml:"name" json:"name"`

	// Samples are the borehole measurements
	Samples []BoreholeSample `yaml:"samples" json:"samples"`
}

// PointsAndValues splits the set into the parallel sequences the engine
// consumes. Both slices have the same length and index correspondence.
func (s *BoreholeSet) PointsAndValues() ([]rbf.Point3D, []float64) {
	points := make([]rbf.Point3D, len(s.Samples))
	values := make([]float64, len(s.Samples))
	for i, sample := range s.Samples {
		points[i] = rbf.Point3D{X: sample.X, Y: sample.Y, Z: sample.Z}
		values[i] = sample.Value
	}
	return points, values
}

// LoadBoreholeSet reads a borehole dataset from a YAML file.
func LoadBoreholeSet(path string) (*BoreholeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading borehole file: %w", err)
	}

	set := &BoreholeSet{}
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("error parsing borehole file: %w", err)
	}

	return set, nil
}
