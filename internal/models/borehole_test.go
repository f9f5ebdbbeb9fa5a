package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofield/pkg/rbf"
)

func TestPointsAndValuesAlignment(t *testing.T) {
	set := &BoreholeSet{
		Name: "clay-top",
		Samples: []BoreholeSample{
			{X: 0, Y: 0, Z: -2, Value: -2.1},
			{X: 10, Y: 0, Z: -3, Value: -3.4},
			{X: 0, Y: 10, Z: -2.5, Value: -2.8},
		},
	}

	points, values := set.PointsAndValues()
	require.Len(t, points, 3)
	require.Len(t, values, 3)

	for i, sample := range set.Samples {
		assert.Equal(t, rbf.Point3D{X: sample.X, Y: sample.Y, Z: sample.Z}, points[i])
		assert.Equal(t, sample.Value, values[i])
	}
}

func TestLoadBoreholeSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boreholes.yaml")
	data := `name: sand-base
samples:
  - {x: 0, y: 0, z: -5, value: -5.2}
  - {x: 25, y: 30, z: -6, value: -6.1}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	set, err := LoadBoreholeSet(path)
	require.NoError(t, err)

	assert.Equal(t, "sand-base", set.Name)
	require.Len(t, set.Samples, 2)
	assert.Equal(t, -6.1, set.Samples[1].Value)
	assert.Equal(t, 25.0, set.Samples[1].X)
}

func TestLoadBoreholeSetMissingFile(t *testing.T) {
	_, err := LoadBoreholeSet(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
