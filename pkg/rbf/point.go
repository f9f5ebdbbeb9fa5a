package rbf

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point3D is a location in the sample coordinate system.
type Point3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// euclidean returns the Euclidean distance between two points.
func euclidean(p, q Point3D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Compare implements the kdtree.Comparable interface.
func (p Point3D) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(Point3D)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	case 2:
		return p.Z - q.Z
	default:
		panic("illegal dimension")
	}
}

// Dims returns the number of dimensions for the KD-tree.
func (p Point3D) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between two points.
// The tree reports distances through this method, so callers must take
// the square root of any distance it returns.
func (p Point3D) Distance(c kdtree.Comparable) float64 {
	q := c.(Point3D)
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return dx*dx + dy*dy + dz*dz
}

// points3D is a collection of Point3D that satisfies kdtree.Interface.
type points3D []Point3D

func (p points3D) Index(i int) kdtree.Comparable         { return p[i] }
func (p points3D) Len() int                              { return len(p) }
func (p points3D) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements the kdtree.Interface method.
func (p points3D) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(pointPlane{points3D: p, Dim: d}, kdtree.MedianOfRandoms(pointPlane{points3D: p, Dim: d}, 100))
}

// pointPlane implements sort.Interface and kdtree.SortSlicer for points3D.
type pointPlane struct {
	points3D
	kdtree.Dim
}

func (p pointPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.points3D[i].X < p.points3D[j].X
	case 1:
		return p.points3D[i].Y < p.points3D[j].Y
	case 2:
		return p.points3D[i].Z < p.points3D[j].Z
	default:
		panic("illegal dimension")
	}
}

func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	return pointPlane{points3D: p.points3D[start:end], Dim: p.Dim}
}

func (p pointPlane) Swap(i, j int) {
	p.points3D[i], p.points3D[j] = p.points3D[j], p.points3D[i]
}
