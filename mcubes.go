// Package mcubes extracts isosurfaces from scalar fields sampled on a
// regular cubic lattice using the Marching Cubes method.
//
// The lattice spans the integer coordinates [-N/2, N/2) on every axis for a
// grid of size N. Every point stores the field value and a central difference
// gradient which is blended along crossed edges to produce vertex normals.
//
// The usual entry point is Extract:
//
//	mesh, err := mcubes.Extract(func(x, y, z float64) float64 {
//		return x*x + y*y + z*z - 100
//	}, 32, 0)
//
// Callers that re-triangulate the same field at different isovalues should
// keep a Grid around and call Grid.Triangulate, which skips field evaluation.
package mcubes

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a scalar field. It must be deterministic and defined one unit
// beyond the lattice bounds, where it is queried for gradient estimation.
// With Config.Workers above 1 it is called from several goroutines at once
// and must be safe for concurrent use.
type Field func(x, y, z float64) float64

// MaxGridSize is the largest grid size accepted. Above it the vertex count of
// a worst case isosurface, 15 per cell, no longer fits uint32 mesh indices.
const MaxGridSize = 660

// ErrGridSize is returned for lattices with less than 2 or more than
// MaxGridSize points per axis.
var ErrGridSize = errors.New("grid size must be in range [2, 660]")

var errNilField = errors.New("nil field")

// Config holds optional extraction parameters. The zero value performs a
// single threaded extraction with one vertex per triangle corner.
type Config struct {
	// Workers is the amount of goroutines sampling the field and
	// marching cells. Values under 2 run on the calling goroutine.
	// Output does not depend on Workers.
	Workers int
	// Weld shares vertices between triangles that cross the same lattice
	// edge. Disabled by default.
	Weld bool
}

// Extract samples field on a lattice of gridSize points per axis and returns
// the triangulated isosurface where field equals isovalue.
func Extract(field Field, gridSize int, isovalue float64) (Mesh, error) {
	return Config{}.Extract(field, gridSize, isovalue)
}

// Extract is like the package level Extract but uses the receiver's configuration.
func (cfg Config) Extract(field Field, gridSize int, isovalue float64) (Mesh, error) {
	if field == nil {
		return Mesh{}, errNilField
	}
	g, err := NewGrid(gridSize)
	if err != nil {
		return Mesh{}, err
	}
	err = g.EvaluateWorkers(field, cfg.Workers)
	if err != nil {
		return Mesh{}, err
	}
	return g.Triangulate(isovalue, cfg), nil
}

// Gradient estimates the gradient of f at (x,y,z) with unit step central
// differences. The result is not normalized.
func Gradient(f Field, x, y, z float64) r3.Vec {
	return r3.Vec{
		X: f(x+1, y, z) - f(x-1, y, z),
		Y: f(x, y+1, z) - f(x, y-1, z),
		Z: f(x, y, z+1) - f(x, y, z-1),
	}
}

func gridSizeErr(n int) error {
	return fmt.Errorf("%w: got %d", ErrGridSize, n)
}
