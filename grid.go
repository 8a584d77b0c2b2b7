package mcubes

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// FieldSample is the field value and its unnormalized gradient at a lattice point.
type FieldSample struct {
	Value    float64
	Gradient r3.Vec
}

// Grid is a dense cubic lattice of field samples. Points span [-N/2, N/2) on
// each axis, N being the grid size. Samples are stored x-major in a single slice.
type Grid struct {
	n       int
	min     int
	samples []FieldSample
}

// NewGrid allocates a lattice of n points per axis. Samples are zero until
// Evaluate is called.
func NewGrid(n int) (*Grid, error) {
	if n <= 1 || n > MaxGridSize {
		return nil, gridSizeErr(n)
	}
	return &Grid{
		n:       n,
		min:     -n / 2,
		samples: make([]FieldSample, n*n*n),
	}, nil
}

// Size returns the amount of points per axis.
func (g *Grid) Size() int { return g.n }

// Min returns the lattice point with the lowest coordinates.
func (g *Grid) Min() GridPoint { return GridPoint{g.min, g.min, g.min} }

// Max returns the lattice point with the highest coordinates.
func (g *Grid) Max() GridPoint { return g.Min().AddScalar(g.n - 1) }

// Contains reports whether p is a point of the lattice.
func (g *Grid) Contains(p GridPoint) bool {
	hi := g.min + g.n
	return p[0] >= g.min && p[0] < hi &&
		p[1] >= g.min && p[1] < hi &&
		p[2] >= g.min && p[2] < hi
}

// At returns the sample at p. It panics if p is outside the lattice.
func (g *Grid) At(p GridPoint) FieldSample {
	if !g.Contains(p) {
		panic("grid point out of lattice bounds")
	}
	return g.samples[g.index(p)]
}

// Value returns the field value at p. It panics if p is outside the lattice.
func (g *Grid) Value(p GridPoint) float64 {
	return g.At(p).Value
}

func (g *Grid) index(p GridPoint) int {
	x, y, z := p[0]-g.min, p[1]-g.min, p[2]-g.min
	return (x*g.n+y)*g.n + z
}

// Evaluate samples f and its gradient at every lattice point, overwriting
// any previous contents. Each point costs 7 evaluations of f.
func (g *Grid) Evaluate(f Field) {
	for ix := 0; ix < g.n; ix++ {
		g.evaluatePlane(f, ix)
	}
}

// EvaluateWorkers is like Evaluate but shares the work between workers
// goroutines, one lattice plane of constant x at a time.
func (g *Grid) EvaluateWorkers(f Field, workers int) error {
	if f == nil {
		return errNilField
	}
	if workers < 2 {
		g.Evaluate(f)
		return nil
	}
	var group errgroup.Group
	group.SetLimit(workers)
	for ix := 0; ix < g.n; ix++ {
		ix := ix
		group.Go(func() error {
			g.evaluatePlane(f, ix)
			return nil
		})
	}
	return group.Wait()
}

func (g *Grid) evaluatePlane(f Field, ix int) {
	x := float64(g.min + ix)
	i := ix * g.n * g.n
	for iy := 0; iy < g.n; iy++ {
		y := float64(g.min + iy)
		for iz := 0; iz < g.n; iz++ {
			z := float64(g.min + iz)
			g.samples[i] = FieldSample{
				Value:    f(x, y, z),
				Gradient: Gradient(f, x, y, z),
			}
			i++
		}
	}
}
