/*

Integer lattice coordinates

*/

package mcubes

import "gonum.org/v1/gonum/spatial/r3"

// GridPoint is an integer coordinate of a lattice sample.
type GridPoint [3]int

// Add adds two vectors. Return v = a + b.
func (a GridPoint) Add(b GridPoint) GridPoint {
	return GridPoint{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub subtracts two vectors. Return v = a - b.
func (a GridPoint) Sub(b GridPoint) GridPoint {
	return GridPoint{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// AddScalar adds a scalar to each component of the vector.
func (a GridPoint) AddScalar(b int) GridPoint {
	return GridPoint{a[0] + b, a[1] + b, a[2] + b}
}

// ToV3 converts GridPoint (integer) to r3.Vec (float).
func (a GridPoint) ToV3() r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}
