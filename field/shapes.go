// Package field provides scalar fields for isosurface extraction along with
// combinators to build new fields out of existing ones.
//
// Fields are either exact signed distance functions (SphereDistance, Cylinder)
// or implicit functions whose zero set is the shape (Sphere, Tube, Cube, Ripple).
// Both kinds work with any isovalue.
package field

import (
	"errors"
	"math"

	"github.com/soypat/mcubes"
)

// Sphere returns x²+y²+z²-r². Its gradient grows with distance from the origin.
func Sphere(r float64) (mcubes.Field, error) {
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, errors.New("zero or negative sphere radius")
	}
	r2 := r * r
	return func(x, y, z float64) float64 {
		return x*x + y*y + z*z - r2
	}, nil
}

// SphereDistance returns the signed distance to a sphere of radius r centered at the origin.
func SphereDistance(r float64) (mcubes.Field, error) {
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, errors.New("zero or negative sphere radius")
	}
	return func(x, y, z float64) float64 {
		return math.Sqrt(x*x+y*y+z*z) - r
	}, nil
}

// Cylinder returns the signed distance to an infinite cylinder of radius r along z.
func Cylinder(r float64) (mcubes.Field, error) {
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, errors.New("zero or negative cylinder radius")
	}
	return func(x, y, _ float64) float64 {
		return math.Hypot(x, y) - r
	}, nil
}

// Tube returns a hollow tube along z with mid-wall radius r and wall thickness 2*halfWall.
// The field is positive inside the wall.
func Tube(r, halfWall float64) (mcubes.Field, error) {
	switch {
	case !(r > 0) || math.IsInf(r, 0):
		return nil, errors.New("zero or negative tube radius")
	case !(halfWall > 0) || halfWall > r:
		return nil, errors.New("tube wall must be positive and no thicker than radius")
	}
	return func(x, y, _ float64) float64 {
		return -math.Abs(r-math.Hypot(x, y)) + halfWall
	}, nil
}

// Cube returns the Chebyshev distance to an axis aligned cube of side 2*halfSide.
func Cube(halfSide float64) (mcubes.Field, error) {
	if !(halfSide > 0) || math.IsInf(halfSide, 0) {
		return nil, errors.New("zero or negative cube dimension")
	}
	return func(x, y, z float64) float64 {
		return math.Max(math.Abs(x), math.Max(math.Abs(y), math.Abs(z))) - halfSide
	}, nil
}

// Ripple returns zk*z² - cos(k*sqrt(x²+y²)), a bowl of concentric ripples
// with angular wavenumber k.
func Ripple(zk, k float64) (mcubes.Field, error) {
	if !(zk > 0) || math.IsInf(zk, 0) {
		return nil, errors.New("ripple z factor must be positive")
	} else if math.IsNaN(k) || math.IsInf(k, 0) {
		return nil, errors.New("bad ripple wavenumber")
	}
	return func(x, y, z float64) float64 {
		return zk*z*z - math.Cos(k*math.Hypot(x, y))
	}, nil
}

// Constant returns a field with value c everywhere. It has no isosurface.
func Constant(c float64) mcubes.Field {
	return func(_, _, _ float64) float64 { return c }
}

// demoRippleK is the demo ripple wavenumber, 0.1 times a truncated π.
const demoRippleK = 0.1 * 3.14

// Demo returns one of the four demonstration fields:
//
//	0: Ripple(0.003, 0.314)
//	1: Sphere(50)
//	2: Tube(10, 2)
//	3: Cube(30)
func Demo(i int) (mcubes.Field, error) {
	switch i {
	case 0:
		return Ripple(0.003, demoRippleK)
	case 1:
		return Sphere(50)
	case 2:
		return Tube(10, 2)
	case 3:
		return Cube(30)
	}
	return nil, ErrMsg("demo field index out of range [0,3]")
}

// DemoIsoRange returns the isovalue slider range of demo field i.
// The range is empty (lo == hi == 0) if i is not a demo index.
func DemoIsoRange(i int) (lo, hi float64) {
	switch i {
	case 0:
		return -0.5, 5
	case 1:
		return -1000, 2000
	case 2:
		return -6, 1
	case 3:
		return -20, 20
	}
	return 0, 0
}
