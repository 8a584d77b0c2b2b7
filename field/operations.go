package field

import (
	"math"

	"github.com/soypat/mcubes"
	"gonum.org/v1/gonum/spatial/r3"
)

// Translate moves the field f by t.
func Translate(f mcubes.Field, t r3.Vec) mcubes.Field {
	return func(x, y, z float64) float64 {
		return f(x-t.X, y-t.Y, z-t.Z)
	}
}

// Scale scales the field's domain by k so that features of f grow k times larger.
// The field value is multiplied by k so that distance fields remain distance fields.
// k must be non-zero.
func Scale(f mcubes.Field, k float64) mcubes.Field {
	if k == 0 {
		panic("zero field scale")
	}
	inv := 1 / k
	return func(x, y, z float64) float64 {
		return k * f(x*inv, y*inv, z*inv)
	}
}

// Union returns the minimum of the fields. It panics if called with no fields.
func Union(fields ...mcubes.Field) mcubes.Field {
	return reduce(math.Min, fields)
}

// Intersect returns the maximum of the fields. It panics if called with no fields.
func Intersect(fields ...mcubes.Field) mcubes.Field {
	return reduce(math.Max, fields)
}

// Negate flips the sign of f, swapping the inside and outside of its surfaces.
func Negate(f mcubes.Field) mcubes.Field {
	return func(x, y, z float64) float64 { return -f(x, y, z) }
}

func reduce(op func(a, b float64) float64, fields []mcubes.Field) mcubes.Field {
	if len(fields) == 0 {
		panic("no fields to combine")
	}
	fields = append([]mcubes.Field(nil), fields...)
	return func(x, y, z float64) float64 {
		v := fields[0](x, y, z)
		for _, f := range fields[1:] {
			v = op(v, f(x, y, z))
		}
		return v
	}
}

// SDF3 is implemented by signed distance functions defined over r3.
type SDF3 interface {
	Evaluate(p r3.Vec) float64
}

// FromSDF3 adapts s to a Field.
func FromSDF3(s SDF3) mcubes.Field {
	return func(x, y, z float64) float64 {
		return s.Evaluate(r3.Vec{X: x, Y: y, Z: z})
	}
}
