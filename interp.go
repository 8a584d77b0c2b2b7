package mcubes

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// interpolate finds where the isosurface crosses the edge p1-p2 and blends
// the endpoint gradients into a unit normal. A normal that cannot be
// normalized is returned as the zero vector.
//
// The edge is always walked from its lower lattice point to the upper one
// so that cells sharing an edge produce bit-identical vertices. Edges with
// equal endpoint values, or any other input yielding a non-finite parameter,
// snap to the lower lattice point.
func interpolate(p1, p2 GridPoint, s1, s2 FieldSample, iso float64) (pos, normal r3.Vec) {
	if p2[0]+p2[1]+p2[2] < p1[0]+p1[1]+p1[2] {
		p1, p2 = p2, p1
		s1, s2 = s2, s1
	}
	mu := 0.0
	if s1.Value != s2.Value {
		mu = (iso - s1.Value) / (s2.Value - s1.Value)
	}
	if !isFinite(mu) {
		mu = 0
	}
	v1, v2 := p1.ToV3(), p2.ToV3()
	pos = r3.Add(v1, r3.Scale(mu, r3.Sub(v2, v1)))
	normal = r3.Add(r3.Scale(mu, s2.Gradient), r3.Scale(1-mu, s1.Gradient))
	return pos, unitOrZero(normal)
}

func unitOrZero(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || !isFinite(n) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
