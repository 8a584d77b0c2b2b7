package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxInclude(t *testing.T) {
	bb := Box{Min: r3.Vec{X: 1, Y: 1, Z: 1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	bb = bb.Include(r3.Vec{X: -2, Y: 3, Z: 1})
	bb = bb.Include(r3.Vec{X: 0, Y: 0, Z: 5})
	want := Box{Min: r3.Vec{X: -2, Y: 0, Z: 1}, Max: r3.Vec{X: 1, Y: 3, Z: 5}}
	if bb != want {
		t.Errorf("got %+v, want %+v", bb, want)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(r3.Vec{X: -1e300, Y: 2, Z: 0}) {
		t.Error("finite vector reported not finite")
	}
	for _, v := range []r3.Vec{
		{X: math.NaN()},
		{Y: math.Inf(1)},
		{Z: math.Inf(-1)},
		{X: math.Inf(1), Y: math.Inf(-1)},
	} {
		if IsFinite(v) {
			t.Errorf("%v reported finite", v)
		}
	}
}
