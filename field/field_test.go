package field_test

import (
	"math"
	"strings"
	"testing"

	sdfx "github.com/deadsy/sdfx/sdf"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/field"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestShapes(t *testing.T) {
	sphere, _ := field.Sphere(2)
	sdist, _ := field.SphereDistance(2)
	cyl, _ := field.Cylinder(3)
	tube, _ := field.Tube(10, 2)
	cube, _ := field.Cube(30)
	ripple, _ := field.Ripple(0.003, 0.1*math.Pi)
	for _, test := range []struct {
		name    string
		f       mcubes.Field
		p       r3.Vec
		want    float64
		epsilon float64
	}{
		{"sphere origin", sphere, r3.Vec{}, -4, 0},
		{"sphere surface", sphere, r3.Vec{Y: 2}, 0, 0},
		{"sphere outside", sphere, r3.Vec{X: 1, Y: 2, Z: 3}, 10, 0},
		{"sphere distance", sdist, r3.Vec{X: 3, Y: 4}, 3, 1e-12},
		{"cylinder ignores z", cyl, r3.Vec{X: 3, Z: 1e6}, 0, 0},
		{"cylinder axis", cyl, r3.Vec{Z: -4}, -3, 0},
		{"tube wall", tube, r3.Vec{X: 10}, 2, 0},
		{"tube inner face", tube, r3.Vec{Y: 8}, 0, 0},
		{"tube bore", tube, r3.Vec{}, -8, 0},
		{"cube face", cube, r3.Vec{X: 1, Y: -30, Z: 2}, 0, 0},
		{"cube corner", cube, r3.Vec{X: 31, Y: -31, Z: 31}, 1, 0},
		{"ripple origin", ripple, r3.Vec{}, -1, 0},
		{"ripple crest", ripple, r3.Vec{X: 10, Z: 10}, 0.3 + 1, 1e-12},
	} {
		got := test.f(test.p.X, test.p.Y, test.p.Z)
		if math.Abs(got-test.want) > test.epsilon {
			t.Errorf("%s: f(%v) = %g, want %g", test.name, test.p, got, test.want)
		}
	}
}

func TestShapeErrors(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	for _, test := range []struct {
		name string
		fn   func() (mcubes.Field, error)
	}{
		{"sphere zero", func() (mcubes.Field, error) { return field.Sphere(0) }},
		{"sphere nan", func() (mcubes.Field, error) { return field.Sphere(nan) }},
		{"sphere distance negative", func() (mcubes.Field, error) { return field.SphereDistance(-1) }},
		{"cylinder inf", func() (mcubes.Field, error) { return field.Cylinder(inf) }},
		{"tube no wall", func() (mcubes.Field, error) { return field.Tube(10, 0) }},
		{"tube thick wall", func() (mcubes.Field, error) { return field.Tube(1, 2) }},
		{"cube negative", func() (mcubes.Field, error) { return field.Cube(-3) }},
		{"ripple flat", func() (mcubes.Field, error) { return field.Ripple(0, 1) }},
		{"ripple nan", func() (mcubes.Field, error) { return field.Ripple(1, nan) }},
		{"demo", func() (mcubes.Field, error) { return field.Demo(4) }},
	} {
		f, err := test.fn()
		if err == nil {
			t.Errorf("%s: expected error", test.name)
		}
		if f != nil {
			t.Errorf("%s: expected nil field on error", test.name)
		}
	}
}

func TestDemo(t *testing.T) {
	// A point on each demo surface.
	surface := []r3.Vec{
		{Z: math.Sqrt(1 / 0.003)},
		{Z: 50},
		{X: 12},
		{X: 30, Y: 5, Z: -5},
	}
	for i, p := range surface {
		f, err := field.Demo(i)
		if err != nil {
			t.Fatal(err)
		}
		if got := f(p.X, p.Y, p.Z); math.Abs(got) > 1e-12 {
			t.Errorf("demo %d: f(%v) = %g, want 0", i, p, got)
		}
		lo, hi := field.DemoIsoRange(i)
		if !(lo < 0 && 0 < hi) {
			t.Errorf("demo %d: isovalue range [%g, %g] excludes zero", i, lo, hi)
		}
	}
	if lo, hi := field.DemoIsoRange(-1); lo != 0 || hi != 0 {
		t.Errorf("got range [%g, %g] for bad demo index", lo, hi)
	}
}

func TestOperations(t *testing.T) {
	a, _ := field.SphereDistance(1)
	b := field.Translate(a, r3.Vec{X: 3})
	if got := b(3, 0, 0); got != -1 {
		t.Errorf("translated center got %g", got)
	}
	u := field.Union(a, b)
	i := field.Intersect(a, b)
	for _, test := range []struct {
		p         r3.Vec
		union, is float64
	}{
		{r3.Vec{}, -1, 2},
		{r3.Vec{X: 3}, -1, 2},
		{r3.Vec{X: 1.5}, 0.5, 0.5},
	} {
		if got := u(test.p.X, test.p.Y, test.p.Z); got != test.union {
			t.Errorf("union at %v got %g, want %g", test.p, got, test.union)
		}
		if got := i(test.p.X, test.p.Y, test.p.Z); got != test.is {
			t.Errorf("intersect at %v got %g, want %g", test.p, got, test.is)
		}
	}
	s := field.Scale(a, 4)
	if got := s(0, 8, 0); got != 4 {
		t.Errorf("scaled distance got %g, want 4", got)
	}
	if got := field.Negate(a)(0, 0, 0); got != 1 {
		t.Errorf("negated got %g", got)
	}
	if got := field.Constant(7)(1, 2, 3); got != 7 {
		t.Errorf("constant got %g", got)
	}
}

func TestRegistry(t *testing.T) {
	names := field.Names()
	if len(names) == 0 {
		t.Fatal("no registered fields")
	}
	for i, name := range names {
		if i > 0 && names[i-1] >= name {
			t.Errorf("names not sorted: %q", names)
		}
		f, err := field.ByName(name, field.Params{Radius: 5})
		if err != nil {
			t.Errorf("%s: %s", name, err)
			continue
		}
		m, err := mcubes.Extract(f, 16, 0)
		if err != nil {
			t.Fatal(err)
		}
		if m.IsEmpty() {
			t.Errorf("%s: no surface at radius 5 in 16 grid", name)
		}
	}
	_, err := field.ByName("teapot", field.Params{Radius: 1})
	if err == nil || !strings.Contains(err.Error(), "teapot") {
		t.Errorf("expected unknown field error, got %v", err)
	}
	if _, err := field.ByName("sphere", field.Params{}); err == nil {
		t.Error("expected error for zero radius")
	}
}

type sdfxAdapter struct{ s sdfx.SDF3 }

func (a sdfxAdapter) Evaluate(p r3.Vec) float64 {
	return a.s.Evaluate(sdfx.V3{X: p.X, Y: p.Y, Z: p.Z})
}

func TestFromSDF3(t *testing.T) {
	box, err := sdfx.Box3D(sdfx.V3{X: 8, Y: 6, Z: 4}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := field.FromSDF3(sdfxAdapter{box})
	if got := f(4, 0, 0); math.Abs(got) > 1e-12 {
		t.Errorf("box face got %g", got)
	}
	m, err := mcubes.Extract(f, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	bb := m.Bounds()
	want := r3.Vec{X: 4, Y: 3, Z: 2}
	if math.Abs(bb.Max.X-want.X) > 1e-9 || math.Abs(bb.Max.Y-want.Y) > 1e-9 || math.Abs(bb.Max.Z-want.Z) > 1e-9 {
		t.Errorf("box mesh bounds %v, want max %v", bb, want)
	}
}
