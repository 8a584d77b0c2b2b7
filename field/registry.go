package field

import (
	"sort"

	"github.com/soypat/mcubes"
)

// Params configures fields selected by name.
type Params struct {
	// Radius is the characteristic size of the shape: sphere and cylinder
	// radius, tube mid-wall radius or cube half side. Ignored by ripple.
	Radius float64
	// Wall is the tube half wall thickness. Zero selects a fifth of Radius.
	Wall float64
}

var registry = map[string]func(p Params) (mcubes.Field, error){
	"sphere":          func(p Params) (mcubes.Field, error) { return Sphere(p.Radius) },
	"sphere-distance": func(p Params) (mcubes.Field, error) { return SphereDistance(p.Radius) },
	"cylinder":        func(p Params) (mcubes.Field, error) { return Cylinder(p.Radius) },
	"cube":            func(p Params) (mcubes.Field, error) { return Cube(p.Radius) },
	"ripple":          func(Params) (mcubes.Field, error) { return Ripple(0.003, demoRippleK) },
	"tube": func(p Params) (mcubes.Field, error) {
		wall := p.Wall
		if wall == 0 {
			wall = p.Radius / 5
		}
		return Tube(p.Radius, wall)
	},
}

// Names returns the sorted names accepted by ByName.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns the named field built with parameters p.
func ByName(name string, p Params) (mcubes.Field, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, ErrMsg("unknown field " + `"` + name + `"`)
	}
	return fn(p)
}
