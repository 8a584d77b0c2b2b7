package d3

import "gonum.org/v1/gonum/spatial/r3"

// Box is a 3d axis aligned bounding box.
type Box r3.Box

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}
