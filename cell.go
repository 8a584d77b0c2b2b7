package mcubes

import "math"

// cellCorners are the corner offsets of a cell relative to its minimum corner.
// The order must match the lookup tables.
var cellCorners = [8]GridPoint{
	{0, 0, 0},
	{1, 0, 0},
	{1, 0, 1},
	{0, 0, 1},
	{0, 1, 0},
	{1, 1, 0},
	{1, 1, 1},
	{0, 1, 1},
}

// cellEdges are the corner index pairs of the 12 cell edges:
// bottom ring, top ring and then verticals.
var cellEdges = [12][2]uint8{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// cell holds the lattice samples at the corners of one cell.
type cell struct {
	origin  GridPoint
	samples [8]FieldSample
}

func (g *Grid) cellAt(origin GridPoint) (c cell) {
	c.origin = origin
	for i, off := range cellCorners {
		c.samples[i] = g.samples[g.index(origin.Add(off))]
	}
	return c
}

// configIndex returns the cell configuration: bit i is set when corner i
// lies strictly below iso. Non-finite samples are never below iso.
func (c *cell) configIndex(iso float64) uint8 {
	var idx uint8
	for i := range c.samples {
		if below(c.samples[i].Value, iso) {
			idx |= 1 << i
		}
	}
	return idx
}

func below(v, iso float64) bool {
	return v < iso && !math.IsNaN(v) && !math.IsInf(v, 0)
}
