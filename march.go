package mcubes

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeVertex is an interpolated crossing on a cell edge.
type edgeVertex struct {
	pos    r3.Vec
	normal r3.Vec
}

// batch is the output of marching a slab of cells.
type batch struct {
	Mesh
	// keys holds the lattice edge of each vertex. Only set when welding.
	keys []edgeKey
}

// Triangulate marches all cells of an evaluated lattice and returns the
// isosurface at iso. The grid is only read so it may be triangulated again
// at another isovalue without re-evaluating the field.
func (g *Grid) Triangulate(iso float64, cfg Config) Mesh {
	cells := g.n - 1
	if cfg.Workers < 2 {
		var b batch
		for ix := 0; ix < cells; ix++ {
			g.marchSlab(&b, ix, iso, cfg.Weld)
		}
		return mergeBatches([]batch{b}, cfg.Weld)
	}
	// One batch per slab keeps the merged output in scan order.
	batches := make([]batch, cells)
	var group errgroup.Group
	group.SetLimit(cfg.Workers)
	for ix := 0; ix < cells; ix++ {
		ix := ix
		group.Go(func() error {
			g.marchSlab(&batches[ix], ix, iso, cfg.Weld)
			return nil
		})
	}
	group.Wait()
	return mergeBatches(batches, cfg.Weld)
}

// marchSlab appends the triangles of all cells with minimum corner x = min+ix.
func (g *Grid) marchSlab(dst *batch, ix int, iso float64, weld bool) {
	var verts [12]edgeVertex
	x := g.min + ix
	hi := g.min + g.n - 1
	for y := g.min; y < hi; y++ {
		for z := g.min; z < hi; z++ {
			c := g.cellAt(GridPoint{x, y, z})
			idx := c.configIndex(iso)
			mask := mcEdgeTable[idx]
			if mask == 0 {
				continue
			}
			for e := range cellEdges {
				if mask&(1<<e) == 0 {
					continue
				}
				a, b := cellEdges[e][0], cellEdges[e][1]
				verts[e].pos, verts[e].normal = interpolate(
					c.origin.Add(cellCorners[a]), c.origin.Add(cellCorners[b]),
					c.samples[a], c.samples[b], iso,
				)
			}
			tris := &mcTriangleTable[idx]
			for i := 0; tris[i] != -1; i += 3 {
				for _, e := range tris[i : i+3] {
					dst.Indices = append(dst.Indices, uint32(len(dst.Positions)))
					dst.Positions = append(dst.Positions, verts[e].pos)
					dst.Normals = append(dst.Normals, verts[e].normal)
					if weld {
						dst.keys = append(dst.keys, latticeEdge(c.origin, int(e)))
					}
				}
			}
		}
	}
}

// mergeBatches concatenates batches in order. When welding, vertices sharing
// a lattice edge collapse onto the first occurrence.
func mergeBatches(batches []batch, weld bool) Mesh {
	if !weld && len(batches) == 1 {
		return batches[0].Mesh
	}
	var nv, ni int
	for i := range batches {
		nv += len(batches[i].Positions)
		ni += len(batches[i].Indices)
	}
	if nv == 0 {
		return Mesh{}
	}
	if !weld {
		m := Mesh{
			Positions: make([]r3.Vec, 0, nv),
			Normals:   make([]r3.Vec, 0, nv),
			Indices:   make([]uint32, 0, ni),
		}
		for i := range batches {
			m.appendMesh(&batches[i].Mesh)
		}
		return m
	}
	return weldBatches(batches, ni)
}
