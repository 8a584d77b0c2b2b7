package mcubes

import "gonum.org/v1/gonum/spatial/r3"

// edgeKey identifies a lattice edge by its lower end point and axis (0=x, 1=y, 2=z).
// Adjacent cells crossing the same edge interpolate it from the same two
// samples, so the key fully determines the vertex position and normal.
type edgeKey struct {
	p    GridPoint
	axis uint8
}

// latticeEdge returns the key of edge e of the cell at origin.
func latticeEdge(origin GridPoint, e int) edgeKey {
	a := cellCorners[cellEdges[e][0]]
	b := cellCorners[cellEdges[e][1]]
	var k edgeKey
	for i := range k.p {
		if a[i] != b[i] {
			k.axis = uint8(i)
		}
		k.p[i] = origin[i] + min(a[i], b[i])
	}
	return k
}

func weldBatches(batches []batch, nIndices int) Mesh {
	m := Mesh{Indices: make([]uint32, 0, nIndices)}
	seen := make(map[edgeKey]uint32)
	var remap []uint32
	for bi := range batches {
		b := &batches[bi]
		remap = remap[:0]
		for i, key := range b.keys {
			idx, ok := seen[key]
			if !ok {
				idx = uint32(len(m.Positions))
				seen[key] = idx
				m.Positions = append(m.Positions, b.Positions[i])
				m.Normals = append(m.Normals, b.Normals[i])
			}
			remap = append(remap, idx)
		}
		for _, local := range b.Indices {
			m.Indices = append(m.Indices, remap[local])
		}
	}
	return m
}

// Weld returns a copy of m where vertices with identical position and normal
// are shared. It is useful for meshes not produced with Config.Weld.
func Weld(m Mesh) Mesh {
	type vertex struct{ pos, normal r3.Vec }
	out := Mesh{Indices: make([]uint32, 0, len(m.Indices))}
	seen := make(map[vertex]uint32, len(m.Positions)/4)
	remap := make([]uint32, len(m.Positions))
	for i := range m.Positions {
		v := vertex{pos: m.Positions[i], normal: m.Normals[i]}
		idx, ok := seen[v]
		if !ok {
			idx = uint32(len(out.Positions))
			seen[v] = idx
			out.Positions = append(out.Positions, v.pos)
			out.Normals = append(out.Normals, v.normal)
		}
		remap[i] = idx
	}
	for _, idx := range m.Indices {
		out.Indices = append(out.Indices, remap[idx])
	}
	return out
}
