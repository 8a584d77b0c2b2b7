package mcubes

import (
	"errors"
	"fmt"

	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Normals[i] is the normal of Positions[i]
// and every consecutive triple of Indices forms one triangle.
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Indices) == 0 }

// Triangle returns the vertex positions of the i'th triangle.
func (m *Mesh) Triangle(i int) [3]r3.Vec {
	idx := m.Indices[3*i : 3*i+3]
	return [3]r3.Vec{m.Positions[idx[0]], m.Positions[idx[1]], m.Positions[idx[2]]}
}

// Bounds returns the bounding box of the mesh vertices.
// An empty mesh has a zero box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Positions) == 0 {
		return r3.Box{}
	}
	bb := d3.Box{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		bb = bb.Include(p)
	}
	return r3.Box(bb)
}

// Validate checks the mesh's structural invariants and that vertex data is finite.
func (m *Mesh) Validate() error {
	if len(m.Positions) != len(m.Normals) {
		return fmt.Errorf("%d positions but %d normals", len(m.Positions), len(m.Normals))
	}
	if len(m.Indices)%3 != 0 {
		return errors.New("index count not a multiple of 3")
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("index %d out of range: %d >= %d", i, idx, len(m.Positions))
		}
	}
	for i := range m.Positions {
		if !d3.IsFinite(m.Positions[i]) || !d3.IsFinite(m.Normals[i]) {
			return fmt.Errorf("vertex %d is not finite", i)
		}
	}
	return nil
}

// appendMesh appends the contents of b to m, offsetting b's indices.
func (m *Mesh) appendMesh(b *Mesh) {
	off := uint32(len(m.Positions))
	m.Positions = append(m.Positions, b.Positions...)
	m.Normals = append(m.Normals, b.Normals...)
	for _, idx := range b.Indices {
		m.Indices = append(m.Indices, idx+off)
	}
}
