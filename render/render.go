// Package render converts extracted meshes into triangle streams, file
// formats and preview images.
package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once all triangles
// have been read, possibly along with the last triangles.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle) (n int, err error)
}

type meshRenderer struct {
	m    mcubes.Mesh
	next int
}

// NewMeshRenderer returns a Renderer over the triangles of m in index order.
// Vertex positions are converted to float32.
func NewMeshRenderer(m mcubes.Mesh) Renderer {
	return &meshRenderer{m: m}
}

func (r *meshRenderer) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	total := r.m.TriangleCount()
	for n < len(dst) && r.next < total {
		dst[n] = triangle(r.m, r.next)
		n++
		r.next++
	}
	if r.next == total {
		return n, io.EOF
	}
	return n, nil
}

func triangle(m mcubes.Mesh, i int) ms3.Triangle {
	t := m.Triangle(i)
	return ms3.Triangle{vec(t[0]), vec(t[1]), vec(t[2])}
}
