package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"gonum.org/v1/gonum/spatial/r3"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	const startSize = 1024
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// Buffers returns float32 vertex position and normal buffers along with the
// index buffer of m, ready for upload to a GPU.
func Buffers(m mcubes.Mesh) (pos, norm []ms3.Vec, idx []uint32) {
	pos = make([]ms3.Vec, len(m.Positions))
	norm = make([]ms3.Vec, len(m.Normals))
	for i := range m.Positions {
		pos[i] = vec(m.Positions[i])
		norm[i] = vec(m.Normals[i])
	}
	idx = append(idx, m.Indices...)
	return pos, norm, idx
}

func vec(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
