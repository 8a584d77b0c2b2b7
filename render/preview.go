package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/mcubes"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera and output size of a preview render.
// The mesh is fit into the bi-unit cube centered at the origin before drawing
// so the camera may be placed without knowledge of the mesh size.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye  r3.Vec
	Near float64
	Far  float64
	// Vertical field of view in degrees.
	FovY float64
	// Output width and height in pixels.
	Width, Height int
	// Supersampling factor. Images are rendered Supersample times larger
	// and downsampled for antialiasing.
	Supersample int
}

// DefaultView returns an isometric view of the bi-unit cube.
func DefaultView() View {
	return View{
		Up:          r3.Vec{Z: 1},
		Eye:         r3.Vec{X: 3, Y: 3, Z: 3},
		Near:        1,
		Far:         10,
		FovY:        30,
		Width:       768,
		Height:      432,
		Supersample: 2,
	}
}

func (v View) validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return errors.New("preview dimensions must be positive")
	case v.Supersample <= 0:
		return errors.New("preview supersample must be positive")
	case !(v.Near > 0) || !(v.Far > v.Near):
		return errors.New("preview clip planes must satisfy 0 < near < far")
	case !(v.FovY > 0 && v.FovY < 180):
		return errors.New("preview field of view must be in (0, 180) degrees")
	case r3.Norm(v.Up) == 0 || v.Eye == v.LookAt:
		return errors.New("degenerate preview camera")
	}
	return nil
}

// Preview renders m with Phong shading using the mesh vertex normals.
// Vertices with zero normals are shaded with their face normal.
func Preview(m mcubes.Mesh, view View) (image.Image, error) {
	if m.IsEmpty() {
		return nil, errors.New("empty mesh")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := view.validate(); err != nil {
		return nil, err
	}
	mesh := fauxMesh(m)
	var (
		width, height = view.Width, view.Height
		scale         = view.Supersample
		eye           = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)          // camera position
		center        = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z) // view center position
		up            = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light         = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color         = fauxgl.HexColor("#468966")                            // object color
	)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.FovY, aspect, view.Near, view.Far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	}
	return img, nil
}

// SavePreview renders m and saves the result as a PNG image at path.
func SavePreview(path string, m mcubes.Mesh, view View) error {
	img, err := Preview(m, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fauxMesh(m mcubes.Mesh) *fauxgl.Mesh {
	vertex := func(i uint32) fauxgl.Vertex {
		p, n := m.Positions[i], m.Normals[i]
		return fauxgl.Vertex{
			Position: fauxgl.V(p.X, p.Y, p.Z),
			Normal:   fauxgl.V(n.X, n.Y, n.Z),
		}
	}
	triangles := make([]*fauxgl.Triangle, 0, m.TriangleCount())
	for i := 0; i < len(m.Indices); i += 3 {
		triangles = append(triangles, fauxgl.NewTriangle(
			vertex(m.Indices[i]), vertex(m.Indices[i+1]), vertex(m.Indices[i+2]),
		))
	}
	return fauxgl.NewTriangleMesh(triangles)
}
