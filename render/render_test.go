package render_test

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/field"
	"github.com/soypat/mcubes/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

const (
	// imgDelta a normalized imgDelta parameter to describe how close the matching
	// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
	imgDelta = 0.01
)

func sphereMesh(t testing.TB) mcubes.Mesh {
	f, err := field.Sphere(6.5)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mcubes.Extract(f, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.IsEmpty() {
		t.Fatal("empty sphere mesh")
	}
	return m
}

func TestMeshRenderer(t *testing.T) {
	m := sphereMesh(t)
	want, err := render.RenderAll(render.NewMeshRenderer(m))
	if err != nil {
		t.Fatal(err)
	}
	if len(want) != m.TriangleCount() {
		t.Fatalf("got %d triangles, want %d", len(want), m.TriangleCount())
	}
	for _, bufSize := range []int{1, 7, 1000} {
		r := render.NewMeshRenderer(m)
		buf := make([]ms3.Triangle, bufSize)
		var got []ms3.Triangle
		for {
			n, err := r.ReadTriangles(buf)
			got = append(got, buf[:n]...)
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatal(err)
			}
		}
		if len(got) != len(want) {
			t.Fatalf("buffer %d: got %d triangles, want %d", bufSize, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("buffer %d: triangle %d mismatch", bufSize, i)
			}
		}
	}
	tri := m.Triangle(3)
	if want[3][1] != (ms3.Vec{X: float32(tri[1].X), Y: float32(tri[1].Y), Z: float32(tri[1].Z)}) {
		t.Errorf("triangle vertex not converted to float32: %v vs %v", want[3][1], tri[1])
	}
	if _, err := render.NewMeshRenderer(m).ReadTriangles(nil); err != io.ErrShortBuffer {
		t.Errorf("expected short buffer error, got %v", err)
	}
}

func TestMeshRendererEmpty(t *testing.T) {
	n, err := render.NewMeshRenderer(mcubes.Mesh{}).ReadTriangles(make([]ms3.Triangle, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("got %d, %v; want 0, EOF", n, err)
	}
	model, err := render.RenderAll(render.NewMeshRenderer(mcubes.Mesh{}))
	if err != nil || len(model) != 0 {
		t.Errorf("got %d triangles, %v", len(model), err)
	}
}

func TestSTLCreateWriteRead(t *testing.T) {
	m := sphereMesh(t)
	path := filepath.Join(t.TempDir(), "sphere.stl")
	err := render.CreateSTL(path, render.NewMeshRenderer(m))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(render.NewMeshRenderer(m))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	n, err := render.WriteBinarySTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if n != 84+50*len(model) || n != b.Len() {
		t.Fatalf("wrote %d bytes for %d triangles", n, len(model))
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteBinarySTL and CreateSTL output length mismatch")
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteBinarySTL and CreateSTL output mismatch")
	}
	got, err := render.ReadBinarySTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("read %d triangles, want %d", len(got), len(model))
	}
	for i := range got {
		if got[i] != model[i] {
			t.Fatalf("triangle %d: read %v, wrote %v", i, got[i], model[i])
		}
	}
}

func TestSTLErrors(t *testing.T) {
	model, _ := render.RenderAll(render.NewMeshRenderer(sphereMesh(t)))
	var b bytes.Buffer
	render.WriteBinarySTL(&b, model)
	truncated := b.Bytes()[:b.Len()-10]
	if _, err := render.ReadBinarySTL(bytes.NewReader(truncated)); err == nil {
		t.Error("expected error reading truncated STL")
	}
	if _, err := render.ReadBinarySTL(bytes.NewReader(b.Bytes()[:40])); err == nil {
		t.Error("expected error reading truncated header")
	}
	// Empty models produce a valid file with no triangles.
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := render.CreateSTL(path, render.NewMeshRenderer(mcubes.Mesh{})); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	created, err := io.ReadAll(fp)
	if err != nil {
		t.Fatal(err)
	}
	var written bytes.Buffer
	n, err := render.WriteBinarySTL(&written, nil)
	if err != nil || n != len(created) || !bytes.Equal(written.Bytes(), created) {
		t.Fatalf("empty model: wrote %d bytes (%v), created %d bytes", n, err, len(created))
	}
	got, err := render.ReadBinarySTL(bytes.NewReader(created))
	if err != nil || len(got) != 0 {
		t.Errorf("empty STL read %d triangles, %v", len(got), err)
	}
}

func TestWriteOBJ(t *testing.T) {
	m := mcubes.Mesh{
		Positions: []r3.Vec{{}, {X: 1}, {Y: 0.5}},
		Normals:   []r3.Vec{{Z: 1}, {Z: 1}, {Z: -1}},
		Indices:   []uint32{0, 1, 2},
	}
	var b strings.Builder
	if err := render.WriteOBJ(&b, m); err != nil {
		t.Fatal(err)
	}
	const want = `# 3 vertices, 1 triangles
v 0 0 0
v 1 0 0
v 0 0.5 0
vn 0 0 1
vn 0 0 1
vn 0 0 -1
f 1//1 2//2 3//3
`
	if b.String() != want {
		t.Errorf("got\n%s\nwant\n%s", b.String(), want)
	}
	m.Indices = append(m.Indices, 0, 1, 3)
	if err := render.WriteOBJ(io.Discard, m); err == nil {
		t.Error("expected error for out of range index")
	}
}

func TestWriteOBJSphere(t *testing.T) {
	m := mcubes.Weld(sphereMesh(t))
	var b bytes.Buffer
	if err := render.WriteOBJ(&b, m); err != nil {
		t.Fatal(err)
	}
	var v, vn, f int
	for _, line := range strings.Split(b.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			v++
		case strings.HasPrefix(line, "vn "):
			vn++
		case strings.HasPrefix(line, "f "):
			f++
		}
	}
	if v != m.VertexCount() || vn != v || f != m.TriangleCount() {
		t.Errorf("got %d vertices, %d normals, %d faces for mesh with %d vertices, %d triangles",
			v, vn, f, m.VertexCount(), m.TriangleCount())
	}
}

func TestBuffers(t *testing.T) {
	m := sphereMesh(t)
	pos, norm, idx := render.Buffers(m)
	if len(pos) != m.VertexCount() || len(norm) != len(pos) || len(idx) != len(m.Indices) {
		t.Fatalf("buffer lengths %d %d %d", len(pos), len(norm), len(idx))
	}
	for i, p := range m.Positions {
		if pos[i].X != float32(p.X) || pos[i].Y != float32(p.Y) || pos[i].Z != float32(p.Z) {
			t.Fatalf("position %d: %v vs %v", i, pos[i], p)
		}
		if l := ms3.Norm(norm[i]); l < 0.999 || l > 1.001 {
			t.Fatalf("normal %d not unit: %v", i, norm[i])
		}
	}
	idx[0] = 1 << 30
	if m.Indices[0] == idx[0] {
		t.Error("index buffer aliases mesh indices")
	}
}

func TestPreview(t *testing.T) {
	m := sphereMesh(t)
	view := render.DefaultView()
	view.Width, view.Height = 160, 90
	img1, err := render.Preview(m, view)
	if err != nil {
		t.Fatal(err)
	}
	if b := img1.Bounds(); b.Dx() != view.Width || b.Dy() != view.Height {
		t.Fatalf("got image size %v", b)
	}
	img2, err := render.Preview(m, view)
	if err != nil {
		t.Fatal(err)
	}
	var b1, b2 bytes.Buffer
	if err := png.Encode(&b1, img1); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&b2, img2); err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1.Bytes(), b2.Bytes(), imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("preview rendering not deterministic")
	}
	// The sphere covers the image center.
	bg := img1.At(0, 0)
	if img1.At(view.Width/2, view.Height/2) == bg {
		t.Error("image center has background color")
	}
}

func TestPreviewErrors(t *testing.T) {
	if _, err := render.Preview(mcubes.Mesh{}, render.DefaultView()); err == nil {
		t.Error("expected error previewing empty mesh")
	}
	m := sphereMesh(t)
	for _, modify := range []func(v *render.View){
		func(v *render.View) { v.Width = 0 },
		func(v *render.View) { v.Supersample = 0 },
		func(v *render.View) { v.Near = 0 },
		func(v *render.View) { v.Far = v.Near },
		func(v *render.View) { v.FovY = 180 },
		func(v *render.View) { v.Up = r3.Vec{} },
		func(v *render.View) { v.Eye = v.LookAt },
	} {
		view := render.DefaultView()
		modify(&view)
		if _, err := render.Preview(m, view); err == nil {
			t.Errorf("expected error for view %+v", view)
		}
	}
}

func TestSavePreview(t *testing.T) {
	view := render.DefaultView()
	view.Width, view.Height, view.Supersample = 64, 48, 1
	path := filepath.Join(t.TempDir(), "sphere.png")
	if err := render.SavePreview(path, sphereMesh(t), view); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	img, err := png.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("saved image size %v", b)
	}
}

func BenchmarkCreateSTL(b *testing.B) {
	f, _ := field.Sphere(30)
	m, err := mcubes.Extract(f, 64, 0)
	if err != nil {
		b.Fatal(err)
	}
	path := filepath.Join(b.TempDir(), "bench.stl")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		render.CreateSTL(path, render.NewMeshRenderer(m))
	}
}
