// Command mcubes extracts the isosurface of a scalar field and writes it as
// an STL or OBJ mesh, optionally with a PNG preview.
//
// Settings are read from a TOML file given with -config. Flags set on the
// command line take precedence over the file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/field"
	"github.com/soypat/mcubes/internal/settings"
	"github.com/soypat/mcubes/internal/sink"
	"github.com/soypat/mcubes/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		cfgPath   string
		defaults  bool
		clamp     bool
		fromFlags = settings.Default()
	)
	flag.StringVar(&cfgPath, "config", "", "TOML settings file")
	flag.BoolVar(&defaults, "defaults", false, "print default settings as TOML and exit")
	flag.BoolVar(&clamp, "clamp", false, fmt.Sprintf("clamp isovalue to [%g, %g]", settings.IsoMin, settings.IsoMax))
	flag.IntVar(&fromFlags.GridSize, "n", fromFlags.GridSize, "grid points per axis")
	flag.Float64Var(&fromFlags.Isovalue, "iso", fromFlags.Isovalue, "isovalue")
	flag.StringVar(&fromFlags.Field, "field", fromFlags.Field, fmt.Sprintf("field to extract, one of %q", field.Names()))
	flag.Float64Var(&fromFlags.Radius, "r", fromFlags.Radius, "field radius in grid units")
	flag.IntVar(&fromFlags.Workers, "workers", fromFlags.Workers, "number of concurrent workers")
	flag.BoolVar(&fromFlags.Weld, "weld", fromFlags.Weld, "share vertices between adjacent cells")
	flag.StringVar(&fromFlags.Output, "o", fromFlags.Output, "output .stl or .obj file, optionally followed by .zst or .sz")
	flag.StringVar(&fromFlags.Preview, "png", fromFlags.Preview, "write a PNG preview to this file")
	flag.Parse()
	if defaults {
		return settings.Default().Encode(os.Stdout)
	}

	s := settings.Default()
	if cfgPath != "" {
		var err error
		s, err = settings.Load(cfgPath)
		if err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			s.GridSize = fromFlags.GridSize
		case "iso":
			s.Isovalue = fromFlags.Isovalue
		case "field":
			s.Field = fromFlags.Field
		case "r":
			s.Radius = fromFlags.Radius
		case "workers":
			s.Workers = fromFlags.Workers
		case "weld":
			s.Weld = fromFlags.Weld
		case "o":
			s.Output = fromFlags.Output
		case "png":
			s.Preview = fromFlags.Preview
		}
	})
	if clamp {
		s.Isovalue = settings.Clamp(s.Isovalue)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	return extract(s)
}

func extract(s settings.Settings) error {
	f, err := field.ByName(s.Field, s.Params())
	if err != nil {
		return err
	}
	start := time.Now()
	grid, err := mcubes.NewGrid(s.GridSize)
	if err != nil {
		return err
	}
	err = grid.EvaluateWorkers(f, s.Workers)
	if err != nil {
		return err
	}
	log.Printf("evaluated %s field on %d³ grid in %s", s.Field, s.GridSize, time.Since(start))

	start = time.Now()
	mesh := grid.Triangulate(s.Isovalue, mcubes.Config{Workers: s.Workers, Weld: s.Weld})
	log.Printf("extracted %d triangles, %d vertices at isovalue %g in %s",
		mesh.TriangleCount(), mesh.VertexCount(), s.Isovalue, time.Since(start))
	if mesh.IsEmpty() {
		log.Printf("isosurface at %g is empty, no output written", s.Isovalue)
		return nil
	}

	if err := writeMesh(s.Output, mesh); err != nil {
		return err
	}
	log.Printf("wrote %s", s.Output)
	if s.Preview != "" {
		if err := render.SavePreview(s.Preview, mesh, render.DefaultView()); err != nil {
			return err
		}
		log.Printf("wrote %s", s.Preview)
	}
	return nil
}

func writeMesh(path string, mesh mcubes.Mesh) (err error) {
	w, err := sink.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	switch sink.Format(path) {
	case ".stl":
		model, err := render.RenderAll(render.NewMeshRenderer(mesh))
		if err != nil {
			return err
		}
		_, err = render.WriteBinarySTL(w, model)
		return err
	case ".obj":
		return render.WriteOBJ(w, mesh)
	}
	return fmt.Errorf("unsupported output format %q", sink.Format(path))
}
