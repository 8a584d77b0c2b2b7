// Package settings loads extraction settings from TOML files.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/field"
	"github.com/soypat/mcubes/internal/sink"
)

// Isovalue range of the interactive slider.
const (
	IsoMin = -0.5
	IsoMax = 5.0
)

// Settings configures a single extraction run.
type Settings struct {
	GridSize int     `toml:"grid_size"`
	Isovalue float64 `toml:"isovalue"`
	Field    string  `toml:"field"`
	Radius   float64 `toml:"radius"`
	Workers  int     `toml:"workers"`
	Weld     bool    `toml:"weld"`
	// Output mesh file. Extension selects STL or OBJ, optionally followed
	// by a compression extension.
	Output string `toml:"output"`
	// Preview PNG file. Empty disables the preview.
	Preview string `toml:"preview,omitempty"`
}

// Default returns settings that extract a sphere at the default isovalue.
func Default() Settings {
	return Settings{
		GridSize: 64,
		Isovalue: 0,
		Field:    "sphere",
		Radius:   24,
		Workers:  1,
		Output:   "mesh.stl",
	}
}

// Load reads settings from a TOML file at path. Keys absent from the file
// keep their Default values. Unknown keys are an error.
func Load(path string) (Settings, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer fp.Close()
	s, err := Decode(fp)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads TOML settings from r over Default and validates them.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return Settings{}, fmt.Errorf("%w:\n%s", err, serr.String())
		} else if errors.As(err, &derr) {
			row, col := derr.Position()
			return Settings{}, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return Settings{}, err
	}
	return s, s.Validate()
}

// Encode writes s to w in TOML format.
func (s Settings) Encode(w io.Writer) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(b))
	return err
}

// Validate checks settings are usable for an extraction.
func (s Settings) Validate() error {
	switch {
	case s.GridSize < 2 || s.GridSize > mcubes.MaxGridSize:
		return fmt.Errorf("grid_size must be in range [2, %d], got %d", mcubes.MaxGridSize, s.GridSize)
	case math.IsNaN(s.Isovalue) || math.IsInf(s.Isovalue, 0):
		return errors.New("isovalue must be finite")
	case s.Workers < 0:
		return fmt.Errorf("negative workers %d", s.Workers)
	case s.Output == "":
		return errors.New("empty output path")
	}
	if f := sink.Format(s.Output); f != ".stl" && f != ".obj" {
		return fmt.Errorf("output %q must be an .stl or .obj file", s.Output)
	}
	if _, err := field.ByName(s.Field, s.Params()); err != nil {
		return err
	}
	return nil
}

// Params returns the field parameters selected by s.
func (s Settings) Params() field.Params {
	return field.Params{Radius: s.Radius}
}

// Clamp limits iso to [IsoMin, IsoMax].
func Clamp(iso float64) float64 {
	return math.Max(IsoMin, math.Min(IsoMax, iso))
}
