package sink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		path, want string
	}{
		{"mesh.stl", ".stl"},
		{"out/mesh.OBJ", ".obj"},
		{"mesh.stl.zst", ".stl"},
		{"mesh.obj.sz", ".obj"},
		{"mesh.zst", ""},
		{"mesh", ""},
	} {
		if got := Format(test.path); got != test.want {
			t.Errorf("Format(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte("v 0.25 -1 3\nvn 0 0 1\n"), 4096)
	for _, name := range []string{"plain.obj", "zstd.obj.zst", "snappy.obj.sz"} {
		path := filepath.Join(dir, name)
		w, err := Create(path)
		if err != nil {
			t.Fatal(err)
		}
		n, err := w.Write(data)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(data) {
			t.Fatalf("%s: short write %d", name, n)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		compressed := filepath.Ext(path) != ".obj"
		if compressed && info.Size() >= int64(len(data)) {
			t.Errorf("%s: %d bytes on disk not compressed from %d", name, info.Size(), len(data))
		} else if !compressed && info.Size() != int64(len(data)) {
			t.Errorf("%s: %d bytes on disk, want %d", name, info.Size(), len(data))
		}

		r, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Close(); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%s: read back %d bytes differing from the %d written", name, len(got), len(data))
		}
	}
}

func TestCreateBadPath(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "mesh.stl.zst"))
	if err == nil {
		t.Fatal("expected error creating file in missing directory")
	}
	_, err = Open(filepath.Join(t.TempDir(), "missing.stl"))
	if err == nil {
		t.Fatal("expected error opening missing file")
	}
}
