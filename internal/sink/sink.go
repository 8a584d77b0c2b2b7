// Package sink opens output files that are transparently compressed
// according to their extension.
package sink

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Compression extensions.
const (
	ExtZstd   = ".zst"
	ExtSnappy = ".sz"
)

// Format returns the extension of path once any compression extension is
// removed, in lower case. "mesh.STL.zst" has format ".stl".
func Format(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ExtZstd || ext == ExtSnappy {
		path = strings.TrimSuffix(path, filepath.Ext(path))
		ext = strings.ToLower(filepath.Ext(path))
	}
	return ext
}

// Writer writes to a file through an optional compressor.
type Writer struct {
	file   *os.File
	stream io.WriteCloser
}

// Create creates the file at path. Writes are zstd compressed if path ends
// in ".zst" and snappy framed if it ends in ".sz".
func Create(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &Writer{file: file}
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtZstd:
		enc, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		w.stream = enc
	case ExtSnappy:
		w.stream = snappy.NewBufferedWriter(file)
	}
	return w, nil
}

func (w *Writer) Write(b []byte) (int, error) {
	if w.stream != nil {
		return w.stream.Write(b)
	}
	return w.file.Write(b)
}

// Close flushes the compressor and closes the file.
func (w *Writer) Close() error {
	var err error
	if w.stream != nil {
		err = w.stream.Close()
	}
	return errors.Join(err, w.file.Close())
}

// Reader reads a file written by Writer.
type Reader struct {
	file   *os.File
	stream io.Reader
	zstd   *zstd.Decoder
}

// Open opens the file at path, decompressing according to its extension.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{file: file, stream: file}
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtZstd:
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		r.zstd = dec
		r.stream = dec
	case ExtSnappy:
		r.stream = snappy.NewReader(file)
	}
	return r, nil
}

func (r *Reader) Read(b []byte) (int, error) { return r.stream.Read(b) }

// Close releases the decompressor and closes the file.
func (r *Reader) Close() error {
	if r.zstd != nil {
		r.zstd.Close()
	}
	return r.file.Close()
}
