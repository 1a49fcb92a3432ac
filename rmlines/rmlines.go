// Provides decoding of reMarkable .lines files (version 5 of the
// digital-paper stroke format) into an abstract document model,
// which can then be consumed by painting drivers.
// See for example relineate/rmsvg or relineate/rmraster.
package rmlines

import (
	"io"
	"os"
)

// Device canvas size, in native tablet coordinates.
const (
	DeviceWidth  = 1404
	DeviceHeight = 1872
)

// Document is the root decoded artifact. It is immutable after
// decoding and owned by the caller.
type Document struct {
	Version int
	Layers  []Layer
}

// Layer groups strokes sharing a z-order. Later layers are painted
// on top of earlier ones.
type Layer struct {
	Strokes []Stroke
}

// Stroke is one continuous pen gesture.
type Stroke struct {
	Brush BrushType
	Color BrushColor

	// Unknown is a float field of the stroke record whose meaning has
	// not been established; it is kept as read.
	Unknown   float32
	BaseWidth float32

	Points []Point
}

// Point is one pen sample. Values are transcribed from the stream
// without clamping; range sanitization is a renderer concern.
type Point struct {
	X, Y      float32
	Speed     float32
	Direction float32
	Width     float32
	Pressure  float32
}

// Diagnostics receives debug messages emitted while decoding.
// A *log.Logger satisfies it. It is always passed in explicitly,
// never ambient; nil disables reporting.
type Diagnostics interface {
	Printf(format string, v ...interface{})
}

// ReadDocumentStream decodes a version 5 .lines stream.
func ReadDocumentStream(stream io.Reader, diag Diagnostics) (*Document, error) {
	buf, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return ReadDocument(buf, diag)
}

// ReadFile decodes the named .lines file.
func ReadFile(path string, diag Diagnostics) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadDocumentStream(fin, diag)
}
