package rmlines

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

// lineWriter builds little-endian .lines buffers for tests.
type lineWriter struct {
	buf []byte
}

func (w *lineWriter) str(s string) *lineWriter {
	w.buf = append(w.buf, s...)
	return w
}

func (w *lineWriter) u32(v uint32) *lineWriter {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return w
}

func (w *lineWriter) i32(v int32) *lineWriter { return w.u32(uint32(v)) }

func (w *lineWriter) f32(v float32) *lineWriter { return w.u32(math.Float32bits(v)) }

// buildSample returns a document with one layer holding one
// three-point fineliner stroke.
func buildSample() []byte {
	w := &lineWriter{}
	w.str(headerV5)
	w.i32(1)                // layers
	w.i32(1)                // strokes
	w.i32(int32(Fineliner)) // brush
	w.i32(int32(Black))     // color
	w.u32(0)                // padding
	w.f32(0)                // unknown
	w.f32(2)                // base width
	w.i32(3)                // points
	for _, pt := range [][2]float32{{0, 0}, {10, 0}, {10, 10}} {
		w.f32(pt[0]).f32(pt[1]) // x, y
		w.f32(1).f32(0)         // speed, direction
		w.f32(1).f32(0.5)       // width, pressure
	}
	return w.buf
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(buildSample(), nil)
	test.T(t, err, nil)
	test.T(t, doc.Version, 5)
	test.T(t, len(doc.Layers), 1)
	test.T(t, len(doc.Layers[0].Strokes), 1)

	s := doc.Layers[0].Strokes[0]
	test.T(t, s.Brush, Fineliner)
	test.T(t, s.Color, Black)
	test.T(t, s.BaseWidth, float32(2))
	test.T(t, len(s.Points), 3)
	test.T(t, s.Points[1].X, float32(10))
	test.T(t, s.Points[1].Y, float32(0))
	test.T(t, s.Points[2].Y, float32(10))
	test.T(t, s.Points[0].Pressure, float32(0.5))
	test.T(t, s.Points[0].Width, float32(1))
}

func TestReadDocumentStream(t *testing.T) {
	doc, err := ReadDocumentStream(bytes.NewReader(buildSample()), nil)
	test.T(t, err, nil)
	test.T(t, len(doc.Layers), 1)
}

func TestReadDocumentEmpty(t *testing.T) {
	w := &lineWriter{}
	w.str(headerV5).i32(0)
	doc, err := ReadDocument(w.buf, nil)
	test.T(t, err, nil)
	test.T(t, len(doc.Layers), 0)
}

func TestReadDocumentZeroPoints(t *testing.T) {
	w := &lineWriter{}
	w.str(headerV5).i32(1).i32(1)
	w.i32(int32(Marker)).i32(int32(Grey)).u32(0).f32(0).f32(3).i32(0)
	doc, err := ReadDocument(w.buf, nil)
	test.T(t, err, nil)
	test.T(t, len(doc.Layers[0].Strokes[0].Points), 0)
}

// Any buffer cut strictly before its declared end must fail with a
// truncation error, never a partial document.
func TestReadDocumentTruncated(t *testing.T) {
	sample := buildSample()
	for n := 0; n < len(sample); n++ {
		t.Run(fmt.Sprintf("%d", n), func(t *testing.T) {
			doc, err := ReadDocument(sample[:n], nil)
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("truncation at %d: got %v, want ErrTruncated", n, err)
			}
			if doc != nil {
				t.Fatalf("truncation at %d: got a partial document", n)
			}
		})
	}
}

func TestReadDocumentVersionMismatch(t *testing.T) {
	sample := buildSample()
	sample[bytes.IndexByte(sample, '5')] = '3'
	_, err := ReadDocument(sample, nil)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("got %v, want ErrVersionMismatch", err)
	}
}

func TestReadDocumentMalformed(t *testing.T) {
	var tts = []struct {
		name  string
		build func() []byte
	}{
		{"negative layer count", func() []byte {
			w := &lineWriter{}
			return w.str(headerV5).i32(-1).buf
		}},
		{"negative stroke count", func() []byte {
			w := &lineWriter{}
			return w.str(headerV5).i32(1).i32(-4).buf
		}},
		{"negative point count", func() []byte {
			w := &lineWriter{}
			w.str(headerV5).i32(1).i32(1)
			return w.i32(int32(Fineliner)).i32(int32(Black)).u32(0).f32(0).f32(2).i32(-7).buf
		}},
		// A count whose payload could never fit the whole input is
		// internally inconsistent, not a shortened file.
		{"absurd layer count", func() []byte {
			w := &lineWriter{}
			return w.str(headerV5).i32(math.MaxInt32).buf
		}},
		{"absurd stroke count", func() []byte {
			w := &lineWriter{}
			return w.str(headerV5).i32(1).i32(math.MaxInt32).buf
		}},
		{"absurd point count", func() []byte {
			w := &lineWriter{}
			w.str(headerV5).i32(1).i32(1)
			return w.i32(int32(Fineliner)).i32(int32(Black)).u32(0).f32(0).f32(2).i32(1 << 30).buf
		}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(tt.build(), nil)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("got %v, want ErrMalformed", err)
			}
		})
	}
}

type sink struct {
	lines []string
}

func (s *sink) Printf(format string, v ...interface{}) {
	s.lines = append(s.lines, fmt.Sprintf(format, v...))
}

// Unrecognized brush and color values are content, not structure:
// they decode losslessly and only produce diagnostics.
func TestReadDocumentUnknownBrush(t *testing.T) {
	w := &lineWriter{}
	w.str(headerV5).i32(1).i32(1)
	w.i32(99).i32(7).u32(0).f32(0).f32(2).i32(1)
	w.f32(1).f32(2).f32(0).f32(0).f32(1).f32(1)

	diag := &sink{}
	doc, err := ReadDocument(w.buf, diag)
	test.T(t, err, nil)
	s := doc.Layers[0].Strokes[0]
	test.T(t, int32(s.Brush), int32(99))
	test.T(t, int32(s.Color), int32(7))
	test.T(t, s.Brush.Known(), false)
	test.T(t, s.Color.Known(), false)
	test.T(t, len(diag.lines), 3) // layer count plus one per unrecognized value
}

// A four-byte buffer cannot even hold the header.
func TestReadDocumentTinyBuffer(t *testing.T) {
	_, err := ReadDocument([]byte("reMa"), nil)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}
