package rmlines

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// headerV5 is the fixed 43-byte tag opening every version 5 stream.
const headerV5 = "reMarkable .lines file, version=5          "

// Decode failures. Structural problems are fatal for the whole
// document; content-level oddities (unrecognized brush or color
// values) are not errors and are normalized by the renderer instead.
var (
	// ErrTruncated means the buffer ended before a declared section
	// was complete.
	ErrTruncated = errors.New("rmlines: truncated input")

	// ErrVersionMismatch means the header tag does not identify a
	// version 5 stream.
	ErrVersionMismatch = errors.New("rmlines: version mismatch")

	// ErrMalformed means a declared count is internally inconsistent,
	// detected before the corresponding reads are attempted.
	ErrMalformed = errors.New("rmlines: malformed input")
)

// Smallest encoded sizes, used to validate counts up front.
const (
	layerRecordSize  = 4  // stroke count
	strokeRecordSize = 24 // brush, color, padding, unknown, base width, point count
	pointRecordSize  = 24 // six float32 fields
)

// reader is a cursor over the input buffer. The first failure sticks;
// all subsequent reads yield zero values.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(kind error, format string, args ...interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
	}
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.pos < n {
		r.fail(ErrTruncated, "need %d bytes at offset %d, have %d", n, r.pos, len(r.buf)-r.pos)
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) uint32() uint32 {
	b := r.bytes(4)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) int32() int32 { return int32(r.uint32()) }

func (r *reader) float32() float32 { return math.Float32frombits(r.uint32()) }

// count reads a section length and validates it before any element
// is read: negative counts and counts whose payload could not fit the
// whole input are malformed, counts merely exceeding the remaining
// bytes are truncations.
func (r *reader) count(what string, recordSize int) int {
	n := r.int32()
	if r.err != nil {
		return 0
	}
	if n < 0 {
		r.fail(ErrMalformed, "negative %s count %d at offset %d", what, n, r.pos-4)
		return 0
	}
	need := int64(n) * int64(recordSize)
	if need > int64(len(r.buf)) {
		r.fail(ErrMalformed, "%s count %d requires %d bytes, more than the whole %d-byte input", what, n, need, len(r.buf))
		return 0
	}
	if need > int64(len(r.buf)-r.pos) {
		r.fail(ErrTruncated, "%s count %d exceeds the %d remaining bytes", what, n, len(r.buf)-r.pos)
		return 0
	}
	return int(n)
}

// ReadDocument decodes a version 5 .lines byte buffer. The buffer is
// not retained. No field is range-clamped: the document is a lossless
// transcription of the stream. On error no partial document is
// returned.
func ReadDocument(buf []byte, diag Diagnostics) (*Document, error) {
	r := &reader{buf: buf}
	if len(buf) < len(headerV5) {
		r.fail(ErrTruncated, "header requires %d bytes, have %d", len(headerV5), len(buf))
		return nil, r.err
	}
	if header := string(r.bytes(len(headerV5))); header != headerV5 {
		r.fail(ErrVersionMismatch, "header %q", header)
		return nil, r.err
	}

	doc := &Document{Version: 5}
	nLayers := r.count("layer", layerRecordSize)
	if diag != nil && r.err == nil {
		diag.Printf("decoding %d layers", nLayers)
	}
	doc.Layers = make([]Layer, nLayers)
	for i := range doc.Layers {
		if err := r.readLayer(&doc.Layers[i], diag); err != nil {
			return nil, err
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return doc, nil
}

func (r *reader) readLayer(layer *Layer, diag Diagnostics) error {
	nStrokes := r.count("stroke", strokeRecordSize)
	if r.err != nil {
		return r.err
	}
	layer.Strokes = make([]Stroke, nStrokes)
	for i := range layer.Strokes {
		s := &layer.Strokes[i]
		s.Brush = BrushType(r.int32())
		s.Color = BrushColor(r.int32())
		_ = r.uint32() // padding, preserved only for alignment
		s.Unknown = r.float32()
		s.BaseWidth = r.float32()
		nPoints := r.count("point", pointRecordSize)
		if r.err != nil {
			return r.err
		}
		if diag != nil {
			if !s.Brush.Known() {
				diag.Printf("unrecognized brush type %d, a fallback will be used", int32(s.Brush))
			}
			if !s.Color.Known() {
				diag.Printf("unrecognized brush color %d, a fallback will be used", int32(s.Color))
			}
		}
		s.Points = make([]Point, nPoints)
		for j := range s.Points {
			s.Points[j] = Point{
				X:         r.float32(),
				Y:         r.float32(),
				Speed:     r.float32(),
				Direction: r.float32(),
				Width:     r.float32(),
				Pressure:  r.float32(),
			}
		}
		if r.err != nil {
			return r.err
		}
	}
	return nil
}
