package rmrender

import (
	"image/color"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/relineate/relineate/rmlines"
)

// Renderer-side sanity bounds for effective widths, in source canvas
// units. The decoder passes values through unclamped; out-of-range
// dynamics are tamed here so every valid document produces output.
const (
	minStrokeWidth = 0.1
	maxStrokeWidth = 100
)

// Options parametrizes a render pass.
type Options struct {
	// Transform maps device coordinates onto the output canvas, see
	// Viewport. The zero value renders at device coordinates.
	Transform Matrix2D

	// Smooth replaces straight point-to-point spans with quadratic
	// midpoint smoothing. Each span stays a separate segment so the
	// per-segment width profile is preserved.
	Smooth bool
}

// Segment is one point-to-point span of a stroke. A stroke whose
// width varies along its length is emitted as one segment per span,
// each carrying its own width, rather than as a single path with an
// averaged width.
type Segment struct {
	Ops   Path
	Width float64
}

// StrokePath binds the resolved style of one stroke to its segments.
type StrokePath struct {
	Color    color.NRGBA
	Opacity  float64
	Segments []Segment
}

// RenderedLayer holds the strokes of one layer in drawing order.
type RenderedLayer struct {
	Strokes []StrokePath
}

// Page is the rendered form of a document: layers in z-order, strokes
// in drawing order. It is produced by Render and replayed onto
// drivers with Draw.
type Page []RenderedLayer

// Render converts a decoded document into drawing primitives. It
// never fails: unrecognized brush or color values degrade to
// fallbacks, degenerate strokes contribute no primitives. Rendering
// has no hidden state; the same document renders to the same page.
func Render(doc *rmlines.Document, opts *Options) Page {
	if opts == nil {
		opts = &Options{}
	}
	M := opts.Transform
	if M == (Matrix2D{}) {
		M = Identity
	}
	page := make(Page, len(doc.Layers))
	for i, layer := range doc.Layers {
		strokes := make([]StrokePath, len(layer.Strokes))
		for j := range layer.Strokes {
			strokes[j] = renderStroke(&layer.Strokes[j], M, opts.Smooth)
		}
		page[i] = RenderedLayer{Strokes: strokes}
	}
	return page
}

// Draw renders the document directly onto a driver.
func Draw(doc *rmlines.Document, d Driver, opts *Options) {
	Render(doc, opts).Draw(d)
}

// Draw replays the page onto a driver, following (layer index, stroke
// index) order regardless of how the page was produced.
func (page Page) Draw(d Driver) {
	for i, layer := range page {
		d.BeginLayer(i)
		for _, stroke := range layer.Strokes {
			for _, seg := range stroke.Segments {
				d.Clear()
				d.SetStroke(fToFixed(seg.Width), stroke.Color, stroke.Opacity)
				for _, op := range seg.Ops {
					op.drawTo(d)
				}
				d.Stop(false)
				d.Draw()
			}
		}
		d.EndLayer()
	}
}

// effectiveWidth applies the brush formula, the sanity clamp and the
// canvas scale.
func effectiveWidth(style BrushStyle, base float64, pt rmlines.Point, scale float64) float64 {
	w := style.Width(base, pt)
	if math.IsNaN(w) || w < minStrokeWidth {
		w = minStrokeWidth
	} else if w > maxStrokeWidth {
		w = maxStrokeWidth
	}
	return w * scale
}

func renderStroke(s *rmlines.Stroke, M Matrix2D, smooth bool) StrokePath {
	style := StyleFor(s.Brush)
	sp := StrokePath{
		Color:   ResolveColor(s.Brush, s.Color),
		Opacity: style.Opacity,
	}
	n := len(s.Points)
	if n == 0 {
		return sp
	}

	base := float64(s.BaseWidth)
	scale := M.lengthScale()
	pts := make([]fixed.Point26_6, n)
	for i, pt := range s.Points {
		pts[i] = M.point(float64(pt.X), float64(pt.Y))
	}

	if n == 1 {
		w := effectiveWidth(style, base, s.Points[0], scale)
		var p Path
		p.Dot(pts[0], fToFixed(w/2))
		sp.Segments = []Segment{{Ops: p, Width: w}}
		return sp
	}

	// Midpoint smoothing uses the samples as control points and the
	// span midpoints as knots; with fewer than three samples there is
	// nothing to smooth.
	knot := func(i int) fixed.Point26_6 {
		return fixed.Point26_6{X: (pts[i].X + pts[i+1].X) / 2, Y: (pts[i].Y + pts[i+1].Y) / 2}
	}

	sp.Segments = make([]Segment, 0, n-1)
	for i := 1; i < n; i++ {
		w := effectiveWidth(style, base, s.Points[i], scale)
		var p Path
		switch {
		case !smooth || n < 3:
			p.Start(pts[i-1])
			p.Line(pts[i])
		case i == 1:
			p.Start(pts[0])
			p.QuadBezier(pts[1], knot(1))
		case i == n-1:
			p.Start(knot(n - 2))
			p.Line(pts[n-1])
		default:
			p.Start(knot(i - 1))
			p.QuadBezier(pts[i], knot(i))
		}
		sp.Segments = append(sp.Segments, Segment{Ops: p, Width: w})
	}
	return sp
}
