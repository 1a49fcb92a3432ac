// Implements an SVG text backend for rendered pages: layers become
// groups, stroke segments become path elements carrying their own
// width, single-sample strokes become filled circles.
package rmsvg

import (
	"compress/gzip"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/relineate/relineate/rmlines"
	"github.com/relineate/relineate/rmrender"
)

// Options parametrizes the SVG output.
type Options struct {
	// Compression, when nonzero, wraps the output in a gzip stream of
	// the given level (an .svgz file).
	Compression int

	// Width, Height set the output canvas size used by Render. Zero
	// values default to the device canvas.
	Width, Height float64

	// Smooth enables quadratic smoothing of strokes.
	Smooth bool
}

var DefaultOptions = Options{}

var _ rmrender.Driver = (*SVG)(nil) // assert interface conformance

type pendingDot struct {
	center fixed.Point26_6
	radius fixed.Int26_6
}

// SVG writes an SVG document driven by a rendered page.
type SVG struct {
	w             io.Writer
	width, height float64
	opts          *Options

	path    rmrender.Path
	dot     *pendingDot
	stroke  fixed.Int26_6
	color   color.NRGBA
	opacity float64
}

// New returns an SVG driver writing to w and emits the root element.
// Close finishes the document.
func New(w io.Writer, width, height float64, opts *Options) *SVG {
	o := DefaultOptions
	if opts != nil {
		o = *opts // the caller's struct is never modified
	}
	opts = &o
	if opts.Compression != 0 {
		if opts.Compression < gzip.HuffmanOnly || gzip.BestCompression < opts.Compression {
			opts.Compression = -1
		}
		w, _ = gzip.NewWriterLevel(w, opts.Compression)
	}
	fmt.Fprintf(w, `<svg version="1.1" width="%v" height="%v" viewBox="0 0 %v %v" xmlns="http://www.w3.org/2000/svg">`,
		dec(width), dec(height), dec(width), dec(height))
	return &SVG{w: w, width: width, height: height, opts: opts}
}

// Close finishes and closes the SVG document.
func (r *SVG) Close() error {
	_, err := fmt.Fprintf(r.w, "</svg>\n")
	if r.opts.Compression != 0 {
		return r.w.(*gzip.Writer).Close() // does not close the underlying writer
	}
	return err
}

func (r *SVG) BeginLayer(index int) {
	fmt.Fprintf(r.w, `<g id="layer%d">`, index+1)
}

func (r *SVG) EndLayer() {
	fmt.Fprintf(r.w, "</g>")
}

func (r *SVG) Clear() {
	r.path.Clear()
	r.dot = nil
}

func (r *SVG) Start(a fixed.Point26_6) {
	r.path.Start(a)
}

func (r *SVG) Line(b fixed.Point26_6) {
	r.path.Line(b)
}

func (r *SVG) QuadBezier(b, c fixed.Point26_6) {
	r.path.QuadBezier(b, c)
}

func (r *SVG) Stop(closeLoop bool) {
	// stroke paths are never closed
}

func (r *SVG) Dot(center fixed.Point26_6, radius fixed.Int26_6) {
	r.dot = &pendingDot{center: center, radius: radius}
}

func (r *SVG) SetStroke(width fixed.Int26_6, c color.NRGBA, opacity float64) {
	r.stroke = width
	r.color = c
	r.opacity = opacity
}

func (r *SVG) Draw() {
	if r.dot != nil {
		fmt.Fprintf(r.w, `<circle cx="%v" cy="%v" r="%v" fill="%s"`,
			dec(float64(r.dot.center.X)/64), dec(float64(r.dot.center.Y)/64),
			dec(float64(r.dot.radius)/64), cssColor(r.color))
		if r.opacity < 1 {
			fmt.Fprintf(r.w, ` fill-opacity="%v"`, dec(r.opacity))
		}
		fmt.Fprintf(r.w, `/>`)
		return
	}
	if len(r.path) == 0 {
		return
	}
	fmt.Fprintf(r.w, `<path fill="none" stroke="%s" stroke-width="%v" stroke-linecap="round" stroke-linejoin="round"`,
		cssColor(r.color), dec(float64(r.stroke)/64))
	if r.opacity < 1 {
		fmt.Fprintf(r.w, ` stroke-opacity="%v"`, dec(r.opacity))
	}
	fmt.Fprintf(r.w, ` d="%s"/>`, r.path.ToSVGPath())
}

// Render writes doc as a complete SVG document, mapping the device
// canvas onto the output canvas declared in opts.
func Render(w io.Writer, doc *rmlines.Document, opts *Options) error {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = rmlines.DeviceWidth
	}
	if height == 0 {
		height = rmlines.DeviceHeight
	}
	svg := New(w, width, height, opts)
	rmrender.Draw(doc, svg, &rmrender.Options{
		Transform: rmrender.Viewport(rmlines.DeviceWidth, rmlines.DeviceHeight, width, height),
		Smooth:    opts.Smooth,
	})
	return svg.Close()
}

func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// dec formats a float without trailing zeros.
func dec(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
