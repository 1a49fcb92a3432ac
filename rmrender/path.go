// Provides the rendering core for decoded .lines documents: an
// abstract path model, a Driver interface implemented by the output
// backends, and the per-stroke rendering algorithm.
// See relineate/rmsvg, relineate/rmraster and relineate/rmpdf for
// drivers consuming it.
package rmrender

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation is one path-drawing primitive.
type Operation interface {
	// add itself on the driver d
	drawTo(d Driver)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

// QuadTo is the smoothing primitive: a quadratic bezier with one
// control point and an endpoint.
type QuadTo [2]fixed.Point26_6

// Dot is a filled circle. Strokes reduced to a single sample render
// as a dot, never as a path.
type Dot struct {
	Center fixed.Point26_6
	Radius fixed.Int26_6
}

// starts a new subpath at the given point.
func (op MoveTo) drawTo(d Driver) {
	d.Start(fixed.Point26_6(op))
}

// draw a line
func (op LineTo) drawTo(d Driver) {
	d.Line(fixed.Point26_6(op))
}

// draw a quadratic bezier curve
func (op QuadTo) drawTo(d Driver) {
	d.QuadBezier(op[0], op[1])
}

func (op Dot) drawTo(d Driver) {
	d.Dot(op.Center, op.Radius)
}

// Path describes a sequence of basic drawing operations, which should
// not be nil. It implements Driver itself and so doubles as a
// recorder: replaying a page into a Path collects the operations that
// reached it, which is handy in tests.
type Path []Operation

var _ Driver = (*Path)(nil) // assert interface conformance

// ToSVGPath returns the SVG path data representation of the path.
// Dot operations have no path form and are skipped; they are emitted
// as circle elements by the drivers instead.
func (p Path) ToSVGPath() string {
	chunks := make([]string, 0, len(p))
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks = append(chunks, fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64))
		case LineTo:
			chunks = append(chunks, fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64))
		case QuadTo:
			chunks = append(chunks, fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64))
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new subpath at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current subpath.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// Dot adds a filled circle.
func (p *Path) Dot(center fixed.Point26_6, radius fixed.Int26_6) {
	*p = append(*p, Dot{Center: center, Radius: radius})
}

// Stop ends the current subpath. When closeLoop is set a line back to
// the most recent Start point is recorded.
func (p *Path) Stop(closeLoop bool) {
	if !closeLoop {
		return
	}
	for i := len(*p) - 1; i >= 0; i-- {
		if op, ok := (*p)[i].(MoveTo); ok {
			p.Line(fixed.Point26_6(op))
			return
		}
	}
}

// BeginLayer is a no-op: a Path records geometry only.
func (p *Path) BeginLayer(index int) {}

// EndLayer is a no-op.
func (p *Path) EndLayer() {}

// SetStroke is a no-op: a Path carries no pen state.
func (p *Path) SetStroke(width fixed.Int26_6, c color.NRGBA, opacity float64) {}

// Draw is a no-op: the recorded operations are the result.
func (p *Path) Draw() {}

// Driver knows how to do the actual draw operations but doesn't need
// any knowledge of the .lines format. The canvas transform is already
// applied to points and widths before they reach the Driver.
type Driver interface {
	// BeginLayer opens the group for the layer at the given z-index.
	// Layers arrive in back-to-front order.
	BeginLayer(index int)

	// EndLayer closes the current layer group.
	EndLayer()

	// Clear must reset the internal state (used before painting a new
	// segment).
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to b.
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path.
	QuadBezier(b, c fixed.Point26_6)

	// Stop ends the path, closing it to the start point if closeLoop
	// is true.
	Stop(closeLoop bool)

	// Dot paints a filled circle of the current color.
	Dot(center fixed.Point26_6, radius fixed.Int26_6)

	// SetStroke parametrizes the pen used by the following Draw.
	SetStroke(width fixed.Int26_6, c color.NRGBA, opacity float64)

	// Draw strokes (or, for dots, fills) the accumulated segment
	// using the current pen.
	Draw()
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}
