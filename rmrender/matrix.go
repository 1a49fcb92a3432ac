package rmrender

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is a 2x3 affine transform mapping (x, y) to
// (A*x + C*y + E, B*x + D*y + F).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns the composition applying n first, then m.
func (m Matrix2D) Mult(n Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m composed with a translation.
func (m Matrix2D) Translate(tx, ty float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, tx, ty})
}

// Scale returns m composed with a scale.
func (m Matrix2D) Scale(sx, sy float64) Matrix2D {
	return m.Mult(Matrix2D{sx, 0, 0, sy, 0, 0})
}

// Apply transforms the point (x, y).
func (m Matrix2D) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// lengthScale is the uniform length scale of the transform, used to
// carry stroke widths onto the target canvas.
func (m Matrix2D) lengthScale() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func (m Matrix2D) point(x, y float64) fixed.Point26_6 {
	tx, ty := m.Apply(x, y)
	return fixed.Point26_6{X: fToFixed(tx), Y: fToFixed(ty)}
}

// Viewport returns the transform mapping a source canvas of the given
// size onto the target canvas, with a single uniform scale and a
// centering offset. The caller controls output sizing through it; the
// renderer itself never touches files or documents.
func Viewport(srcW, srcH, dstW, dstH float64) Matrix2D {
	s := math.Min(dstW/srcW, dstH/srcH)
	return Identity.Translate((dstW-srcW*s)/2, (dstH-srcH*s)/2).Scale(s, s)
}
