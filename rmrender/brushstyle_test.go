package rmrender

import (
	"image/color"
	"testing"

	"github.com/tdewolff/test"

	"github.com/relineate/relineate/rmlines"
)

func TestStyleBlends(t *testing.T) {
	test.T(t, StyleFor(rmlines.Paintbrush).Blend, PressureBlend)
	test.T(t, StyleFor(rmlines.Fineliner).Blend, FixedBlend)
	test.T(t, StyleFor(rmlines.Highlighter).Blend, WidthFieldBlend)
	test.T(t, StyleFor(rmlines.Eraser).Blend, WidthFieldBlend)

	// brushes from newer firmware get the fallback profile
	test.T(t, StyleFor(rmlines.BrushType(99)).Blend, fallbackStyle.Blend)
	test.T(t, StyleFor(rmlines.BrushType(99)).Opacity, fallbackStyle.Opacity)
}

// Pressure-dominant brushes must widen monotonically with pressure.
func TestPressureDominantWidths(t *testing.T) {
	for _, brush := range []rmlines.BrushType{
		rmlines.Paintbrush, rmlines.TiltPencil, rmlines.BallpointPen, rmlines.Marker,
	} {
		style := StyleFor(brush)
		last := 0.0
		for _, p := range []float32{0, 0.25, 0.5, 0.75, 1} {
			w := style.Width(2, rmlines.Point{Pressure: p})
			if w <= 0 {
				t.Fatalf("%v: width %v at pressure %v is not positive", brush, w, p)
			}
			if w <= last {
				t.Fatalf("%v: width %v at pressure %v did not grow (was %v)", brush, w, p, last)
			}
			last = w
		}
	}
}

func TestFixedWidths(t *testing.T) {
	for _, p := range []float32{0, 0.5, 1} {
		test.T(t, StyleFor(rmlines.Fineliner).Width(2, rmlines.Point{Pressure: p}), 2.0)
	}
}

// Highlighter and eraser follow the per-point width field.
func TestWidthFieldDominantWidths(t *testing.T) {
	test.T(t, StyleFor(rmlines.Highlighter).Width(2, rmlines.Point{Width: 30}), 30.0)
	test.T(t, StyleFor(rmlines.Highlighter).Width(2, rmlines.Point{Width: 0}), 2.0)
	test.T(t, StyleFor(rmlines.Eraser).Width(2, rmlines.Point{Width: 12}), 12.0)
	test.T(t, StyleFor(rmlines.Eraser).Width(2, rmlines.Point{Width: 0}), 2.0)
}

func TestResolveColor(t *testing.T) {
	test.T(t, ResolveColor(rmlines.Fineliner, rmlines.Black), color.NRGBA{0x00, 0x00, 0x00, 0xff})
	test.T(t, ResolveColor(rmlines.Fineliner, rmlines.Grey), color.NRGBA{0x80, 0x80, 0x80, 0xff})
	test.T(t, ResolveColor(rmlines.Fineliner, rmlines.White), color.NRGBA{0xff, 0xff, 0xff, 0xff})

	// unrecognized colors fall back to black
	test.T(t, ResolveColor(rmlines.Fineliner, rmlines.BrushColor(9)), color.NRGBA{0x00, 0x00, 0x00, 0xff})

	// the eraser family always paints white
	test.T(t, ResolveColor(rmlines.Eraser, rmlines.Black), color.NRGBA{0xff, 0xff, 0xff, 0xff})
	test.T(t, ResolveColor(rmlines.EraseArea, rmlines.Grey), color.NRGBA{0xff, 0xff, 0xff, 0xff})
}
