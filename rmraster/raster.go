// Implements a raster backend to render decoded pages,
// by wrapping rasterx.
package rmraster

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/relineate/relineate/rmlines"
	"github.com/relineate/relineate/rmrender"
)

var _ rmrender.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer strokes segments with a rasterx Dasher and fills dots with
// a separate Filler instance, to avoid shared state between the two.
type Renderer struct {
	dasher *rasterx.Dasher
	filler *rasterx.Filler
	hasDot bool
}

// NewRenderer returns a renderer painting through the given scanner.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
	}
}

// RasterDocument renders doc onto a new RGBA image of the given size,
// using a ScannerGV instance.
func RasterDocument(doc *rmlines.Document, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	r := NewRenderer(width, height, scanner)
	rmrender.Draw(doc, r, &rmrender.Options{
		Transform: rmrender.Viewport(rmlines.DeviceWidth, rmlines.DeviceHeight, float64(width), float64(height)),
	})
	return img
}

func (rd *Renderer) BeginLayer(index int) {} // raster output has no layer groups

func (rd *Renderer) EndLayer() {}

func (rd *Renderer) Clear() {
	rd.dasher.Clear()
	rd.filler.Clear()
	rd.hasDot = false
}

func (rd *Renderer) Start(a fixed.Point26_6) {
	rd.dasher.Start(a)
}

func (rd *Renderer) Line(b fixed.Point26_6) {
	rd.dasher.Line(b)
}

func (rd *Renderer) QuadBezier(b, c fixed.Point26_6) {
	rd.dasher.QuadBezier(b, c)
}

func (rd *Renderer) Stop(closeLoop bool) {
	rd.dasher.Stop(closeLoop)
}

func (rd *Renderer) Dot(center fixed.Point26_6, radius fixed.Int26_6) {
	rasterx.AddCircle(float64(center.X)/64, float64(center.Y)/64, float64(radius)/64, rd.filler)
	rd.hasDot = true
}

func (rd *Renderer) SetStroke(width fixed.Int26_6, c color.NRGBA, opacity float64) {
	rd.dasher.SetStroke(width, fixed.Int26_6(4<<6), rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0)
	col := rasterx.ApplyOpacity(c, opacity)
	rd.dasher.Scanner.SetColor(col)
	rd.filler.Scanner.SetColor(col)
}

func (rd *Renderer) Draw() {
	if rd.hasDot {
		rd.filler.Draw()
		return
	}
	rd.dasher.Draw()
}
