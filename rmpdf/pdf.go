// Implements a PDF backend for rendered pages, based on gofpdf.
// The page is sized in points to the target canvas; each stroke
// segment becomes a stroked path, dots become filled circles.
package rmpdf

import (
	"image/color"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/relineate/relineate/rmlines"
	"github.com/relineate/relineate/rmrender"
)

var _ rmrender.Driver = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	pdf *gofpdf.Fpdf

	hasDot    bool
	dotCenter fixed.Point26_6
	dotRadius fixed.Int26_6
}

// NewRenderer returns a renderer with a single page of the given size
// in points.
func NewRenderer(width, height float64) *Renderer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.AddPage()
	return &Renderer{pdf: pdf}
}

// PDF exposes the underlying document, for output or further
// composition by the caller.
func (rd *Renderer) PDF() *gofpdf.Fpdf {
	return rd.pdf
}

// RenderDocument renders doc onto a single-page PDF of the given size
// in points.
func RenderDocument(doc *rmlines.Document, width, height float64) *gofpdf.Fpdf {
	rd := NewRenderer(width, height)
	rmrender.Draw(doc, rd, &rmrender.Options{
		Transform: rmrender.Viewport(rmlines.DeviceWidth, rmlines.DeviceHeight, width, height),
	})
	return rd.pdf
}

func (rd *Renderer) BeginLayer(index int) {} // PDF output has no layer groups

func (rd *Renderer) EndLayer() {}

func (rd *Renderer) Clear() {
	rd.hasDot = false
}

func (rd *Renderer) Start(a fixed.Point26_6) {
	rd.pdf.MoveTo(float64(a.X)/64, float64(a.Y)/64)
}

func (rd *Renderer) Line(b fixed.Point26_6) {
	rd.pdf.LineTo(float64(b.X)/64, float64(b.Y)/64)
}

func (rd *Renderer) QuadBezier(b, c fixed.Point26_6) {
	rd.pdf.CurveTo(float64(b.X)/64, float64(b.Y)/64, float64(c.X)/64, float64(c.Y)/64)
}

func (rd *Renderer) Stop(closeLoop bool) {
	if closeLoop {
		rd.pdf.ClosePath()
	}
}

func (rd *Renderer) Dot(center fixed.Point26_6, radius fixed.Int26_6) {
	rd.hasDot = true
	rd.dotCenter = center
	rd.dotRadius = radius
}

func (rd *Renderer) SetStroke(width fixed.Int26_6, c color.NRGBA, opacity float64) {
	rd.pdf.SetLineWidth(float64(width) / 64)
	rd.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	rd.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	rd.pdf.SetAlpha(opacity, "Normal")
}

func (rd *Renderer) Draw() {
	if rd.hasDot {
		rd.pdf.Circle(float64(rd.dotCenter.X)/64, float64(rd.dotCenter.Y)/64,
			float64(rd.dotRadius)/64, "F")
		return
	}
	rd.pdf.DrawPath("D")
}
