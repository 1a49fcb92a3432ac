package rmpdf

import (
	"bytes"
	"testing"

	"github.com/tdewolff/test"

	"github.com/relineate/relineate/rmlines"
)

func TestRenderDocument(t *testing.T) {
	doc := &rmlines.Document{Version: 5, Layers: []rmlines.Layer{{
		Strokes: []rmlines.Stroke{
			{
				Brush:     rmlines.Fineliner,
				Color:     rmlines.Black,
				BaseWidth: 2,
				Points:    []rmlines.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			},
			{
				Brush:     rmlines.Paintbrush,
				Color:     rmlines.Grey,
				BaseWidth: 4,
				Points:    []rmlines.Point{{X: 50, Y: 50, Pressure: 1}},
			},
		},
	}}}

	pdf := RenderDocument(doc, 1404, 1872)
	test.T(t, pdf.Err(), false)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	test.T(t, err, nil)
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: % x", buf.Bytes()[:8])
	}
}
