package rmlines

import "fmt"

// BrushType identifies the pen tool of a stroke. The set is closed
// per format version; values outside it (newer firmware) are kept
// as-is so no information is lost, and Known reports false for them.
type BrushType int32

const (
	Paintbrush       BrushType = 0
	TiltPencil       BrushType = 1
	BallpointPen     BrushType = 2
	Marker           BrushType = 3
	Fineliner        BrushType = 4
	Highlighter      BrushType = 5
	Eraser           BrushType = 6
	SharpPencil      BrushType = 7
	EraseArea        BrushType = 8
	EraseAll         BrushType = 9
	SelectionBrush   BrushType = 10
	SelectionBrush2  BrushType = 11
	Paintbrush2      BrushType = 12
	MechanicalPencil BrushType = 13
	Pencil2          BrushType = 14
	BallpointPen2    BrushType = 15
	Marker2          BrushType = 16
	Fineliner2       BrushType = 17
	Highlighter2     BrushType = 18
	Calligraphy      BrushType = 21
)

var brushNames = map[BrushType]string{
	Paintbrush:       "Paintbrush",
	TiltPencil:       "TiltPencil",
	BallpointPen:     "BallpointPen",
	Marker:           "Marker",
	Fineliner:        "Fineliner",
	Highlighter:      "Highlighter",
	Eraser:           "Eraser",
	SharpPencil:      "SharpPencil",
	EraseArea:        "EraseArea",
	EraseAll:         "EraseAll",
	SelectionBrush:   "SelectionBrush",
	SelectionBrush2:  "SelectionBrush2",
	Paintbrush2:      "Paintbrush2",
	MechanicalPencil: "MechanicalPencil",
	Pencil2:          "Pencil2",
	BallpointPen2:    "BallpointPen2",
	Marker2:          "Marker2",
	Fineliner2:       "Fineliner2",
	Highlighter2:     "Highlighter2",
	Calligraphy:      "Calligraphy",
}

// Known reports whether b is part of the version 5 tool set.
func (b BrushType) Known() bool {
	_, ok := brushNames[b]
	return ok
}

func (b BrushType) String() string {
	if name, ok := brushNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BrushType(%d)", int32(b))
}

// BrushColor identifies the declared ink color of a stroke. As with
// BrushType, unrecognized values are preserved.
type BrushColor int32

const (
	Black BrushColor = 0
	Grey  BrushColor = 1
	White BrushColor = 2
)

// Known reports whether c is part of the version 5 palette.
func (c BrushColor) Known() bool {
	return c == Black || c == Grey || c == White
}

func (c BrushColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Grey:
		return "Grey"
	case White:
		return "White"
	default:
		return fmt.Sprintf("BrushColor(%d)", int32(c))
	}
}
