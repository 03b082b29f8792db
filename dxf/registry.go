package dxf

// entityFactory constructs a fresh interpreter for one entity keyword.
type entityFactory func() entity

// registry maps the non-structural entity keywords to their
// interpreter constructors. Structural keywords (SECTION, BLOCK,
// POLYLINE, VERTEX, SEQEND and their closers) are handled directly by
// the driver; anything absent from both sets is skipped silently.
var registry = map[string]entityFactory{
	"LINE":       func() entity { return &line{} },
	"CIRCLE":     func() entity { return &circle{} },
	"ARC":        func() entity { return &arc{} },
	"ELLIPSE":    func() entity { return &ellipse{} },
	"LWPOLYLINE": func() entity { return &lwPolyline{} },
	"SPLINE":     func() entity { return &spline{} },
	"INSERT":     func() entity { return newInsert() },
	"TEXT":       func() entity { return &text{} },
	"MTEXT":      func() entity { return &mText{} },
	"DIMENSION":  func() entity { return &dimension{} },
	"HATCH":      func() entity { return &hatch{} },
	"POINT":      func() entity { return &point{} },
}
