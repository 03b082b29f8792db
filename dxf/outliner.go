package dxf

import "github.com/wholder/DXFReader/geom"

// GlyphOutliner converts a text string to glyph outline geometry. The
// returned path is in font space: Y grows downward, the baseline of
// the first glyph sits at the origin, and coordinates are in units of
// pointSize. Implementations back this with a platform font stack; the
// parser only composes the result into the drawing.
type GlyphOutliner interface {
	Outline(text, family string, pointSize float64, kerning, ligatures bool, tracking float64) (*geom.Path, error)
}

// placeholderOutliner stands in when no real outliner is injected: it
// draws an X (the two diagonals of a cell pointSize tall and
// 0.6*pointSize wide) per glyph slot so text still occupies roughly the
// right area of the drawing.
type placeholderOutliner struct{}

func (placeholderOutliner) Outline(text, family string, pointSize float64, kerning, ligatures bool, tracking float64) (*geom.Path, error) {
	advance := pointSize * 0.6
	path := &geom.Path{}
	pen := 0.0
	for range text {
		path.MoveTo(pen, 0)
		path.LineTo(pen+advance, -pointSize)
		path.MoveTo(pen, -pointSize)
		path.LineTo(pen+advance, 0)
		pen += advance + tracking
	}
	return path, nil
}
