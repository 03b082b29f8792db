package dxf

import "github.com/wholder/DXFReader/geom"

// enabled applies the pre-parse filters to one draw item.
func (p *Parser) enabled(it drawItem) bool {
	switch it.(type) {
	case *text:
		return p.DrawText
	case *mText:
		return p.DrawMText
	case *dimension:
		return p.DrawDimen
	default:
		return true
	}
}

// finalize collects the enabled shapes, unions their bounds, fits the
// longest axis into [minSize, maxSize] and flips Y so the drawing is
// origin-aligned with +Y running down the screen.
func (p *Parser) finalize(maxSize, minSize float64) []geom.Shape {
	shapes := make([]geom.Shape, 0, len(p.items))
	bounds := geom.EmptyRect()
	for _, it := range p.items {
		if it.dropped() || !p.enabled(it) {
			continue
		}
		// Entities orphaned mid-assembly still get their one close.
		p.closeEntity(it)
		s := it.shape(p)
		if s == nil {
			continue
		}
		shapes = append(shapes, s)
		bounds = bounds.Union(s.Bounds())
	}
	p.bounds = bounds
	if len(shapes) == 0 || bounds.IsEmpty() {
		p.empty = true
		return shapes
	}

	maxAxis := bounds.Width()
	if bounds.Height() > maxAxis {
		maxAxis = bounds.Height()
	}
	scale := 1.0
	switch {
	case maxSize > 0 && maxAxis > maxSize:
		scale = maxSize / maxAxis
	case minSize > 0 && maxAxis < minSize && maxAxis > 0:
		scale = minSize / maxAxis
	}
	p.scaled = scale != 1.0

	at := geom.Identity().
		Scale(scale, -scale).
		Translate(-bounds.MinX, -(bounds.MinY + bounds.Height()))
	for i, s := range shapes {
		shapes[i] = s.Transform(at)
	}
	return shapes
}
