package geom

import "math"

// BulgeArc constructs the circular arc from p1 to p2 whose chord-to-arc
// deflection is encoded by the signed bulge factor (tan of a quarter of
// the included angle). A positive bulge renders as a clockwise sweep.
func BulgeArc(p1, p2 Point, bulge float64) ArcSeg {
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	// Deflection point: midpoint pushed along the chord's perpendicular.
	bx := mx + -(p1.Y-my)*bulge
	by := my + (p1.X-mx)*bulge
	u := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	b := 2 * math.Hypot(mx-bx, my-by) / u
	r := u * (1 + b*b) / (4 * b)
	dl := math.Hypot(mx-bx, my-by)
	cx := bx + r*(mx-bx)/dl
	cy := by + r*(my-by)/dl
	start := 180 - math.Atan2(cy-p1.Y, cx-p1.X)*180/math.Pi
	extent := 2 * math.Asin(u/2/r) * 180 / math.Pi
	if bulge >= 0 {
		extent = -extent
	}
	return ArcSeg{CX: cx, CY: cy, R: r, StartDeg: start, ExtentDeg: extent}
}
