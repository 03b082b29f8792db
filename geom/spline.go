package geom

// CatmullRom converts one Catmull-Rom window (p0..p3) to the cubic
// Bezier segment that interpolates p1 to p2 with C1 continuity at the
// joins.
func CatmullRom(p0, p1, p2, p3 Point) CurveTo {
	return CurveTo{
		X1: (-p0.X + 6*p1.X + p2.X) / 6,
		Y1: (-p0.Y + 6*p1.Y + p2.Y) / 6,
		X2: (p1.X + 6*p2.X - p3.X) / 6,
		Y2: (p1.Y + 6*p2.Y - p3.Y) / 6,
		X:  p2.X,
		Y:  p2.Y,
	}
}

// CatmullRomPath interpolates the control points with cubic Bezier
// segments. For a closed run the neighbor windows wrap around the
// point list and the final segment returns to the first point; for an
// open run the windows clamp at the ends, giving len(points)-1
// segments through every point.
func CatmullRomPath(points []Point, closed bool) *Path {
	p := &Path{}
	n := len(points)
	if n < 2 {
		return p
	}
	at := func(i int) Point {
		if closed {
			return points[((i%n)+n)%n]
		}
		if i < 0 {
			i = 0
		}
		if i > n-1 {
			i = n - 1
		}
		return points[i]
	}
	p.MoveTo(points[0].X, points[0].Y)
	end := n - 1
	if closed {
		end = n
	}
	for i := 0; i < end; i++ {
		p.Cmds = append(p.Cmds, CatmullRom(at(i-1), at(i), at(i+1), at(i+2)))
	}
	if closed {
		p.Close()
	}
	return p
}
