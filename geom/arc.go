package geom

import "math"

// arcPoint samples an axis-aligned elliptical arc at angle deg using
// the screen convention (negative sine).
func arcPoint(cx, cy, rx, ry, deg float64) Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Point{X: cx + rx*cos, Y: cy - ry*sin}
}

// screenAngle returns the screen-convention angle in degrees of the
// vector (dx, dy).
func screenAngle(dx, dy float64) float64 {
	return math.Atan2(-dy, dx) * 180 / math.Pi
}

// ArcSeg continues the current subpath along a circular arc. The
// subpath's current point is expected to coincide with the arc's start
// point; the DXF interpreters construct their arcs that way.
type ArcSeg struct {
	CX, CY    float64
	R         float64
	StartDeg  float64
	ExtentDeg float64
}

// StartPoint returns the point at the start angle.
func (a ArcSeg) StartPoint() Point { return arcPoint(a.CX, a.CY, a.R, a.R, a.StartDeg) }

// EndPoint returns the point at the end of the sweep.
func (a ArcSeg) EndPoint() Point {
	return arcPoint(a.CX, a.CY, a.R, a.R, a.StartDeg+a.ExtentDeg)
}

// containsAngle reports whether the sweep covers the screen angle deg.
func (a ArcSeg) containsAngle(deg float64) bool {
	start, extent := a.StartDeg, a.ExtentDeg
	if extent < 0 {
		start, extent = start+extent, -extent
	}
	if extent >= 360 {
		return true
	}
	d := math.Mod(deg-start, 360)
	if d < 0 {
		d += 360
	}
	return d <= extent
}

// Bounds returns the tight bounds: both endpoints plus any quadrant
// extremes the sweep covers.
func (a ArcSeg) Bounds() Rect {
	b := EmptyRect()
	p0, p1 := a.StartPoint(), a.EndPoint()
	b = b.Add(p0.X, p0.Y).Add(p1.X, p1.Y)
	for _, q := range [4]float64{0, 90, 180, 270} {
		if a.containsAngle(q) {
			p := arcPoint(a.CX, a.CY, a.R, a.R, q)
			b = b.Add(p.X, p.Y)
		}
	}
	return b
}

// Transform keeps the arc circular under conformal maps; otherwise it
// promotes to an elliptical arc.
func (a ArcSeg) Transform(m Affine) Command {
	if m.IsConformal() {
		cx, cy := m.Apply(a.CX, a.CY)
		p0 := m.ApplyPoint(a.StartPoint())
		out := ArcSeg{CX: cx, CY: cy, R: a.R * m.uniformScale()}
		out.StartDeg = screenAngle(p0.X-cx, p0.Y-cy)
		if m.Det() >= 0 {
			out.ExtentDeg = a.ExtentDeg
		} else {
			out.ExtentDeg = -a.ExtentDeg
		}
		return out
	}
	e := EllipticalArc{CX: a.CX, CY: a.CY, RX: a.R, RY: a.R,
		StartDeg: a.StartDeg, ExtentDeg: a.ExtentDeg}
	return e.Transform(m)
}

// Cubics approximates the sweep with cubic Bezier segments of at most
// 90 degrees each, starting from the arc's start point.
func (a ArcSeg) Cubics() []CurveTo {
	e := EllipticalArc{CX: a.CX, CY: a.CY, RX: a.R, RY: a.R,
		StartDeg: a.StartDeg, ExtentDeg: a.ExtentDeg}
	return e.Cubics()
}

// EllipticalArc continues the current subpath along an elliptical arc
// with half-axes RX, RY rotated by Rot radians about the center.
type EllipticalArc struct {
	CX, CY    float64
	RX, RY    float64
	Rot       float64
	StartDeg  float64
	ExtentDeg float64
}

// point samples the arc at parameter angle deg.
func (e EllipticalArc) point(deg float64) Point {
	p := arcPoint(0, 0, e.RX, e.RY, deg)
	sin, cos := math.Sincos(e.Rot)
	return Point{
		X: e.CX + p.X*cos - p.Y*sin,
		Y: e.CY + p.X*sin + p.Y*cos,
	}
}

// derivative returns d/d(rad) of the parametric point at deg.
func (e EllipticalArc) derivative(deg float64) Point {
	sinA, cosA := math.Sincos(deg * math.Pi / 180)
	dx, dy := -e.RX*sinA, -e.RY*cosA
	sin, cos := math.Sincos(e.Rot)
	return Point{X: dx*cos - dy*sin, Y: dx*sin + dy*cos}
}

// StartPoint returns the point at the start parameter.
func (e EllipticalArc) StartPoint() Point { return e.point(e.StartDeg) }

// EndPoint returns the point at the end of the sweep.
func (e EllipticalArc) EndPoint() Point { return e.point(e.StartDeg + e.ExtentDeg) }

// Bounds samples the sweep. Exact extrema of a rotated partial ellipse
// buy little over a dense sample here, so this stays approximate the
// same way text bounds do.
func (e EllipticalArc) Bounds() Rect {
	const steps = 64
	b := EmptyRect()
	for i := 0; i <= steps; i++ {
		p := e.point(e.StartDeg + e.ExtentDeg*float64(i)/steps)
		b = b.Add(p.X, p.Y)
	}
	return b
}

// Transform carries the arc through m using the singular value
// decomposition of the combined linear map, so the result is again an
// elliptical arc.
func (e EllipticalArc) Transform(m Affine) Command {
	cx, cy := m.Apply(e.CX, e.CY)
	n := m.Mul(Rotation(e.Rot)).Mul(Scaling(e.RX, e.RY))
	n.E, n.F = 0, 0
	phi, sx, sy, psi := n.decompose()
	psiDeg := psi * 180 / math.Pi
	out := EllipticalArc{CX: cx, CY: cy, RX: sx, RY: math.Abs(sy), Rot: phi}
	if sy >= 0 {
		out.StartDeg = e.StartDeg - psiDeg
		out.ExtentDeg = e.ExtentDeg
	} else {
		out.StartDeg = -(e.StartDeg - psiDeg)
		out.ExtentDeg = -e.ExtentDeg
	}
	return out
}

// Cubics approximates the sweep with cubic Bezier segments of at most
// 90 degrees each, using the standard tangent-length formula.
func (e EllipticalArc) Cubics() []CurveTo {
	n := int(math.Ceil(math.Abs(e.ExtentDeg) / 90))
	if n < 1 {
		n = 1
	}
	step := e.ExtentDeg / float64(n)
	stepRad := step * math.Pi / 180
	// Tangent scale for a cubic spanning stepRad of arc.
	k := 4.0 / 3.0 * math.Tan(stepRad/4)
	out := make([]CurveTo, 0, n)
	for i := 0; i < n; i++ {
		a0 := e.StartDeg + step*float64(i)
		a1 := a0 + step
		p0, p1 := e.point(a0), e.point(a1)
		d0, d1 := e.derivative(a0), e.derivative(a1)
		out = append(out, CurveTo{
			X1: p0.X + k*d0.X, Y1: p0.Y + k*d0.Y,
			X2: p1.X - k*d1.X, Y2: p1.Y - k*d1.Y,
			X: p1.X, Y: p1.Y,
		})
	}
	return out
}
