package geom

import "math"

// Command is one step of a path outline. Commands share the bounds
// contract with whole shapes and can carry themselves through affine
// transforms. A transform may change a command's concrete type (a
// circular arc under a non-conformal map becomes an elliptical arc)
// but never splits it.
type Command interface {
	Bounds() Rect
	Transform(m Affine) Command
}

// MoveTo starts a new subpath at (X, Y).
type MoveTo struct {
	X, Y float64
}

// LineTo draws a straight segment to (X, Y).
type LineTo struct {
	X, Y float64
}

// CurveTo draws a cubic Bezier segment to (X, Y) with control points
// (X1, Y1) and (X2, Y2).
type CurveTo struct {
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

// ClosePath closes the current subpath.
type ClosePath struct{}

// Bounds returns the single point.
func (c MoveTo) Bounds() Rect { return Rect{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y} }

// Bounds returns the segment end point. The start point is accounted
// for by the preceding command when a whole path is measured.
func (c LineTo) Bounds() Rect { return Rect{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y} }

// Bounds returns the control-point hull of the segment, which contains
// the curve.
func (c CurveTo) Bounds() Rect {
	return EmptyRect().Add(c.X1, c.Y1).Add(c.X2, c.Y2).Add(c.X, c.Y)
}

// Bounds of a close is empty; it adds no geometry.
func (c ClosePath) Bounds() Rect { return EmptyRect() }

// Transform maps the point.
func (c MoveTo) Transform(m Affine) Command {
	x, y := m.Apply(c.X, c.Y)
	return MoveTo{X: x, Y: y}
}

// Transform maps the point.
func (c LineTo) Transform(m Affine) Command {
	x, y := m.Apply(c.X, c.Y)
	return LineTo{X: x, Y: y}
}

// Transform maps end and control points.
func (c CurveTo) Transform(m Affine) Command {
	x1, y1 := m.Apply(c.X1, c.Y1)
	x2, y2 := m.Apply(c.X2, c.Y2)
	x, y := m.Apply(c.X, c.Y)
	return CurveTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y}
}

// Transform of a close is a close.
func (c ClosePath) Transform(m Affine) Command { return c }

// Shape is a resolved planar figure: a path or a primitive.
type Shape interface {
	Bounds() Rect
	Transform(m Affine) Shape
	Commands() []Command
}

// Path is an ordered command list. The zero value is an empty path
// ready for use.
type Path struct {
	Cmds []Command
}

// MoveTo appends a MoveTo command.
func (p *Path) MoveTo(x, y float64) { p.Cmds = append(p.Cmds, MoveTo{X: x, Y: y}) }

// LineTo appends a LineTo command.
func (p *Path) LineTo(x, y float64) { p.Cmds = append(p.Cmds, LineTo{X: x, Y: y}) }

// CurveTo appends a cubic Bezier command.
func (p *Path) CurveTo(x1, y1, x2, y2, x, y float64) {
	p.Cmds = append(p.Cmds, CurveTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

// Close appends a ClosePath command.
func (p *Path) Close() { p.Cmds = append(p.Cmds, ClosePath{}) }

// Append appends cmds verbatim.
func (p *Path) Append(cmds ...Command) { p.Cmds = append(p.Cmds, cmds...) }

// AppendShape appends another shape's outline under the transform m.
func (p *Path) AppendShape(s Shape, m Affine) {
	for _, c := range s.Commands() {
		p.Cmds = append(p.Cmds, c.Transform(m))
	}
}

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool { return len(p.Cmds) == 0 }

// Bounds unions the bounds of every command.
func (p *Path) Bounds() Rect {
	b := EmptyRect()
	for _, c := range p.Cmds {
		b = b.Union(c.Bounds())
	}
	return b
}

// Transform returns a new path with every command transformed.
func (p *Path) Transform(m Affine) Shape {
	out := &Path{Cmds: make([]Command, len(p.Cmds))}
	for i, c := range p.Cmds {
		out.Cmds[i] = c.Transform(m)
	}
	return out
}

// Commands returns the command list.
func (p *Path) Commands() []Command { return p.Cmds }

// Circle is a full circle primitive.
type Circle struct {
	CX, CY float64
	R      float64
}

// Bounds returns the exact bounding square.
func (c *Circle) Bounds() Rect {
	return Rect{MinX: c.CX - c.R, MinY: c.CY - c.R, MaxX: c.CX + c.R, MaxY: c.CY + c.R}
}

// Transform keeps the circle circular under conformal maps and
// promotes it to an ellipse otherwise.
func (c *Circle) Transform(m Affine) Shape {
	if m.IsConformal() {
		cx, cy := m.Apply(c.CX, c.CY)
		return &Circle{CX: cx, CY: cy, R: c.R * m.uniformScale()}
	}
	e := &Ellipse{CX: c.CX, CY: c.CY, RX: c.R, RY: c.R}
	return e.Transform(m)
}

// Commands returns the circle outline as one full clockwise sweep.
func (c *Circle) Commands() []Command {
	return []Command{
		MoveTo{X: c.CX + c.R, Y: c.CY},
		ArcSeg{CX: c.CX, CY: c.CY, R: c.R, StartDeg: 0, ExtentDeg: -360},
		ClosePath{},
	}
}

// Ellipse is a full ellipse primitive with half-axes RX, RY and a
// counterclockwise rotation Rot (radians) of the RX axis.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
	Rot    float64
}

// Bounds projects the rotated half-axes onto X and Y.
func (e *Ellipse) Bounds() Rect {
	sin, cos := math.Sincos(e.Rot)
	hw := math.Hypot(e.RX*cos, e.RY*sin)
	hh := math.Hypot(e.RX*sin, e.RY*cos)
	return Rect{MinX: e.CX - hw, MinY: e.CY - hh, MaxX: e.CX + hw, MaxY: e.CY + hh}
}

// Transform maps the ellipse through the linear part's singular value
// decomposition; an ellipse stays an ellipse under any affine map.
func (e *Ellipse) Transform(m Affine) Shape {
	cx, cy := m.Apply(e.CX, e.CY)
	n := m.Mul(Rotation(e.Rot)).Mul(Scaling(e.RX, e.RY))
	n.E, n.F = 0, 0
	phi, sx, sy, _ := n.decompose()
	return &Ellipse{CX: cx, CY: cy, RX: sx, RY: math.Abs(sy), Rot: phi}
}

// Commands returns the ellipse outline as one full clockwise sweep.
func (e *Ellipse) Commands() []Command {
	arc := EllipticalArc{CX: e.CX, CY: e.CY, RX: e.RX, RY: e.RY, Rot: e.Rot, StartDeg: 0, ExtentDeg: -360}
	start := arc.StartPoint()
	return []Command{MoveTo{X: start.X, Y: start.Y}, arc, ClosePath{}}
}

// Arc is a circular arc primitive.
type Arc struct {
	CX, CY    float64
	R         float64
	StartDeg  float64
	ExtentDeg float64
}

// seg returns the arc as a path command.
func (a *Arc) seg() ArcSeg {
	return ArcSeg{CX: a.CX, CY: a.CY, R: a.R, StartDeg: a.StartDeg, ExtentDeg: a.ExtentDeg}
}

// Bounds returns the tight bounds of the swept arc.
func (a *Arc) Bounds() Rect { return a.seg().Bounds() }

// Transform maps the arc; see ArcSeg.Transform.
func (a *Arc) Transform(m Affine) Shape {
	switch c := a.seg().Transform(m).(type) {
	case ArcSeg:
		return &Arc{CX: c.CX, CY: c.CY, R: c.R, StartDeg: c.StartDeg, ExtentDeg: c.ExtentDeg}
	default:
		start := a.seg().StartPoint()
		p := &Path{}
		p.Cmds = append(p.Cmds, MoveTo{X: start.X, Y: start.Y}.Transform(m), c)
		return p
	}
}

// Commands returns a MoveTo to the arc start followed by the sweep.
func (a *Arc) Commands() []Command {
	start := a.seg().StartPoint()
	return []Command{MoveTo{X: start.X, Y: start.Y}, a.seg()}
}

// Point samples the arc at t in [0, 1].
func (a *Arc) Point(t float64) Point {
	return arcPoint(a.CX, a.CY, a.R, a.R, a.StartDeg+t*a.ExtentDeg)
}
