package dxf

import (
	"math"

	"github.com/wholder/DXFReader/geom"
)

// line interprets a LINE entity: one straight segment.
type line struct {
	baseEntity
	x1, y1 float64
	x2, y2 float64
	path   *geom.Path
}

func (*line) isAutoPop()      {}
func (*line) dxfType() string { return "LINE" }

func (l *line) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		l.x1, err = p.coord(value)
	case 20:
		l.y1, err = p.coord(value)
	case 11:
		l.x2, err = p.coord(value)
	case 21:
		l.y2, err = p.coord(value)
	}
	return false, err
}

func (l *line) close(p *Parser) {
	l.path = &geom.Path{}
	l.path.MoveTo(l.x1, l.y1)
	l.path.LineTo(l.x2, l.y2)
}

func (l *line) shape(p *Parser) geom.Shape {
	if l.path == nil {
		return nil
	}
	return l.path
}

// circle interprets a CIRCLE entity into a circle primitive.
type circle struct {
	baseEntity
	cx, cy float64
	radius float64
	shp    *geom.Circle
}

func (*circle) isAutoPop()      {}
func (*circle) dxfType() string { return "CIRCLE" }

func (c *circle) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		c.cx, err = p.coord(value)
	case 20:
		c.cy, err = p.coord(value)
	case 40:
		c.radius, err = p.coord(value)
	}
	return false, err
}

func (c *circle) close(p *Parser) {
	c.shp = &geom.Circle{CX: c.cx, CY: c.cy, R: c.radius}
}

func (c *circle) shape(p *Parser) geom.Shape {
	if c.shp == nil {
		return nil
	}
	return c.shp
}

// arc interprets an ARC entity. DXF gives start and end angles in
// degrees counterclockwise; the emitted primitive uses the screen
// convention, so the angles negate and the sweep runs clockwise.
type arc struct {
	baseEntity
	cx, cy     float64
	radius     float64
	startAngle float64
	endAngle   float64
	shp        *geom.Arc
}

func (*arc) isAutoPop()      {}
func (*arc) dxfType() string { return "ARC" }

func (a *arc) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		a.cx, err = p.coord(value)
	case 20:
		a.cy, err = p.coord(value)
	case 40:
		a.radius, err = p.coord(value)
	case 50:
		a.startAngle, err = parseFloat(value)
	case 51:
		a.endAngle, err = parseFloat(value)
	}
	return false, err
}

func (a *arc) close(p *Parser) {
	end := a.endAngle
	if end < a.startAngle {
		end += 360
	}
	a.shp = &geom.Arc{
		CX: a.cx, CY: a.cy, R: a.radius,
		StartDeg:  -a.startAngle,
		ExtentDeg: a.startAngle - end,
	}
}

func (a *arc) shape(p *Parser) geom.Shape {
	if a.shp == nil {
		return nil
	}
	return a.shp
}

// ellipse interprets an ELLIPSE entity: center, major-axis endpoint
// offset, minor/major ratio and start/end parameters in radians.
type ellipse struct {
	baseEntity
	cx, cy     float64
	mx, my     float64
	ratio      float64
	startParam float64
	endParam   float64
	hasParams  bool
	shp        geom.Shape
}

func (*ellipse) isAutoPop()      {}
func (*ellipse) dxfType() string { return "ELLIPSE" }

func (e *ellipse) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		e.cx, err = p.coord(value)
	case 20:
		e.cy, err = p.coord(value)
	case 11:
		e.mx, err = p.coord(value)
	case 21:
		e.my, err = p.coord(value)
	case 40:
		e.ratio, err = parseFloat(value)
	case 41:
		e.startParam, err = parseFloat(value)
		e.hasParams = true
	case 42:
		e.endParam, err = parseFloat(value)
		e.hasParams = true
	}
	return false, err
}

func (e *ellipse) close(p *Parser) {
	major := math.Hypot(e.mx, e.my)
	if major == 0 {
		return
	}
	rot := math.Atan2(e.my, e.mx)
	sweep := e.endParam - e.startParam
	for sweep <= 0 {
		sweep += 2 * math.Pi
	}
	if e.hasParams && sweep < 2*math.Pi-1e-9 {
		// Partial elliptical arc. The ellipse parameter runs
		// counterclockwise from the major axis, so it negates into the
		// screen-convention angles.
		seg := geom.EllipticalArc{
			CX: e.cx, CY: e.cy,
			RX: major, RY: major * e.ratio, Rot: rot,
			StartDeg:  -e.startParam * 180 / math.Pi,
			ExtentDeg: -sweep * 180 / math.Pi,
		}
		start := seg.StartPoint()
		path := &geom.Path{}
		path.MoveTo(start.X, start.Y)
		path.Append(seg)
		e.shp = path
		return
	}
	e.shp = &geom.Ellipse{CX: e.cx, CY: e.cy, RX: major, RY: major * e.ratio, Rot: rot}
}

func (e *ellipse) shape(p *Parser) geom.Shape { return e.shp }

// spline interprets a SPLINE entity as a Catmull-Rom interpolation of
// its control points. DXF splines are nominally NURBS; the
// interpolating approximation is accepted by the callers of this
// parser.
type spline struct {
	baseEntity
	closedFlag bool
	numCPs     int
	cPoints    []geom.Point
	x          float64
	path       *geom.Path
	didClose   bool
}

func (*spline) isAutoPop()      {}
func (*spline) dxfType() string { return "SPLINE" }

func (s *spline) addParm(p *Parser, code int, value string) (bool, error) {
	switch code {
	case 70:
		flags, err := parseInt(value)
		if err != nil {
			return false, err
		}
		s.closedFlag = flags&1 != 0
	case 73:
		n, err := parseInt(value)
		if err != nil {
			return false, err
		}
		s.numCPs = n
	case 10:
		x, err := p.coord(value)
		if err != nil {
			return false, err
		}
		s.x = x
	case 20:
		y, err := p.coord(value)
		if err != nil {
			return false, err
		}
		s.cPoints = append(s.cPoints, geom.Point{X: s.x, Y: y})
		if s.numCPs > 0 && len(s.cPoints) == s.numCPs {
			s.build()
		}
	}
	return false, nil
}

func (s *spline) build() {
	path := geom.CatmullRomPath(s.cPoints, s.closedFlag)
	if s.closedFlag && len(path.Cmds) > 0 {
		// Strip the trailing close; shape() appends it exactly once so
		// repeated reads stay idempotent.
		path.Cmds = path.Cmds[:len(path.Cmds)-1]
	}
	s.path = path
}

func (s *spline) close(p *Parser) {
	if s.path == nil && len(s.cPoints) >= 2 {
		s.build()
	}
}

func (s *spline) shape(p *Parser) geom.Shape {
	if s.path == nil {
		return nil
	}
	if s.closedFlag && !s.didClose {
		s.path.Close()
		s.didClose = true
	}
	return s.path
}

// point interprets a POINT entity. Points carry no stroke geometry, so
// they are accepted and traced without producing a shape.
type point struct {
	baseEntity
	x, y float64
}

func (*point) isAutoPop()      {}
func (*point) dxfType() string { return "POINT" }

func (pt *point) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		pt.x, err = p.coord(value)
	case 20:
		pt.y, err = p.coord(value)
	}
	return false, err
}

func (pt *point) shape(p *Parser) geom.Shape { return nil }
