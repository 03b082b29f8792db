package dxf

import "github.com/wholder/DXFReader/geom"

// vertex interprets a VERTEX entity inside a POLYLINE. A non-zero
// bulge applies to the edge leaving this vertex.
type vertex struct {
	baseEntity
	x, y  float64
	bulge float64
}

func (v *vertex) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		v.x, err = p.coord(value)
	case 20:
		v.y, err = p.coord(value)
	case 42:
		v.bulge, err = parseFloat(value)
	}
	return false, err
}

func (v *vertex) point() geom.Point { return geom.Point{X: v.x, Y: v.y} }

// polyline interprets a POLYLINE entity. It does not terminate on the
// next group-0 keyword; its vertices arrive as child entities and the
// whole sequence closes on SEQEND (or the terminal sweep).
type polyline struct {
	baseEntity
	closedFlag bool
	vertices   []*vertex
	path       *geom.Path
}

func (*polyline) dxfType() string { return "POLYLINE" }

func (pl *polyline) addParm(p *Parser, code int, value string) (bool, error) {
	if code == 70 {
		flags, err := parseInt(value)
		if err != nil {
			return false, err
		}
		pl.closedFlag = flags&1 != 0
	}
	return false, nil
}

func (pl *polyline) addChild(child entity) {
	if v, ok := child.(*vertex); ok {
		pl.vertices = append(pl.vertices, v)
	}
}

func (pl *polyline) close(p *Parser) {
	if len(pl.vertices) < 2 {
		return
	}
	path := &geom.Path{}
	first := pl.vertices[0].point()
	path.MoveTo(first.X, first.Y)
	for i := 1; i < len(pl.vertices); i++ {
		prev, cur := pl.vertices[i-1], pl.vertices[i]
		if prev.bulge != 0 {
			path.Append(geom.BulgeArc(prev.point(), cur.point(), prev.bulge))
		} else {
			path.LineTo(cur.x, cur.y)
		}
	}
	if pl.closedFlag {
		last := pl.vertices[len(pl.vertices)-1]
		if last.bulge != 0 {
			path.Append(geom.BulgeArc(last.point(), first, last.bulge))
		} else {
			path.Close()
		}
	}
	pl.path = path
}

func (pl *polyline) shape(p *Parser) geom.Shape {
	if pl.path == nil {
		return nil
	}
	return pl.path
}

// lwSegment is one vertex of a LWPOLYLINE with the bulge of the edge
// leaving it.
type lwSegment struct {
	x, y  float64
	bulge float64
}

// lwPolyline interprets a LWPOLYLINE entity, which carries its vertex
// list inline: each group 10 opens a new segment, and a group 42
// arriving before the next 10 writes that segment's bulge.
type lwPolyline struct {
	baseEntity
	closedFlag bool
	vertexCnt  int
	segments   []lwSegment
	path       *geom.Path
}

func (*lwPolyline) isAutoPop()      {}
func (*lwPolyline) dxfType() string { return "LWPOLYLINE" }

func (lw *lwPolyline) addParm(p *Parser, code int, value string) (bool, error) {
	switch code {
	case 70:
		flags, err := parseInt(value)
		if err != nil {
			return false, err
		}
		lw.closedFlag = flags&1 != 0
	case 90:
		n, err := parseInt(value)
		if err != nil {
			return false, err
		}
		lw.vertexCnt = n
	case 10:
		x, err := p.coord(value)
		if err != nil {
			return false, err
		}
		lw.segments = append(lw.segments, lwSegment{x: x})
	case 20:
		y, err := p.coord(value)
		if err != nil {
			return false, err
		}
		if len(lw.segments) > 0 {
			lw.segments[len(lw.segments)-1].y = y
		}
	case 42:
		b, err := parseFloat(value)
		if err != nil {
			return false, err
		}
		if len(lw.segments) > 0 {
			lw.segments[len(lw.segments)-1].bulge = b
		}
	}
	return false, nil
}

func (lw *lwPolyline) point(i int) geom.Point {
	return geom.Point{X: lw.segments[i].x, Y: lw.segments[i].y}
}

func (lw *lwPolyline) close(p *Parser) {
	if len(lw.segments) < 2 {
		return
	}
	path := &geom.Path{}
	first := lw.point(0)
	path.MoveTo(first.X, first.Y)
	for i := 1; i < len(lw.segments); i++ {
		if b := lw.segments[i-1].bulge; b != 0 {
			path.Append(geom.BulgeArc(lw.point(i-1), lw.point(i), b))
		} else {
			path.LineTo(lw.segments[i].x, lw.segments[i].y)
		}
	}
	if lw.closedFlag {
		last := len(lw.segments) - 1
		if b := lw.segments[last].bulge; b != 0 {
			path.Append(geom.BulgeArc(lw.point(last), first, b))
		} else {
			// An explicit edge back to the first point, not a path
			// close: consumers see the full outline spelled out.
			path.LineTo(first.X, first.Y)
		}
	}
	lw.path = path
}

func (lw *lwPolyline) shape(p *Parser) geom.Shape {
	if lw.path == nil {
		return nil
	}
	return lw.path
}
