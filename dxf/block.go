package dxf

import (
	"math"

	"github.com/wholder/DXFReader/geom"
)

// Block flag bit 2 marks an anonymous block generated by a DIMENSION.
const blockAnonymousDim = 2

// block collects the entities of a BLOCK ... ENDBLK range. It
// registers itself in the parser's block dictionary as soon as its
// name arrives on group 2.
type block struct {
	baseEntity
	name         string
	baseX, baseY float64
	flags        int
	children     []drawItem
}

func (b *block) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 10:
		b.baseX, err = p.coord(value)
	case 20:
		b.baseY, err = p.coord(value)
	case 70:
		b.flags, err = parseInt(value)
	}
	return false, err
}

func (b *block) addChild(child entity) {
	if d, ok := child.(drawItem); ok {
		b.children = append(b.children, d)
	}
}

// setName registers the block under its dictionary key.
func (b *block) setName(p *Parser, name string) {
	b.name = name
	p.blocks[name] = b
}

// insert interprets an INSERT entity: a placed reference to a block.
// The block is resolved lazily, during the finalizer, because a block
// definition may legally appear after its insertion in the file.
type insert struct {
	baseEntity
	blockName string
	handle    string
	ix, iy    float64
	xScale    float64
	yScale    float64
	zScale    float64
	rotation  float64 // radians
	resolving bool
}

func (*insert) isAutoPop()      {}
func (*insert) dxfType() string { return "INSERT" }

func newInsert() *insert {
	return &insert{xScale: 1, yScale: 1, zScale: 1}
}

func (in *insert) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 2:
		in.blockName = value
	case 5:
		in.handle = value
	case 10:
		in.ix, err = p.coord(value)
	case 20:
		in.iy, err = p.coord(value)
	case 41:
		in.xScale, err = parseFloat(value)
	case 42:
		in.yScale, err = parseFloat(value)
	case 43:
		in.zScale, err = parseFloat(value)
	case 50:
		var deg float64
		deg, err = parseFloat(value)
		in.rotation = deg * math.Pi / 180
	}
	return false, err
}

// placement composes the affine transform the block contents are
// placed under. A negative Z scale mirrors the insertion; a negative X
// scale flips the rotation sense.
func (in *insert) placement(b *block) geom.Affine {
	var at geom.Affine
	if in.zScale < 0 {
		at = geom.Identity().Translate(-in.ix, in.iy).Scale(-in.xScale, in.yScale)
	} else {
		at = geom.Identity().Translate(in.ix, in.iy).Scale(in.xScale, in.yScale)
	}
	rot := in.rotation
	if in.xScale < 0 {
		rot = -rot
	}
	at = at.Rotate(rot)
	if b.baseX != 0 || b.baseY != 0 {
		at = at.Translate(b.baseX, b.baseY)
	}
	return at
}

func (in *insert) shape(p *Parser) geom.Shape {
	b, ok := p.blocks[in.blockName]
	if !ok {
		tracer().Infof("INSERT references undefined block %q", in.blockName)
		return nil
	}
	if in.resolving {
		tracer().Errorf("block %q contains a circular insertion", in.blockName)
		return nil
	}
	in.resolving = true
	defer func() { in.resolving = false }()
	at := in.placement(b)
	path := &geom.Path{}
	for _, child := range b.children {
		if child.dropped() {
			continue
		}
		p.closeEntity(child)
		if s := child.shape(p); s != nil {
			path.AppendShape(s, at)
		}
	}
	if path.IsEmpty() {
		return nil
	}
	return path
}

// dimension interprets a DIMENSION entity. The rendered geometry lives
// in an anonymous block the writer generated; the entity simply
// appends that block's children unmodified.
type dimension struct {
	baseEntity
	blockName string
}

func (*dimension) isAutoPop()      {}
func (*dimension) dxfType() string { return "DIMENSION" }

func (d *dimension) addParm(p *Parser, code int, value string) (bool, error) {
	if code == 2 {
		d.blockName = value
	}
	return false, nil
}

func (d *dimension) shape(p *Parser) geom.Shape {
	b, ok := p.blocks[d.blockName]
	if !ok {
		return nil
	}
	path := &geom.Path{}
	for _, child := range b.children {
		if child.dropped() {
			continue
		}
		p.closeEntity(child)
		if s := child.shape(p); s != nil {
			path.AppendShape(s, geom.Identity())
		}
	}
	if path.IsEmpty() {
		return nil
	}
	return path
}

// hatch accepts a HATCH entity's groups so the stack stays undisturbed
// but produces no geometry.
type hatch struct {
	baseEntity
}

func (*hatch) isAutoPop()      {}
func (*hatch) dxfType() string { return "HATCH" }

func (h *hatch) addParm(p *Parser, code int, value string) (bool, error) {
	return false, nil
}

func (h *hatch) shape(p *Parser) geom.Shape { return nil }

// table is the opaque container for a TABLE ... ENDTAB range.
type table struct {
	baseEntity
}

func (t *table) addParm(p *Parser, code int, value string) (bool, error) {
	return false, nil
}
