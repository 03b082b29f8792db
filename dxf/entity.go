package dxf

import (
	"fmt"
	"strconv"

	"github.com/wholder/DXFReader/geom"
)

// entity is one interpreter assembling a DXF object from its groups.
//
// addParm consumes a non-structural group and reports done=true when
// the entity is complete immediately after this group. addChild adopts
// a sub-entity when the driver creates it (POLYLINE collecting its
// vertices, BLOCK its members); later groups fill the child in. close
// finalizes internal geometry; the driver guarantees it runs exactly
// once per entity, even on early EOF.
type entity interface {
	addParm(p *Parser, code int, value string) (done bool, err error)
	addChild(child entity)
	close(p *Parser)

	dropped() bool
	drop()
	closed() bool
	markClosed()
}

// drawItem is an entity that can produce a resolved planar shape.
// shape returns nil when the entity produced no geometry.
type drawItem interface {
	entity
	shape(p *Parser) geom.Shape
	dxfType() string
}

// autoPop marks interpreters that terminate implicitly on the next
// group-0 keyword. POLYLINE deliberately does not carry it; it closes
// only on SEQEND.
type autoPop interface {
	isAutoPop()
}

// baseEntity carries the bookkeeping shared by every interpreter.
type baseEntity struct {
	isDropped bool
	isClosed  bool
}

func (b *baseEntity) addChild(entity) {}
func (b *baseEntity) close(*Parser)   {}
func (b *baseEntity) dropped() bool   { return b.isDropped }
func (b *baseEntity) drop()           { b.isDropped = true }
func (b *baseEntity) closed() bool    { return b.isClosed }
func (b *baseEntity) markClosed()     { b.isClosed = true }

// parseFloat parses a numeric group value. Failures are contained to
// the entity (errMalformedNumber), not the parse.
func parseFloat(value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMalformedNumber, value)
	}
	return f, nil
}

// parseInt parses an integer group value, tolerating the float
// rendering some writers use for flag fields.
func parseInt(value string) (int, error) {
	if i, err := strconv.Atoi(value); err == nil {
		return i, nil
	}
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
