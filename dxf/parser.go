package dxf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"

	"github.com/wholder/DXFReader/geom"
)

// Parser converts one ASCII DXF stream at a time into planar shapes in
// inches. The exported fields are pre-parse toggles; set them before
// calling Parse. A Parser may be reused sequentially, but two
// concurrent parses need two Parser values.
type Parser struct {
	// DrawText, DrawMText and DrawDimen include TEXT, MTEXT and
	// DIMENSION geometry in the output. All default off.
	DrawText  bool
	DrawMText bool
	DrawDimen bool

	// UseMillimeters selects the fallback for drawings that declare no
	// units: on (the default from NewParser) treats them as millimeters,
	// off as inches.
	UseMillimeters bool

	// Outliner fulfills glyph-vector requests for TEXT and MTEXT. When
	// nil, a placeholder outliner marks the text area instead.
	Outliner GlyphOutliner

	// Assembly state, valid during one Parse call.
	stack  []entity
	cur    entity
	items  []drawItem
	blocks map[string]*block
	header map[string]string
	uScale float64

	unitsSet bool
	units    string
	decoder  *encoding.Decoder

	// Post-parse observables.
	bounds geom.Rect
	scaled bool
	empty  bool
}

// NewParser returns a parser with the default toggles: text, mtext and
// dimension rendering off, unitless drawings read as millimeters.
func NewParser() *Parser {
	return &Parser{UseMillimeters: true}
}

// Parse reads one DXF stream and returns the drawing's shapes in
// inches, uniformly scaled so the longest bounds axis fits within
// [minSize, maxSize] and flipped to a Y-down, origin-aligned frame.
// maxSize <= 0 disables downscaling, minSize <= 0 disables upscaling.
//
// Structural stream errors abort the parse; content errors are
// contained to the entity that caused them. A drawing that produces no
// geometry returns an empty slice with Empty() set, not an error.
func (p *Parser) Parse(r io.Reader, maxSize, minSize float64) ([]geom.Shape, error) {
	p.reset()
	tr := NewTagReader(r)
	for {
		tag, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p.dispatch(tag)
	}
	p.sweep()
	return p.finalize(maxSize, minSize), nil
}

// ParseFile opens path and parses it; the file is closed before
// returning.
func (p *Parser) ParseFile(path string, maxSize, minSize float64) ([]geom.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DXF file: %w", err)
	}
	defer f.Close()
	shapes, err := p.Parse(f, maxSize, minSize)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return shapes, nil
}

// reset prepares the parser for a fresh stream.
func (p *Parser) reset() {
	p.stack = p.stack[:0]
	p.cur = nil
	p.items = nil
	p.blocks = make(map[string]*block)
	p.header = nil
	p.unitsSet = false
	p.decoder = nil
	p.bounds = geom.EmptyRect()
	p.scaled = false
	p.empty = false
	p.setUnitlessFallback()
}

// dispatch routes one tagged group through the driver's decision
// table.
func (p *Parser) dispatch(tag Tag) {
	switch tag.Code {
	case 0:
		p.keyword(tag.Value)
	case 2:
		switch cur := p.cur.(type) {
		case *section:
			cur.sType = tag.Value
			if tag.Value == "HEADER" {
				p.push(newHeader())
			}
		case *block:
			cur.setName(p, tag.Value)
		default:
			p.forward(tag)
		}
	default:
		p.forward(tag)
	}
}

// keyword handles a group-0 transition. Interpreters that terminate
// implicitly are popped first, then the keyword dispatches.
func (p *Parser) keyword(kw string) {
	if _, ok := p.cur.(autoPop); ok {
		p.pop()
	}
	switch kw {
	case "SECTION":
		p.push(&section{})
	case "ENDSEC":
		p.endSection()
	case "TABLE":
		p.push(&table{})
	case "ENDTAB":
		p.pop()
	case "BLOCK":
		p.push(&block{})
	case "ENDBLK":
		p.pop()
		// A BLOCK missing its ENDBLK would otherwise swallow the rest
		// of the section.
		for {
			if _, ok := p.cur.(*block); !ok {
				break
			}
			p.pop()
		}
	case "POLYLINE":
		p.addEntity(&polyline{})
	case "VERTEX":
		v := &vertex{}
		if _, ok := p.cur.(*vertex); !ok {
			if p.cur != nil {
				p.stack = append(p.stack, p.cur)
			}
		} else {
			p.closeEntity(p.cur)
		}
		p.cur = v
		if len(p.stack) > 0 {
			p.stack[len(p.stack)-1].addChild(v)
		}
	case "SEQEND":
		for p.cur != nil {
			p.closeEntity(p.cur)
			p.cur = p.popStack()
			if _, ok := p.cur.(*block); ok {
				break
			}
		}
	default:
		if factory, ok := registry[kw]; ok {
			p.addEntity(factory())
		} else {
			// Unknown entity type: ignore its groups until the next
			// recognized keyword.
			tracer().Debugf("skipping unknown entity type %s", kw)
			p.cur = nil
		}
	}
}

// forward hands a non-structural group to the assembling entity. A
// numeric failure discards that entity and parsing continues.
func (p *Parser) forward(tag Tag) {
	if p.cur == nil || p.cur.dropped() {
		return
	}
	done, err := p.cur.addParm(p, tag.Code, tag.Value)
	if err != nil {
		tracer().Infof("discarding entity: group %d: %v", tag.Code, err)
		p.cur.drop()
		return
	}
	if done {
		p.pop()
	}
}

// addEntity registers a new entity with its enclosing container and
// makes it current. An INSERT landing in an anonymous dimension block
// is promoted to the top level so DIMENSION filtering stays coherent.
func (p *Parser) addEntity(e entity) {
	switch enclosing := p.cur.(type) {
	case *block:
		if in, ok := e.(*insert); ok && enclosing.flags&blockAnonymousDim != 0 {
			p.items = append(p.items, in)
		} else {
			enclosing.addChild(e)
		}
	default:
		if d, ok := e.(drawItem); ok {
			p.items = append(p.items, d)
		}
	}
	p.push(e)
}

// push makes e the current entity, stacking its predecessor.
func (p *Parser) push(e entity) {
	if p.cur != nil {
		p.stack = append(p.stack, p.cur)
	}
	p.cur = e
}

// pop closes the current entity and restores its predecessor.
func (p *Parser) pop() {
	if p.cur != nil {
		p.closeEntity(p.cur)
	}
	p.cur = p.popStack()
}

func (p *Parser) popStack() entity {
	if len(p.stack) == 0 {
		return nil
	}
	e := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return e
}

// closeEntity runs close exactly once per entity, containing a panic
// in one interpreter so the remaining entities still close.
func (p *Parser) closeEntity(e entity) {
	if e == nil || e.closed() {
		return
	}
	e.markClosed()
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("entity close failed: %v", r)
			e.drop()
		}
	}()
	e.close(p)
}

// endSection resolves units once the HEADER section closes, then
// abandons whatever assembly state the section left behind.
func (p *Parser) endSection() {
	if p.header != nil {
		p.resolveUnits()
	}
	p.closeEntity(p.cur)
	for i := len(p.stack) - 1; i >= 0; i-- {
		p.closeEntity(p.stack[i])
	}
	p.stack = p.stack[:0]
	p.cur = nil
}

// sweep closes every still-open entity after the last tag, so
// polylines with no trailing SEQEND still flush.
func (p *Parser) sweep() {
	p.closeEntity(p.cur)
	for i := len(p.stack) - 1; i >= 0; i-- {
		p.closeEntity(p.stack[i])
	}
	p.stack = p.stack[:0]
	p.cur = nil
}

// coord parses a numeric group value and applies the inches-per-unit
// scale.
func (p *Parser) coord(value string) (float64, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	return f * p.uScale, nil
}

func (p *Parser) outliner() GlyphOutliner {
	if p.Outliner != nil {
		return p.Outliner
	}
	return placeholderOutliner{}
}

// HeaderVariable returns the raw value of a HEADER variable such as
// "$INSUNITS", or "no header" when the variable was not present.
func (p *Parser) HeaderVariable(name string) string {
	if v, ok := p.header[name]; ok {
		return v
	}
	return "no header"
}

// Bounds returns the drawing's pre-fit union bounds in inches.
func (p *Parser) Bounds() geom.Rect { return p.bounds }

// Units returns the label of the resolved drawing unit, such as
// "millimeters" or "inches".
func (p *Parser) Units() string { return p.units }

// Scaled reports whether the finalizer applied a fit scale.
func (p *Parser) Scaled() bool { return p.scaled }

// Empty reports whether the last parse produced no geometry.
func (p *Parser) Empty() bool { return p.empty }

// CountByType returns a map of DXF entity type names to the number of
// draw items parsed, whether or not they produced geometry.
func (p *Parser) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, it := range p.items {
		counts[it.dxfType()]++
	}
	return counts
}

// IsMalformedStream reports whether err stems from the group stream:
// a malformed record or a failed read of the stream. A failure to open
// the file in ParseFile does not count.
func IsMalformedStream(err error) bool {
	return errors.Is(err, ErrMalformedStream)
}
