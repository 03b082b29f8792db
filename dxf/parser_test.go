package dxf

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/wholder/DXFReader/geom"
)

// doc joins tagged groups into a DXF stream, one line per element.
func doc(groups ...string) string {
	return strings.Join(groups, "\n") + "\n"
}

func entitiesDoc(insunits string, body ...string) string {
	head := []string{
		"0", "SECTION", "2", "HEADER",
		"9", "$INSUNITS", "70", insunits,
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
	}
	head = append(head, body...)
	head = append(head, "0", "ENDSEC", "0", "EOF")
	return doc(head...)
}

func parseString(t *testing.T, p *Parser, content string, maxSize, minSize float64) []geom.Shape {
	t.Helper()
	shapes, err := p.Parse(strings.NewReader(content), maxSize, minSize)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return shapes
}

func TestParseUnitScaledSquare(t *testing.T) {
	content := entitiesDoc("4",
		"0", "POLYLINE", "70", "1",
		"0", "VERTEX", "10", "0", "20", "0",
		"0", "VERTEX", "10", "100", "20", "0",
		"0", "VERTEX", "10", "100", "20", "100",
		"0", "VERTEX", "10", "0", "20", "100",
		"0", "SEQEND",
	)
	p := NewParser()
	shapes := parseString(t, p, content, 2, 0)

	if len(shapes) != 1 {
		t.Fatalf("shapes: got %d, want 1", len(shapes))
	}
	if p.Units() != "millimeters" {
		t.Errorf("units: got %q, want millimeters", p.Units())
	}
	b := p.Bounds()
	if math.Abs(b.Width()-3.937007874) > 1e-6 || math.Abs(b.Height()-3.937007874) > 1e-6 {
		t.Errorf("original bounds: got %.6f x %.6f, want 3.937008 x 3.937008", b.Width(), b.Height())
	}
	if !p.Scaled() {
		t.Error("expected the fit scale to apply")
	}
	fb := shapes[0].Bounds()
	if math.Abs(fb.Width()-2) > 1e-6 || math.Abs(fb.Height()-2) > 1e-6 {
		t.Errorf("fitted bounds: got %.6f x %.6f, want 2 x 2", fb.Width(), fb.Height())
	}

	path, ok := shapes[0].(*geom.Path)
	if !ok {
		t.Fatalf("expected *geom.Path, got %T", shapes[0])
	}
	// One closed path with four edges: MoveTo, three LineTo, Close.
	if len(path.Cmds) != 5 {
		t.Fatalf("commands: got %d, want 5", len(path.Cmds))
	}
	if _, ok := path.Cmds[len(path.Cmds)-1].(geom.ClosePath); !ok {
		t.Error("expected trailing ClosePath")
	}
}

func TestParseStackReturnsToZero(t *testing.T) {
	content := entitiesDoc("1",
		"0", "POLYLINE", "70", "0",
		"0", "VERTEX", "10", "0", "20", "0",
		"0", "VERTEX", "10", "1", "20", "1",
		// No SEQEND: closing the section must flush the polyline.
	)
	p := NewParser()
	shapes := parseString(t, p, content, 0, 0)
	if len(shapes) != 1 {
		t.Fatalf("shapes: got %d, want 1", len(shapes))
	}
	if len(p.stack) != 0 || p.cur != nil {
		t.Errorf("stack depth %d, current %v; want empty", len(p.stack), p.cur)
	}
}

func TestParseInsertNegativeZScale(t *testing.T) {
	content := doc(
		"0", "SECTION", "2", "HEADER",
		"9", "$INSUNITS", "70", "1",
		"0", "ENDSEC",
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK", "2", "A", "10", "0", "20", "0",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "INSERT", "2", "A", "10", "5", "20", "5",
		"41", "1", "42", "1", "43", "-1", "50", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)
	p := NewParser()
	shapes := parseString(t, p, content, 0, 0)
	if len(shapes) != 1 {
		t.Fatalf("shapes: got %d, want 1", len(shapes))
	}
	// Raw geometry runs from (-5,5) to (-6,5); after the origin-align
	// and Y-flip it reads (1,0) to (0,0).
	path, ok := shapes[0].(*geom.Path)
	if !ok {
		t.Fatalf("expected *geom.Path, got %T", shapes[0])
	}
	m := path.Cmds[0].(geom.MoveTo)
	l := path.Cmds[1].(geom.LineTo)
	if math.Abs(m.X-1) > 1e-9 || math.Abs(m.Y) > 1e-9 {
		t.Errorf("start: got (%v, %v), want (1, 0)", m.X, m.Y)
	}
	if math.Abs(l.X) > 1e-9 || math.Abs(l.Y) > 1e-9 {
		t.Errorf("end: got (%v, %v), want (0, 0)", l.X, l.Y)
	}
	b := p.Bounds()
	if math.Abs(b.MinX+6) > 1e-9 || math.Abs(b.MaxX+5) > 1e-9 || math.Abs(b.MinY-5) > 1e-9 {
		t.Errorf("raw bounds: got %+v, want [-6,-5] x [5,5]", b)
	}
}

func TestParseInsertIdentityPlacement(t *testing.T) {
	content := doc(
		"0", "SECTION", "2", "HEADER",
		"9", "$INSUNITS", "70", "1",
		"0", "ENDSEC",
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK", "2", "B", "10", "0", "20", "0",
		"0", "LINE", "10", "1", "20", "2", "11", "3", "21", "4",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "INSERT", "2", "B", "10", "10", "20", "20",
		"0", "LINE", "10", "11", "20", "22", "11", "13", "21", "24",
		"0", "ENDSEC",
		"0", "EOF",
	)
	p := NewParser()
	shapes := parseString(t, p, content, 0, 0)
	if len(shapes) != 2 {
		t.Fatalf("shapes: got %d, want 2", len(shapes))
	}
	// The insert at (10,20) of a line (1,2)-(3,4) must coincide with
	// the directly drawn line (11,22)-(13,24).
	a := shapes[0].(*geom.Path).Cmds
	b := shapes[1].(*geom.Path).Cmds
	if len(a) != len(b) {
		t.Fatalf("command count mismatch: %d vs %d", len(a), len(b))
	}
	am, bm := a[0].(geom.MoveTo), b[0].(geom.MoveTo)
	if math.Abs(am.X-bm.X) > 1e-9 || math.Abs(am.Y-bm.Y) > 1e-9 {
		t.Errorf("inserted start (%v, %v) differs from direct start (%v, %v)", am.X, am.Y, bm.X, bm.Y)
	}
	al, bl := a[1].(geom.LineTo), b[1].(geom.LineTo)
	if math.Abs(al.X-bl.X) > 1e-9 || math.Abs(al.Y-bl.Y) > 1e-9 {
		t.Errorf("inserted end (%v, %v) differs from direct end (%v, %v)", al.X, al.Y, bl.X, bl.Y)
	}
}

func TestParseUnknownEntityResilience(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dxfreader.dxf")
	defer teardown()

	content := entitiesDoc("1",
		"0", "SPLINE", "70", "0", "73", "4",
		"10", "0", "20", "0",
		"10", "1", "20", "0",
		"10", "1", "20", "1",
		"10", "0", "20", "1",
		"0", "FOO",
		"10", "junk", "20", "more junk", "99", "?",
	)
	p := NewParser()
	shapes := parseString(t, p, content, 0, 0)
	if len(shapes) != 1 {
		t.Fatalf("shapes: got %d, want exactly the spline", len(shapes))
	}
}

func TestParseMalformedNumberDiscardsEntityOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dxfreader.dxf")
	defer teardown()

	content := entitiesDoc("1",
		"0", "LINE", "10", "not-a-number", "20", "0", "11", "1", "21", "1",
		"0", "CIRCLE", "10", "0", "20", "0", "40", "2",
	)
	p := NewParser()
	shapes := parseString(t, p, content, 0, 0)
	if len(shapes) != 1 {
		t.Fatalf("shapes: got %d, want 1 (the circle)", len(shapes))
	}
	if _, ok := shapes[0].(*geom.Circle); !ok {
		t.Errorf("surviving shape: got %T, want *geom.Circle", shapes[0])
	}
}

func TestParseMalformedStreamAborts(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(strings.NewReader("0\nSECTION\nnot-a-code\nvalue\n"), 0, 0)
	if !errors.Is(err, ErrMalformedStream) {
		t.Errorf("expected ErrMalformedStream, got %v", err)
	}
}

func TestParseEmptyResult(t *testing.T) {
	p := NewParser()
	shapes := parseString(t, p, doc("0", "SECTION", "2", "ENTITIES", "0", "ENDSEC", "0", "EOF"), 0, 0)
	if len(shapes) != 0 {
		t.Fatalf("shapes: got %d, want 0", len(shapes))
	}
	if !p.Empty() {
		t.Error("expected Empty() after a drawing with no geometry")
	}
}

func TestParseIdempotent(t *testing.T) {
	content := entitiesDoc("4",
		"0", "LWPOLYLINE", "90", "3", "70", "0",
		"10", "0", "20", "0",
		"10", "10", "20", "0", "42", "0.5",
		"10", "10", "20", "10",
	)
	p := NewParser()
	first := parseString(t, p, content, 5, 0)
	second := parseString(t, p, content, 5, 0)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same stream twice produced different command streams")
	}
}

func TestPolylineMatchesLwPolyline(t *testing.T) {
	// An open POLYLINE with no bulges and an LWPOLYLINE over the same
	// control points emit identical command streams.
	poly := entitiesDoc("1",
		"0", "POLYLINE", "70", "0",
		"0", "VERTEX", "10", "0", "20", "0",
		"0", "VERTEX", "10", "5", "20", "0",
		"0", "VERTEX", "10", "5", "20", "3",
		"0", "SEQEND",
	)
	lw := entitiesDoc("1",
		"0", "LWPOLYLINE", "90", "3", "70", "0",
		"10", "0", "20", "0",
		"10", "5", "20", "0",
		"10", "5", "20", "3",
	)
	p := NewParser()
	a := parseString(t, p, poly, 0, 0)
	b := parseString(t, p, lw, 0, 0)
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("shape counts: got %d and %d, want 1 and 1", len(a), len(b))
	}
	if !reflect.DeepEqual(a[0].Commands(), b[0].Commands()) {
		t.Errorf("command streams differ:\n%v\n%v", a[0].Commands(), b[0].Commands())
	}
}

func TestHeaderVariableAccessor(t *testing.T) {
	content := doc(
		"0", "SECTION", "2", "HEADER",
		"9", "$ACADVER", "1", "AC1015",
		"9", "$INSUNITS", "70", "4",
		"0", "ENDSEC",
		"0", "EOF",
	)
	p := NewParser()
	parseString(t, p, content, 0, 0)
	if got := p.HeaderVariable("$ACADVER"); got != "AC1015" {
		t.Errorf("$ACADVER: got %q, want AC1015", got)
	}
	if got := p.HeaderVariable("$MEASUREMENT"); got != "no header" {
		t.Errorf("missing variable: got %q, want \"no header\"", got)
	}
}

func TestCountByType(t *testing.T) {
	content := entitiesDoc("1",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
		"0", "LINE", "10", "1", "20", "1", "11", "2", "21", "2",
		"0", "CIRCLE", "10", "0", "20", "0", "40", "1",
	)
	p := NewParser()
	parseString(t, p, content, 0, 0)
	counts := p.CountByType()
	if counts["LINE"] != 2 || counts["CIRCLE"] != 1 {
		t.Errorf("counts: got %v, want LINE:2 CIRCLE:1", counts)
	}
}

func TestDimensionFilteredByDefault(t *testing.T) {
	content := doc(
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK", "2", "*D1", "70", "2", "10", "0", "20", "0",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "DIMENSION", "2", "*D1",
		"0", "ENDSEC",
		"0", "EOF",
	)
	p := NewParser()
	shapes := parseString(t, p, content, 0, 0)
	if len(shapes) != 0 {
		t.Fatalf("dimension rendered while filtered off: %d shapes", len(shapes))
	}

	p.DrawDimen = true
	shapes = parseString(t, p, content, 0, 0)
	if len(shapes) != 1 {
		t.Fatalf("dimension missing with DrawDimen on: %d shapes", len(shapes))
	}
}
