package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wholder/DXFReader/dxf"
	"github.com/wholder/DXFReader/glyph"
	"github.com/wholder/DXFReader/svgout"
)

// sampleDXF builds a small but representative drawing: header with
// metric units, a block with its insertion, and a mix of entity types.
func sampleDXF() string {
	groups := []string{
		"0", "SECTION", "2", "HEADER",
		"9", "$ACADVER", "1", "AC1015",
		"9", "$INSUNITS", "70", "4",
		"0", "ENDSEC",
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK", "2", "BOLT", "10", "0", "20", "0",
		"0", "CIRCLE", "10", "0", "20", "0", "40", "3",
		"0", "LINE", "10", "-3", "20", "0", "11", "3", "21", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "LWPOLYLINE", "90", "4", "70", "1",
		"10", "0", "20", "0",
		"10", "100", "20", "0",
		"10", "100", "20", "60",
		"10", "0", "20", "60",
		"0", "ARC", "10", "50", "20", "30", "40", "10", "50", "0", "51", "180",
		"0", "INSERT", "2", "BOLT", "10", "20", "20", "20",
		"0", "INSERT", "2", "BOLT", "10", "80", "20", "20",
		"0", "SPLINE", "70", "0", "73", "4",
		"10", "10", "20", "40",
		"10", "40", "20", "55",
		"10", "60", "20", "45",
		"10", "90", "20", "50",
		"0", "TEXT", "1", "COVER PLATE", "10", "10", "20", "10", "40", "5",
		"0", "ENDSEC",
		"0", "EOF",
	}
	return strings.Join(groups, "\n") + "\n"
}

// TestE2E_ParseSampleDrawing tests the full parse pipeline over a
// generated file on disk.
func TestE2E_ParseSampleDrawing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.dxf")
	if err := os.WriteFile(path, []byte(sampleDXF()), 0644); err != nil {
		t.Fatalf("writing sample: %v", err)
	}

	p := dxf.NewParser()
	shapes, err := p.ParseFile(path, 2, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// LWPOLYLINE, ARC, two INSERTs, SPLINE; TEXT stays filtered off.
	if len(shapes) != 5 {
		t.Fatalf("shapes: got %d, want 5", len(shapes))
	}
	if p.Units() != "millimeters" {
		t.Errorf("units: got %q, want millimeters", p.Units())
	}
	if !p.Scaled() {
		t.Error("expected downscaling to 2 inches")
	}

	// 100mm (3.937in) wide drawing fitted into 2 inches.
	union := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		union = union.Union(s.Bounds())
	}
	maxAxis := math.Max(union.Width(), union.Height())
	if math.Abs(maxAxis-2) > 1e-6 {
		t.Errorf("fitted max axis: got %v, want 2", maxAxis)
	}

	counts := p.CountByType()
	for typ, want := range map[string]int{
		"LWPOLYLINE": 1, "ARC": 1, "INSERT": 2, "SPLINE": 1, "TEXT": 1,
	} {
		if counts[typ] != want {
			t.Errorf("count[%s]: got %d, want %d", typ, counts[typ], want)
		}
	}
}

// TestE2E_TextRendering tests the glyph outliner wired into the parse.
func TestE2E_TextRendering(t *testing.T) {
	outliner, err := glyph.NewOutliner()
	if err != nil {
		t.Fatalf("loading embedded font: %v", err)
	}

	p := dxf.NewParser()
	p.DrawText = true
	p.Outliner = outliner
	shapes, err := p.Parse(strings.NewReader(sampleDXF()), 0, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(shapes) != 6 {
		t.Fatalf("shapes with text: got %d, want 6", len(shapes))
	}
}

// TestE2E_SVGOutput tests that parsed shapes serialize to a valid SVG
// document.
func TestE2E_SVGOutput(t *testing.T) {
	p := dxf.NewParser()
	shapes, err := p.Parse(strings.NewReader(sampleDXF()), 4, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	tmp := filepath.Join(t.TempDir(), "out.svg")
	f, err := os.Create(tmp)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}
	defer f.Close()

	b := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		b = b.Union(s.Bounds())
	}
	if err := svgout.NewWriter(f).WriteShapes(shapes, b.Width(), b.Height()); err != nil {
		t.Fatalf("SVG write failed: %v", err)
	}

	content, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	svg := string(content)
	for _, want := range []string{"<svg", "<path", "</svg>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
	if got := strings.Count(svg, "<path"); got != len(shapes) {
		t.Errorf("path elements: got %d, want %d", got, len(shapes))
	}
}

// TestE2E_ParseTwiceMatches tests command-stream idempotence over the
// file-based entry point.
func TestE2E_ParseTwiceMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.dxf")
	if err := os.WriteFile(path, []byte(sampleDXF()), 0644); err != nil {
		t.Fatalf("writing sample: %v", err)
	}

	p := dxf.NewParser()
	first, err := p.ParseFile(path, 4, 0)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := p.ParseFile(path, 4, 0)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("shape counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := svgout.PathData(first[i]), svgout.PathData(second[i])
		if a != b {
			t.Errorf("shape %d differs between parses:\n%s\n%s", i, a, b)
		}
	}
}
