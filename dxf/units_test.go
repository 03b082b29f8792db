package dxf

import (
	"math"
	"testing"
)

func headerDoc(pairs ...string) string {
	groups := []string{"0", "SECTION", "2", "HEADER"}
	groups = append(groups, pairs...)
	groups = append(groups, "0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
		"0", "ENDSEC", "0", "EOF")
	return doc(groups...)
}

func TestUnitsMillimeters(t *testing.T) {
	p := NewParser()
	parseString(t, p, headerDoc("9", "$INSUNITS", "70", "4"), 0, 0)
	if p.Units() != "millimeters" {
		t.Errorf("units: got %q, want millimeters", p.Units())
	}
	if math.Abs(p.uScale-0.039370078740157) > 1e-15 {
		t.Errorf("uScale: got %v, want 0.039370078740157", p.uScale)
	}
}

func TestUnitsInches(t *testing.T) {
	p := NewParser()
	parseString(t, p, headerDoc("9", "$INSUNITS", "70", "1"), 0, 0)
	if p.Units() != "inches" || p.uScale != 1.0 {
		t.Errorf("got %q / %v, want inches / 1.0", p.Units(), p.uScale)
	}
}

func TestUnitsTableSpotChecks(t *testing.T) {
	cases := []struct {
		code  string
		name  string
		scale float64
	}{
		{"2", "feet", 12},
		{"3", "miles", 63360},
		{"5", "centimeters", 0.39370078740157},
		{"6", "meters", 39.370078740157},
		{"8", "microinches", 1e-6},
		{"9", "mils", 1e-3},
		{"10", "yards", 36},
		{"14", "decimeters", 3.9370078740157},
	}
	for _, tc := range cases {
		p := NewParser()
		parseString(t, p, headerDoc("9", "$INSUNITS", "70", tc.code), 0, 0)
		if p.Units() != tc.name {
			t.Errorf("code %s: units got %q, want %q", tc.code, p.Units(), tc.name)
		}
		if math.Abs(p.uScale-tc.scale) > tc.scale*1e-12 {
			t.Errorf("code %s: uScale got %v, want %v", tc.code, p.uScale, tc.scale)
		}
	}
}

func TestUnitlessDefaultsToMillimeters(t *testing.T) {
	p := NewParser()
	parseString(t, p, headerDoc("9", "$INSUNITS", "70", "0"), 0, 0)
	if p.Units() != "millimeters" {
		t.Errorf("units: got %q, want millimeters", p.Units())
	}
}

func TestUnitlessWithMillimetersOffSelectsInches(t *testing.T) {
	p := NewParser()
	p.UseMillimeters = false
	parseString(t, p, headerDoc("9", "$INSUNITS", "70", "0"), 0, 0)
	if p.Units() != "inches" || p.uScale != 1.0 {
		t.Errorf("got %q / %v, want inches / 1.0", p.Units(), p.uScale)
	}
}

func TestMissingHeaderUsesFallback(t *testing.T) {
	p := NewParser()
	parseString(t, p, doc(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
		"0", "ENDSEC", "0", "EOF"), 0, 0)
	if p.Units() != "millimeters" {
		t.Errorf("units: got %q, want millimeters fallback", p.Units())
	}
}

func TestLUnitsArchitecturalSelectsInches(t *testing.T) {
	p := NewParser()
	parseString(t, p, headerDoc("9", "$LUNITS", "70", "4"), 0, 0)
	if p.Units() != "inches" || p.uScale != 1.0 {
		t.Errorf("got %q / %v, want inches / 1.0", p.Units(), p.uScale)
	}
}

func TestUnknownInsunitsKeepsFallback(t *testing.T) {
	p := NewParser()
	parseString(t, p, headerDoc("9", "$INSUNITS", "70", "99"), 0, 0)
	if p.Units() != "millimeters" {
		t.Errorf("units: got %q, want millimeters", p.Units())
	}
}

func TestUScaleAppliesToCoordinates(t *testing.T) {
	p := NewParser()
	parseString(t, p, headerDoc("9", "$INSUNITS", "70", "2"), 0, 0)
	// One drawing unit of line becomes one foot: 12 x 12 inches of
	// diagonal bounds.
	b := p.Bounds()
	if math.Abs(b.Width()-12) > 1e-9 || math.Abs(b.Height()-12) > 1e-9 {
		t.Errorf("bounds: got %v x %v, want 12 x 12", b.Width(), b.Height())
	}
}
