package dxf

import "strconv"

// Inches per drawing unit for each $INSUNITS code. Metric entries
// derive from 1 inch = 25.4 mm exactly; the astronomical entries use
// 1 AU = 1.495978707e11 m, 1 ly = 9.4607304725808e15 m and
// 1 pc = 3.0856775814913673e16 m.
const (
	inchesPerMM = 0.039370078740157
	inchesPerM  = 39.370078740157
)

var unitScale = [21]float64{
	0,                 // 0: unitless, resolved by the fallback toggle
	1.0,               // 1: inches
	12.0,              // 2: feet
	63360.0,           // 3: miles
	inchesPerMM,       // 4: millimeters
	0.39370078740157,  // 5: centimeters
	inchesPerM,        // 6: meters
	39370.078740157,   // 7: kilometers
	1e-6,              // 8: microinches
	1e-3,              // 9: mils
	36.0,              // 10: yards
	3.9370078740157e-9,   // 11: angstroms
	3.9370078740157e-8,   // 12: nanometers
	3.9370078740157e-5,   // 13: microns
	3.9370078740157,      // 14: decimeters
	393.70078740157,      // 15: decameters
	3937.0078740157,      // 16: hectometers
	39370078740.157,      // 17: gigameters
	5.8896799606299e12,   // 18: astronomical units
	3.7246970368268e17,   // 19: light years
	1.2148336853338e18,   // 20: parsecs
}

var unitName = [21]string{
	"unitless", "inches", "feet", "miles", "millimeters", "centimeters",
	"meters", "kilometers", "microinches", "mils", "yards", "angstroms",
	"nanometers", "microns", "decimeters", "decameters", "hectometers",
	"gigameters", "astronomical units", "light years", "parsecs",
}

// resolveUnits fixes uScale for the rest of the parse from the header
// variables. $INSUNITS wins; $LUNITS selects inches for the
// feet-and-inches display formats when $INSUNITS is absent. Unknown or
// missing codes keep the unitless fallback chosen by UseMillimeters.
func (p *Parser) resolveUnits() {
	if p.unitsSet {
		return
	}
	p.unitsSet = true
	if v, ok := p.header["$INSUNITS"]; ok {
		code, err := strconv.Atoi(v)
		if err != nil || code < 0 || code > 20 {
			tracer().Infof("ignoring unparsable $INSUNITS %q", v)
			return
		}
		if code == 0 {
			p.setUnitlessFallback()
			return
		}
		p.uScale = unitScale[code]
		p.units = unitName[code]
		tracer().Debugf("units: %s (%g in/unit)", p.units, p.uScale)
		return
	}
	if v, ok := p.header["$LUNITS"]; ok {
		// 3 = engineering, 4 = architectural: both imply feet-and-inches
		// drawings authored in inches.
		if code, err := strconv.Atoi(v); err == nil && (code == 3 || code == 4) {
			p.uScale = 1.0
			p.units = "inches"
			return
		}
	}
	p.setUnitlessFallback()
}

// setUnitlessFallback applies the UseMillimeters toggle for drawings
// that do not declare units.
func (p *Parser) setUnitlessFallback() {
	if p.UseMillimeters {
		p.uScale = inchesPerMM
		p.units = "millimeters"
	} else {
		p.uScale = 1.0
		p.units = "inches"
	}
}
