// Package dxf parses ASCII DXF (Drawing Interchange Format) drawings
// into device-independent planar shapes expressed in inches.
//
// The parser is a stack-based driver over the file's tagged-group
// stream: every logical record is a pair of lines, an integer group
// code and a value. Entities are assembled by per-type interpreters,
// units are resolved from the HEADER section, and a final pass scales
// the drawing uniformly into a caller-supplied size window with the Y
// axis flipped for screen display.
//
// Basic usage:
//
//	f, err := os.Open("drawing.dxf")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	p := dxf.NewParser()
//	shapes, err := p.Parse(f, 10, 0)
//	if err != nil {
//	    return fmt.Errorf("parsing DXF file: %w", err)
//	}
//	fmt.Printf("%d shapes, %s, bounds %v\n", len(shapes), p.Units(), p.Bounds())
//
// The parser is forgiving: unknown entity types are skipped silently,
// and an entity whose numeric data fails to parse is discarded without
// aborting the rest of the drawing.
package dxf

import "github.com/npillmayer/schuko/tracing"

// tracer returns the trace sink for the dxf package namespace.
func tracer() tracing.Trace {
	return tracing.Select("dxfreader.dxf")
}
