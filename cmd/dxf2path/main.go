// Command dxf2path parses DXF files and optionally outputs SVG.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/wholder/DXFReader/dxf"
	"github.com/wholder/DXFReader/glyph"
	"github.com/wholder/DXFReader/svgout"
)

func main() {
	maxSize := flag.Float64("size", 0, "Fit the longest axis down to this many inches (0 = no downscale)")
	minSize := flag.Float64("min", 0, "Fit the longest axis up to this many inches (0 = no upscale)")
	drawText := flag.Bool("text", false, "Render TEXT entities")
	drawMText := flag.Bool("mtext", false, "Render MTEXT entities")
	drawDimen := flag.Bool("dimen", false, "Render DIMENSION entities")
	inches := flag.Bool("inches", false, "Treat unitless drawings as inches instead of millimeters")
	outputFile := flag.String("o", "", "Output SVG file (default: summary to stdout)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.dxf>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputFile := flag.Arg(0)

	p := dxf.NewParser()
	p.DrawText = *drawText
	p.DrawMText = *drawMText
	p.DrawDimen = *drawDimen
	p.UseMillimeters = !*inches

	if *drawText || *drawMText {
		outliner, err := glyph.NewOutliner()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading font: %v\n", err)
			os.Exit(1)
		}
		p.Outliner = outliner
	}

	shapes, err := p.ParseFile(inputFile, *maxSize, *minSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DXF: %v\n", err)
		os.Exit(1)
	}
	if p.Empty() {
		fmt.Fprintf(os.Stderr, "No drawable entities in %s\n", inputFile)
		os.Exit(1)
	}

	bounds := p.Bounds()
	if *verbose {
		fmt.Fprintf(os.Stderr, "DXF File: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "  Units: %s\n", p.Units())
		fmt.Fprintf(os.Stderr, "  Bounds: %.4f x %.4f in\n", bounds.Width(), bounds.Height())
		fmt.Fprintf(os.Stderr, "  Scaled: %v\n", p.Scaled())
		fmt.Fprintf(os.Stderr, "  Shapes: %d\n", len(shapes))
	}

	if *outputFile != "" {
		w, h := fittedSize(bounds.Width(), bounds.Height(), *maxSize, *minSize)
		svg := svgout.ToString(shapes, w, h)
		if err := os.WriteFile(*outputFile, []byte(svg), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "SVG written to: %s\n", *outputFile)
		}
		return
	}

	// Default: show summary with entity counts.
	fmt.Printf("DXF File: %s\n", inputFile)
	fmt.Printf("  Units: %s\n", p.Units())
	fmt.Printf("  Bounds: %.4f x %.4f in\n", bounds.Width(), bounds.Height())
	fmt.Printf("  Shapes: %d\n", len(shapes))
	counts := p.CountByType()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-11s %d\n", t, counts[t])
	}
}

// fittedSize mirrors the parser's fit rule so the SVG viewBox matches
// the transformed shapes.
func fittedSize(w, h, maxSize, minSize float64) (float64, float64) {
	maxAxis := w
	if h > maxAxis {
		maxAxis = h
	}
	scale := 1.0
	switch {
	case maxSize > 0 && maxAxis > maxSize:
		scale = maxSize / maxAxis
	case minSize > 0 && maxAxis < minSize && maxAxis > 0:
		scale = minSize / maxAxis
	}
	return w * scale, h * scale
}
