// Package svgout serializes parsed drawing shapes to a standalone SVG
// document, the display-facing output of the DXF pipeline. Shapes
// arrive already in the screen frame (Y down, origin at the top
// left), so coordinates pass through unchanged.
package svgout

import (
	"fmt"
	"io"
	"strings"

	"github.com/wholder/DXFReader/geom"
)

// Writer emits SVG to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter creates an SVG writer that outputs to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteShapes writes a complete SVG document containing one <path>
// element per shape, stroked with no fill. width and height set the
// viewBox; pass the fitted drawing bounds.
func (w *Writer) WriteShapes(shapes []geom.Shape, width, height float64) error {
	if err := w.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"); err != nil {
		return err
	}
	if err := w.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %s %s\">\n",
		num(width), num(height)); err != nil {
		return err
	}
	stroke := width / 400
	if height/400 > stroke {
		stroke = height / 400
	}
	if stroke <= 0 {
		stroke = 0.01
	}
	for _, s := range shapes {
		d := PathData(s)
		if d == "" {
			continue
		}
		if err := w.printf("  <path d=\"%s\" fill=\"none\" stroke=\"black\" stroke-width=\"%s\"/>\n",
			d, num(stroke)); err != nil {
			return err
		}
	}
	return w.printf("</svg>\n")
}

func (w *Writer) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w.w, format, args...)
	return err
}

// ToString renders the shapes as an SVG document string.
func ToString(shapes []geom.Shape, width, height float64) string {
	var sb strings.Builder
	_ = NewWriter(&sb).WriteShapes(shapes, width, height)
	return sb.String()
}

// PathData converts one shape to an SVG path data string. Arc commands
// are flattened to cubic Beziers so the output renders identically
// everywhere.
func PathData(s geom.Shape) string {
	var sb strings.Builder
	for _, c := range s.Commands() {
		switch cmd := c.(type) {
		case geom.MoveTo:
			fmt.Fprintf(&sb, "M%s %s", num(cmd.X), num(cmd.Y))
		case geom.LineTo:
			fmt.Fprintf(&sb, "L%s %s", num(cmd.X), num(cmd.Y))
		case geom.CurveTo:
			writeCubic(&sb, cmd)
		case geom.ArcSeg:
			for _, cu := range cmd.Cubics() {
				writeCubic(&sb, cu)
			}
		case geom.EllipticalArc:
			for _, cu := range cmd.Cubics() {
				writeCubic(&sb, cu)
			}
		case geom.ClosePath:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func writeCubic(sb *strings.Builder, c geom.CurveTo) {
	fmt.Fprintf(sb, "C%s %s %s %s %s %s",
		num(c.X1), num(c.Y1), num(c.X2), num(c.Y2), num(c.X), num(c.Y))
}

// num formats a coordinate compactly.
func num(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
