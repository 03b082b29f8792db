// Package glyph provides the default GlyphOutliner for the DXF parser,
// backed by an embedded SFNT font. Outlines are extracted straight
// from the font's glyph program, so the result is resolution-
// independent path geometry rather than a rasterization.
package glyph

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/wholder/DXFReader/geom"
)

// tracer returns the trace sink for the glyph package namespace.
func tracer() tracing.Trace {
	return tracing.Select("dxfreader.glyph")
}

// Outliner converts text to outline paths using a single SFNT font.
// The requested font family is ignored: drawings reference fonts the
// host rarely has, and a stable metric substitute beats a missing one.
// It is safe for concurrent use.
type Outliner struct {
	fnt *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewOutliner returns an Outliner over the embedded Go Regular face.
func NewOutliner() (*Outliner, error) {
	return NewOutlinerFromFont(goregular.TTF)
}

// NewOutlinerFromFont parses raw SFNT bytes (TTF or OTF) and returns
// an Outliner over them. The data must not change afterwards.
func NewOutlinerFromFont(data []byte) (*Outliner, error) {
	fnt, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Outliner{fnt: fnt}, nil
}

// Outline renders text as one left-to-right line of glyph outlines.
// The returned path is in font space: Y grows downward and the first
// glyph's baseline origin is at (0, 0). Kerning pairs from the font
// are applied when kerning is set; tracking adds a constant extra
// advance after every glyph. Ligature substitution needs a shaping
// engine and is not performed; the flag is accepted for interface
// compatibility.
func (o *Outliner) Outline(text, family string, pointSize float64, kerning, ligatures bool, tracking float64) (*geom.Path, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ppem := fixed.Int26_6(pointSize*64 + 0.5)
	trackFixed := fixed.Int26_6(tracking*64 + 0.5)
	path := &geom.Path{}
	pen := fixed.Int26_6(0)
	prev := sfnt.GlyphIndex(0)
	havePrev := false

	for _, r := range text {
		gi, err := o.fnt.GlyphIndex(&o.buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph index for %q: %w", r, err)
		}
		if gi == 0 {
			tracer().Debugf("no glyph for %q, skipping", r)
			havePrev = false
			continue
		}
		if kerning && havePrev {
			if k, err := o.fnt.Kern(&o.buf, prev, gi, ppem, font.HintingNone); err == nil {
				pen += k
			}
		}
		segs, err := o.fnt.LoadGlyph(&o.buf, gi, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("loading glyph for %q: %w", r, err)
		}
		appendSegments(path, segs, pen)
		adv, err := o.fnt.GlyphAdvance(&o.buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("advance for %q: %w", r, err)
		}
		pen += adv + trackFixed
		prev = gi
		havePrev = true
	}
	return path, nil
}

// appendSegments converts one glyph's segments into path commands,
// offset by the pen position. Quadratic segments are promoted to
// cubics so the path model stays uniform.
func appendSegments(path *geom.Path, segs sfnt.Segments, pen fixed.Int26_6) {
	dx := f26(pen)
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p := seg.Args[0]
			path.MoveTo(f26(p.X)+dx, f26(p.Y))
		case sfnt.SegmentOpLineTo:
			p := seg.Args[0]
			path.LineTo(f26(p.X)+dx, f26(p.Y))
		case sfnt.SegmentOpQuadTo:
			q, p := seg.Args[0], seg.Args[1]
			quadTo(path, f26(q.X)+dx, f26(q.Y), f26(p.X)+dx, f26(p.Y))
		case sfnt.SegmentOpCubeTo:
			c1, c2, p := seg.Args[0], seg.Args[1], seg.Args[2]
			path.CurveTo(f26(c1.X)+dx, f26(c1.Y), f26(c2.X)+dx, f26(c2.Y), f26(p.X)+dx, f26(p.Y))
		}
	}
}

// quadTo appends a quadratic Bezier as the equivalent cubic. The
// current point is the end of the previous command.
func quadTo(path *geom.Path, qx, qy, x, y float64) {
	x0, y0 := currentPoint(path)
	path.CurveTo(
		x0+2.0/3.0*(qx-x0), y0+2.0/3.0*(qy-y0),
		x+2.0/3.0*(qx-x), y+2.0/3.0*(qy-y),
		x, y,
	)
}

// currentPoint returns the end point of the path's last drawing
// command.
func currentPoint(path *geom.Path) (float64, float64) {
	for i := len(path.Cmds) - 1; i >= 0; i-- {
		switch c := path.Cmds[i].(type) {
		case geom.MoveTo:
			return c.X, c.Y
		case geom.LineTo:
			return c.X, c.Y
		case geom.CurveTo:
			return c.X, c.Y
		}
	}
	return 0, 0
}

// f26 converts 26.6 fixed point to float64.
func f26(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
