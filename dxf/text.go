package dxf

import (
	"math"
	"strings"
	"unicode"

	"github.com/wholder/DXFReader/geom"
)

// Outlines are requested at ten times the text height so integer-point
// outliners keep usable precision; the placement transform compensates
// with a 0.1 scale.
const textOverscale = 10

// text interprets a TEXT entity. The glyph outlines come from the
// injected GlyphOutliner at shape time; the interpreter handles the
// DXF side: %% control codes, justification, rotation and placement.
type text struct {
	baseEntity
	content  string
	ix, iy   float64
	ax, ay   float64
	height   float64
	rotation float64 // degrees
	hAdjust  int
	vAdjust  int
	style    string
}

func (*text) isAutoPop()      {}
func (*text) dxfType() string { return "TEXT" }

func (t *text) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 1:
		t.content = decodeControlCodes(p.decodeText(value))
	case 7:
		t.style = value
	case 10:
		t.ix, err = p.coord(value)
	case 20:
		t.iy, err = p.coord(value)
	case 11:
		t.ax, err = p.coord(value)
	case 21:
		t.ay, err = p.coord(value)
	case 40:
		t.height, err = p.coord(value)
	case 50:
		t.rotation, err = parseFloat(value)
	case 72:
		t.hAdjust, err = parseInt(value)
	case 73:
		t.vAdjust, err = parseInt(value)
	}
	return false, err
}

func (t *text) shape(p *Parser) geom.Shape {
	if t.content == "" || t.height <= 0 {
		return nil
	}
	outline, err := p.outliner().Outline(t.content, t.fontFamily(), t.height*textOverscale, true, true, 0)
	if err != nil || outline == nil || outline.IsEmpty() {
		if err != nil {
			tracer().Errorf("glyph outline for %q: %v", t.content, err)
		}
		return nil
	}
	ix, iy := t.ix, t.iy
	if t.hAdjust != 0 || t.vAdjust != 0 {
		ix, iy = t.ax, t.ay
	}
	jx, jy := justifyOffset(outline.Bounds(), t.hAdjust, t.vAdjust)
	at := geom.Identity().
		Translate(ix, iy).
		Rotate(t.rotation * math.Pi / 180).
		Scale(1.0/textOverscale, -1.0/textOverscale).
		Translate(jx, jy)
	return outline.Transform(at)
}

func (t *text) fontFamily() string {
	if t.style != "" {
		return t.style
	}
	return "Helvetica"
}

// justifyOffset computes the translation, in font space, that moves
// the outline so the insertion point plays the role the justification
// codes ask for. Horizontal: 0 left, 1 center, 2 right, 4 middle.
// Vertical: 0 baseline, 1 bottom, 2 middle, 3 top.
func justifyOffset(b geom.Rect, hAdjust, vAdjust int) (float64, float64) {
	var dx, dy float64
	switch hAdjust {
	case 1, 4:
		dx = -(b.MinX + b.MaxX) / 2
	case 2:
		dx = -b.MaxX
	}
	switch vAdjust {
	case 1:
		dy = -b.MaxY
	case 2:
		dy = -(b.MinY + b.MaxY) / 2
	case 3:
		dy = -b.MinY
	}
	return dx, dy
}

// decodeControlCodes expands the %% control codes legacy TEXT values
// carry: %%d degree, %%p plus/minus, %%c diameter; %%u and %%o
// (underline/overline toggles) are dropped; a numeric %%nnn code is an
// unsupported raw glyph reference and becomes U+FFFD.
func decodeControlCodes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && s[i+1] == '%' {
			c := s[i+2]
			switch unicode.ToLower(rune(c)) {
			case 'd':
				sb.WriteRune('°')
				i += 3
				continue
			case 'p':
				sb.WriteRune('±')
				i += 3
				continue
			case 'c':
				sb.WriteRune('Ø')
				i += 3
				continue
			case 'u', 'o':
				i += 3
				continue
			}
			if c >= '0' && c <= '9' {
				j := i + 2
				for j < len(s) && s[j] >= '0' && s[j] <= '9' {
					j++
				}
				sb.WriteRune('�')
				i = j
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// mText interprets an MTEXT entity. The content string is a small
// markup language of backslash escapes; only the first resulting line
// is rendered.
type mText struct {
	baseEntity
	raw        string
	ix, iy     float64
	xRot, yRot float64
	height     float64
	refWidth   float64
	attach     int
}

func (*mText) isAutoPop()      {}
func (*mText) dxfType() string { return "MTEXT" }

func (m *mText) addParm(p *Parser, code int, value string) (bool, error) {
	var err error
	switch code {
	case 1:
		m.raw += p.decodeText(value)
	case 3:
		// Long content arrives in leading group-3 chunks.
		m.raw += p.decodeText(value)
	case 10:
		m.ix, err = p.coord(value)
	case 20:
		m.iy, err = p.coord(value)
	case 11:
		m.xRot, err = parseFloat(value)
	case 21:
		m.yRot, err = parseFloat(value)
	case 40:
		m.height, err = p.coord(value)
	case 41:
		m.refWidth, err = p.coord(value)
	case 71:
		m.attach, err = parseInt(value)
	}
	return false, err
}

func (m *mText) shape(p *Parser) geom.Shape {
	lines := parseMTextContent(m.raw)
	if len(lines) == 0 || m.height <= 0 {
		return nil
	}
	content := lines[0]
	if runes := []rune(content); len(runes) > 30 && m.refWidth > 0 {
		content = string(runes[:30]) + "…"
	}
	if content == "" {
		return nil
	}
	outline, err := p.outliner().Outline(content, "Helvetica", m.height*textOverscale, true, true, 0)
	if err != nil || outline == nil || outline.IsEmpty() {
		if err != nil {
			tracer().Errorf("glyph outline for %q: %v", content, err)
		}
		return nil
	}
	hAdjust, vAdjust := attachmentAdjust(m.attach)
	jx, jy := justifyOffset(outline.Bounds(), hAdjust, vAdjust)
	rot := math.Atan2(m.yRot, m.xRot)
	at := geom.Identity().
		Translate(m.ix, m.iy).
		Rotate(rot).
		Scale(1.0/textOverscale, -1.0/textOverscale).
		Translate(jx, jy)
	return outline.Transform(at)
}

// attachmentAdjust maps the MTEXT attachment point (1..9, reading
// order top-left to bottom-right) to TEXT-style justification codes.
func attachmentAdjust(attach int) (hAdjust, vAdjust int) {
	if attach < 1 || attach > 9 {
		return 0, 0
	}
	switch (attach - 1) % 3 {
	case 0:
		hAdjust = 0
	case 1:
		hAdjust = 1
	case 2:
		hAdjust = 2
	}
	switch (attach - 1) / 3 {
	case 0:
		vAdjust = 3
	case 1:
		vAdjust = 2
	case 2:
		vAdjust = 1
	}
	return hAdjust, vAdjust
}

// stackedFractions maps the common \S numerator/denominator pairs to
// their single-rune forms.
var stackedFractions = map[string]rune{
	"1/2": '½', "1/3": '⅓', "1/4": '¼', "2/3": '⅔', "3/4": '¾',
}

// parseMTextContent strips MTEXT markup and splits the content into
// paragraph lines. Recognized escapes: single-letter parameter codes
// (\A \C \F \H \Q \T \W) consume through the following semicolon,
// \S composes a stacked fraction, \P breaks the paragraph, and
// \\ \{ \} are literals. Bare braces are grouping markers and are
// dropped.
func parseMTextContent(s string) []string {
	var lines []string
	var sb strings.Builder
	flush := func() {
		lines = append(lines, sb.String())
		sb.Reset()
	}
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '{', '}':
			i++
		case '\\':
			if i+1 >= len(s) {
				i++
				continue
			}
			esc := s[i+1]
			switch esc {
			case '\\', '{', '}':
				sb.WriteByte(esc)
				i += 2
			case 'P':
				flush()
				i += 2
			case 'S':
				end := strings.IndexByte(s[i+2:], ';')
				if end < 0 {
					i += 2
					continue
				}
				frac := s[i+2 : i+2+end]
				if r, ok := stackedFractions[frac]; ok {
					sb.WriteRune(r)
				} else {
					sb.WriteString(strings.Replace(frac, "/", "⁄", 1))
				}
				i += 2 + end + 1
			case 'A', 'C', 'F', 'H', 'Q', 'T', 'W':
				end := strings.IndexByte(s[i+2:], ';')
				if end < 0 {
					i += 2
					continue
				}
				i += 2 + end + 1
			default:
				sb.WriteByte(esc)
				i += 2
			}
		default:
			sb.WriteByte(c)
			i++
		}
	}
	flush()
	return lines
}
