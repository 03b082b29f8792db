package dxf

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// codePages maps the $DWGCODEPAGE header value to the character map
// used to decode text values. Absent or unknown code pages leave
// values untouched (modern exporters write UTF-8).
var codePages = map[string]*charmap.Charmap{
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
}

// setCodePage installs the decoder for the named code page, if known.
func (p *Parser) setCodePage(name string) {
	cm, ok := codePages[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		tracer().Debugf("no decoder for code page %q, passing text through", name)
		p.decoder = nil
		return
	}
	p.decoder = cm.NewDecoder()
}

// decodeText converts a raw text value to UTF-8: the installed code
// page first, then DXF \U+XXXX escapes. If decoding fails the raw
// value is returned as a fallback.
func (p *Parser) decodeText(value string) string {
	if p.decoder != nil && !isASCII(value) {
		if out, _, err := transform.String(decoderFor(p.decoder), value); err == nil {
			value = out
		}
	}
	return unescapeUnicode(value)
}

// decoderFor resets the shared decoder before use.
func decoderFor(d *encoding.Decoder) transform.Transformer {
	d.Reset()
	return d
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// unescapeUnicode expands \U+XXXX escape sequences into runes,
// leaving every other character untouched.
func unescapeUnicode(s string) string {
	if !strings.Contains(s, `\U+`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], `\U+`) && i+7 <= len(s) {
			if code, err := strconv.ParseUint(s[i+3:i+7], 16, 32); err == nil {
				sb.WriteRune(rune(code))
				i += 7
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}
