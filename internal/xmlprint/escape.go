package xmlprint

import "strings"

// escapeText escapes character data for inclusion between tags: & must be
// escaped first so the escape sequences themselves are not re-escaped.
func escapeText(s string) string {
	return escapeCommon(s, false)
}

// escapeAttr escapes an attribute value, additionally escaping the double
// quote that delimits it.
func escapeAttr(s string) string {
	return escapeCommon(s, true)
}

func escapeCommon(s string, isAttr bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&apos;")
		case '"':
			if isAttr {
				b.WriteString("&quot;")
			} else {
				b.WriteByte('"')
			}
		case '\t', '\n', '\r':
			b.WriteRune(r)
		default:
			if r < 0x20 {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
