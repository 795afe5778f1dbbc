package sanitizer

import (
	"strings"
)

// DefaultMaxFilenameLength is the common filesystem limit for a single name.
const DefaultMaxFilenameLength = 255

// entities produced by escapeHTML. An ampersand that already starts one of
// them is left untouched, which keeps HTML idempotent.
var htmlEntities = [...]string{"&lt;", "&gt;", "&amp;", "&#34;", "&#39;"}

// HTML neutralizes markup.
//
// Without allowed tags every <, >, &, " and ' is replaced by its entity.
// With allowed tags, markup is stripped instead: disallowed tags and comments
// are removed while their text content stays, and allowed tags are rebuilt
// without attributes (so <b onclick=...> becomes <b>). Stripping repeats until
// the text is stable, so fragments like "<scr<x>ipt>" cannot reassemble.
func HTML(s string, allowedTags ...string) string {
	if len(allowedTags) == 0 {
		return escapeHTML(s)
	}

	allowed := make(map[string]struct{}, len(allowedTags))
	for _, tag := range allowedTags {
		allowed[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	// Every pass either shortens the text or only lower-cases allowed tags,
	// so len(s)+2 passes always reach a fixed point.
	for range len(s) + 2 {
		next := stripTags(s, allowed)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// EscapeHTML is HTML without an allow-list.
func EscapeHTML(s string) string {
	return escapeHTML(s)
}

func escapeHTML(s string) string {
	if !strings.ContainsAny(s, `<>&"'`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if startsWithEntity(s[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func startsWithEntity(s string) bool {
	for _, e := range htmlEntities {
		if strings.HasPrefix(s, e) {
			return true
		}
	}
	return false
}

func stripTags(s string, allowed map[string]struct{}) string {
	s = htmlCommentRegex.ReplaceAllString(s, "")
	return htmlTagRegex.ReplaceAllStringFunc(s, func(tag string) string {
		m := htmlTagRegex.FindStringSubmatch(tag)
		name := strings.ToLower(m[1])
		if _, ok := allowed[name]; !ok {
			return ""
		}
		if strings.HasPrefix(tag, "</") {
			return "</" + name + ">"
		}
		return "<" + name + ">"
	})
}

// SQL escapes single quotes and backslashes by doubling them and breaks up
// the comment openers "--" and "/*" with a space. Already doubled quotes and
// backslashes are kept as a pair.
//
// This is a secondary defense only. Queries must still be parameterized.
func SQL(s string) string {
	if !strings.ContainsAny(s, `'\-*`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	var last byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\'', '\\':
			b.WriteByte(c)
			b.WriteByte(c)
			if i+1 < len(s) && s[i+1] == c {
				i++
			}
		case '-':
			if last == '-' {
				b.WriteByte(' ')
			}
			b.WriteByte(c)
		case '*':
			if last == '/' {
				b.WriteByte(' ')
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
		last = c
	}
	return b.String()
}

// Filename makes a user-supplied name safe to use as a single path element:
// path separators and NUL bytes are dropped, ".." sequences removed, leading
// dots stripped and the result clamped to maxLength runes. The result may be
// empty; callers decide whether that is acceptable.
func Filename(name string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return -1
		}
		return r
	}, name)
	safe = strings.ReplaceAll(safe, "..", "")
	safe = strings.TrimLeft(safe, ".")

	return clampRunes(safe, maxLength)
}
