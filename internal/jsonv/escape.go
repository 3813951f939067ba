package jsonv

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Quote returns s as a quoted JSON string literal. HTML characters and the
// line and paragraph separators are left unescaped, matching JSON.stringify.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	q := strings.TrimSuffix(buf.String(), "\n")
	if !strings.Contains(q, `\u202`) {
		return q
	}
	return unescapeSeparators(q)
}

// unescapeSeparators turns \u2028 and \u2029 back into raw runes, leaving
// escaped backslashes alone
func unescapeSeparators(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		if q[i] != '\\' || i+1 == len(q) {
			b.WriteByte(q[i])
			continue
		}
		if seq := q[i+1:]; strings.HasPrefix(seq, "u2028") || strings.HasPrefix(seq, "u2029") {
			if seq[4] == '8' {
				b.WriteRune('\u2028')
			} else {
				b.WriteRune('\u2029')
			}
			i += 5
			continue
		}
		b.WriteByte(q[i])
		b.WriteByte(q[i+1])
		i++
	}
	return b.String()
}

// Escape returns the JSON escaping of s without the surrounding quotes
func Escape(s string) string {
	q := Quote(s)
	return q[1 : len(q)-1]
}

// Unescape reverses Escape
func Unescape(escaped string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(`"`+escaped+`"`), &s); err != nil {
		return "", err
	}
	return s, nil
}
