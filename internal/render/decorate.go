package render

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// LargeNumber is the magnitude from which numbers are flagged as large
const LargeNumber = 1e6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01",
	"02-Jan-2006",
	time.RFC1123Z,
	time.RFC850,
}

// IsURL reports whether s is an absolute http or https URL
func IsURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsDate reports whether s parses as a date and contains a dash
func IsDate(s string) bool {
	if !strings.Contains(s, "-") {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// decorate adds best-effort type hints to a primitive span. A failure leaves
// the plain rendering in place.
func (r *Renderer) decorate(s *html.Node, v *jsonv.Value) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("value decoration failed", "panic", rec)
		}
	}()

	switch v.Kind() {
	case jsonv.KindString:
		str := v.Str()
		switch {
		case IsURL(str):
			SetAttr(s, AttrType, "url")
			link := element(atom.A, "",
				attr("href", str),
				attr("target", "_blank"),
				attr("rel", "noopener noreferrer"),
			)
			// move the escaped text into the link
			label := s.FirstChild
			s.RemoveChild(label)
			link.AppendChild(label)
			s.AppendChild(link)
		case IsEmail(str):
			SetAttr(s, AttrType, "email")
		case IsDate(str):
			SetAttr(s, AttrType, "date")
		}
	case jsonv.KindNumber:
		if math.Abs(v.Float64()) >= LargeNumber {
			SetAttr(s, AttrType, "large")
		}
	case jsonv.KindBool:
		SetAttr(s, "data-value", v.Literal())
	}
}
