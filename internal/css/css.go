// internal/css/css.go
package css

import (
	"sort"
	"strings"
)

// ValueKind tags the three value shapes a declaration can carry.
type ValueKind int

const (
	// KeywordValue is a bare identifier such as "auto" or "block".
	KeywordValue ValueKind = iota
	// LengthValue is a pixel length. Px is the only supported unit.
	LengthValue
	// ColorValue is an RGBA color.
	ColorValue
)

// Unit enumerates length units. Only pixels are supported.
type Unit int

const (
	Px Unit = iota
)

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Value is the resolved value of a declaration: a keyword, a pixel
// length, or a color, selected by Kind.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Color   Color
}

// Keyword builds a keyword value.
func Keyword(s string) Value { return Value{Kind: KeywordValue, Keyword: s} }

// Length builds a pixel-length value.
func Length(px float64) Value { return Value{Kind: LengthValue, Length: px, Unit: Px} }

// FromColor builds a color value.
func FromColor(c Color) Value { return Value{Kind: ColorValue, Color: c} }

// ToPx returns the pixel magnitude of a length value. Every other kind
// (including the "auto" keyword) contributes zero, which is exactly what
// the box-model summation step needs.
func (v Value) ToPx() float64 {
	if v.Kind == LengthValue {
		return v.Length
	}
	return 0.0
}

// IsAuto reports whether the value is the "auto" keyword.
func (v Value) IsAuto() bool {
	return v.Kind == KeywordValue && v.Keyword == "auto"
}

// IsKeyword reports whether the value is the given keyword.
func (v Value) IsKeyword(s string) bool {
	return v.Kind == KeywordValue && v.Keyword == s
}

// Declaration is a single property: value pair.
type Declaration struct {
	Name  string
	Value Value
}

// Specificity is the (id, class, tag) priority triple of a selector.
// Compared lexicographically, higher wins.
type Specificity struct {
	IDs     int
	Classes int
	Tags    int
}

// Less reports whether s ranks strictly below o.
func (s Specificity) Less(o Specificity) bool {
	if s.IDs != o.IDs {
		return s.IDs < o.IDs
	}
	if s.Classes != o.Classes {
		return s.Classes < o.Classes
	}
	return s.Tags < o.Tags
}

// Selector is a simple selector: an optional tag name, an optional id,
// and a conjunctive set of class names. All present parts must match.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity computes the selector's priority triple.
func (s Selector) Specificity() Specificity {
	sp := Specificity{Classes: len(s.Classes)}
	if s.ID != "" {
		sp.IDs = 1
	}
	if s.TagName != "" && s.TagName != "*" {
		sp.Tags = 1
	}
	return sp
}

// IsValid reports whether the selector has at least one component.
func (s Selector) IsValid() bool {
	return s.TagName != "" || s.ID != "" || len(s.Classes) > 0
}

// String renders the selector back to source form, for logs and tests.
func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.TagName)
	if s.ID != "" {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}

// Rule pairs a selector list with its declarations. Selectors are kept
// sorted by descending specificity, so the first selector that matches an
// element is also the rule's highest-priority match.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// sortSelectors orders the rule's selectors by descending specificity.
func (r *Rule) sortSelectors() {
	sort.SliceStable(r.Selectors, func(i, j int) bool {
		return r.Selectors[j].Specificity().Less(r.Selectors[i].Specificity())
	})
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// namedColors is the small keyword palette the parser recognizes.
var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor interprets a value string as a color: a named color or a
// #rgb/#rrggbb/#rrggbbaa hex literal.
func ParseColor(value string) (Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if c, ok := namedColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, false
		}
	}

	var r, g, b uint8
	a := uint8(255)
	switch len(hex) {
	case 3:
		r = hexDigit(hex[0]) * 17
		g = hexDigit(hex[1]) * 17
		b = hexDigit(hex[2]) * 17
	case 6:
		r = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		g = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		b = hexDigit(hex[4])<<4 | hexDigit(hex[5])
	case 8:
		r = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		g = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		b = hexDigit(hex[4])<<4 | hexDigit(hex[5])
		a = hexDigit(hex[6])<<4 | hexDigit(hex[7])
	default:
		return Color{}, false
	}
	return Color{R: r, G: g, B: b, A: a}, true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexDigit(c byte) uint8 {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
