// Package textdir resolves the reading direction for interface languages and
// text runs.
package textdir

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Direction is a paragraph reading direction.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ForLanguage returns the interface reading direction for a language tag:
// right to left for Arabic, left to right for everything else.
func ForLanguage(lang string) Direction {
	if IsArabic(lang) {
		return RTL
	}
	return LTR
}

// IsArabic reports whether the tag's base language is Arabic.
func IsArabic(lang string) bool {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return base.String() == "ar"
}

// OfText returns the direction of the first strong character in s, or
// fallback when s has none.
func OfText(s string, fallback Direction) Direction {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return LTR
		case bidi.R, bidi.AL:
			return RTL
		}
	}
	return fallback
}

const (
	lri = "\u2066"
	rli = "\u2067"
	pdi = "\u2069"
)

// Isolate wraps every line of s in a directional isolate so terminals that
// implement the Unicode bidi algorithm lay it out in direction d. Line breaks
// are preserved.
func Isolate(s string, d Direction) string {
	open := lri
	if d == RTL {
		open = rli
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = open + l + pdi
	}
	return strings.Join(lines, "\n")
}
