package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreak = regexp.MustCompile(`-\s*[\r\n]+`)
	lineBreaks  = regexp.MustCompile(`[\r\n]+`)
	multiSpace  = regexp.MustCompile(`\s{2,}`)
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`,
	"‘", "'", "’", "'", "‚", "'", "`", "'",
)

// Sanitize cleans text selected from a PDF text layer.
// Hyphenated line breaks are joined, ligatures are expanded (NFKC),
// unusual spaces, line breaks and control characters become spaces,
// curly quotes become straight quotes and runs of whitespace collapse.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	t := hyphenBreak.ReplaceAllString(s, "")
	t = norm.NFKC.String(t)
	t = strings.Map(func(r rune) rune {
		if isOddSpace(r) {
			return ' '
		}
		return r
	}, t)
	t = lineBreaks.ReplaceAllString(t, " ")
	t = strings.Map(func(r rune) rune {
		if isC0orC1(r) {
			return ' '
		}
		return r
	}, t)
	t = quoteReplacer.Replace(t)
	t = multiSpace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

func isOddSpace(r rune) bool {
	switch {
	case r == '\u00A0', r == '\u202F', r == '\u205F', r == '\u3000':
		return true
	case r >= '\u2000' && r <= '\u200B':
		return true
	}
	return false
}

func isC0orC1(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

// IsBlank reports whether s has no visible characters.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
