package address

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceR = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceR.ReplaceAllString(s, " "))
}

// RemovePunc drops punctuation. '#' survives because it marks a secondary
// unit, '/' survives because it appears in fractional house numbers.
func RemovePunc(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r == '#' || r == '/' || r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Titleize renders an uppercase token in title case ("SAN FRANCISCO" ->
// "San Francisco").
func Titleize(s string) string {
	return cases.Title(language.AmericanEnglish).String(strings.ToLower(s))
}

// Match reports whether the whole token matches the pattern, returning the
// matched text. Patterns used with Match must be anchored; OrPattern
// produces them that way.
func Match(s string, re *regexp.Regexp) (string, bool) {
	if re == nil || !re.MatchString(s) {
		return "", false
	}
	return s, true
}

// OrPattern builds an anchored alternation over literal words, in caller
// order. The anchors force a whole-token match, so no word can shadow an
// extension of itself regardless of order. An empty word list has no
// meaningful pattern and is an error.
func OrPattern(words []string) (string, error) {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return "", fmt.Errorf("empty word list")
	}
	return `^(?:` + strings.Join(quoted, "|") + `)$`, nil
}
