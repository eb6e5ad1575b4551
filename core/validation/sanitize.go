package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	octetPattern      = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeText reduces a raw form value to a single trimmed line of plain
// text: tags and percent-encoded octets are removed and whitespace runs
// collapse to one space. Invalid UTF-8 yields the empty string.
func SanitizeText(raw string) string {
	if !utf8.ValidString(raw) {
		return ""
	}
	s := tagPattern.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = octetPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
