package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	idRegex       = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	timeZoneRegex = regexp.MustCompile(`^[A-Za-z_]+(/[A-Za-z0-9_+\-]+)*$`)
)

// ValidateID accepts professional and session identifiers.
func ValidateID(id string) bool {
	return idRegex.MatchString(id)
}

// ValidateTimeZoneName checks the shape of an IANA zone name before it is
// handed to time.LoadLocation.
func ValidateTimeZoneName(name string) bool {
	return timeZoneRegex.MatchString(name)
}

func ValidateNotes(notes string, maxRunes int) bool {
	return utf8.RuneCountInString(notes) <= maxRunes
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '\'' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}

// FoldText lowercases s, strips diacritics and collapses whitespace so that
// "Ansiedad" matches "ansíedad " and "Pérez" matches "perez".
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// ContainsFolded reports whether needle occurs in haystack after folding both.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(FoldText(haystack), FoldText(needle))
}
