package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// ToTitle upper-cases the first letter of every word and lower-cases the
// rest, using language independent rules.
func ToTitle(s string) string {
	return cases.Title(language.Und).String(s)
}

// ToKebabCase lower-cases s and joins its alphanumeric runs with hyphens.
func ToKebabCase(s string) string {
	return joinWords(strings.ToLower(strings.TrimSpace(s)), '-')
}

// ToSnakeCase lower-cases s and joins its alphanumeric runs with underscores.
func ToSnakeCase(s string) string {
	return joinWords(strings.ToLower(strings.TrimSpace(s)), '_')
}

func joinWords(s string, sep rune) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// ToCamelCase converts s to camelCase. Non-alphanumeric characters start a
// new word; the first word is lower-cased, the following ones capitalized.
func ToCamelCase(s string) string {
	var b strings.Builder
	newWord := false
	first := true
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			newWord = !first
			continue
		}
		switch {
		case first:
			b.WriteRune(unicode.ToLower(r))
			first = false
		case newWord:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
		newWord = false
	}

	return b.String()
}

// RemoveExtraWhitespace collapses whitespace runs into a single space and
// trims the result.
func RemoveExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// StripHTML removes tags and unescapes entities.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// KeepAlphanumeric keeps letters, digits and whitespace.
func KeepAlphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// SingleLine replaces line breaks with spaces and collapses whitespace.
func SingleLine(s string) string {
	return RemoveExtraWhitespace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s))
}
