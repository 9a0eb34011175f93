package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the default locale of a Catalog.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header size read by ParseAcceptLanguage.
const maxAcceptLanguageLength = 4096

type langWithQ struct {
	tag language.Tag
	q   float64
}

// ParseAcceptLanguage parses an Accept-Language header, or a single tag,
// into tags ordered by decreasing quality. Malformed entries, wildcards and
// entries with q=0 are skipped.
func ParseAcceptLanguage(header string) []language.Tag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ
	for part := range strings.SplitSeq(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.TrimSpace(name)
		if name == "" || name == "*" {
			continue
		}

		q := 1.0
		if qPart, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			v, err := strconv.ParseFloat(qPart, 64)
			if err != nil || v < 0 || v > 1 {
				continue
			}
			q = v
		}
		if q == 0 {
			continue
		}

		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		languages = append(languages, langWithQ{tag: tag, q: q})
	}

	slices.SortStableFunc(languages, func(a, b langWithQ) int {
		return cmp.Compare(b.q, a.q)
	})

	tags := make([]language.Tag, len(languages))
	for i, l := range languages {
		tags[i] = l.tag
	}
	return tags
}
