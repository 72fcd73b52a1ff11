package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators is the character class titles are split on before joining with
// "-". Note that ':' and ';' are deliberately absent; they are stripped from
// tokens instead of splitting them.
const separators = "\t !\"#$%&'()*-/<=>?@[\\]^_`{|},."

// Slugify derives a URL-safe identifier from a post title. The result only
// ever contains [a-z0-9-]; an empty input yields an empty slug. Slug-shaped
// input passes through unchanged, so Slugify is idempotent.
func Slugify(s string) string {
	s = strings.ToLower(s)

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		// Transliteration may introduce whitespace, so split again.
		for _, part := range strings.Fields(asciiFold(tok)) {
			if part = keepAlnum(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return strings.Join(out, "-")
}

// asciiFold strips diacritics by decomposing to NFD and removing combining
// marks. Runes with no ASCII approximation are dropped later by keepAlnum.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func keepAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)
}
