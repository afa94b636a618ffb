package content

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases s, drops accents and joins words with dashes
func Slugify(s string) string {
	// transform chains keep state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if sb.Len() > 0 && !dash {
			sb.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// canonicalLang normalizes a language code such as "EN_us" to "en-US"
func canonicalLang(code string) (string, error) {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if code == "" {
		return "", nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", code, err)
	}
	return tag.String(), nil
}

// Taxon is a named classification: a category, an author or a tag
type Taxon struct {
	Name string
	Slug string
}

// NewTaxon creates a taxon with a slug derived from name
func NewTaxon(name string) Taxon {
	name = strings.TrimSpace(name)
	return Taxon{Name: name, Slug: Slugify(name)}
}

// IsZero reports whether the taxon has no slug
func (t Taxon) IsZero() bool {
	return t.Slug == ""
}

// String returns the taxon name
func (t Taxon) String() string {
	return t.Name
}
