package publication

import (
	"strings"
	"unicode"
)

// Str returns a pointer to s, or nil when s is blank.
func Str(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// IsBlank reports whether p is nil or holds only whitespace.
func IsBlank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

// Value dereferences p, returning "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// NormalizeTitle lowercases a title and reduces it to letters and digits
// separated by single spaces, so "The  Title: A Study." and
// "the title a study" compare equal.
func NormalizeTitle(title string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// doiPrefixes are resolver prefixes stripped from DOIs.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeDOI strips resolver prefixes and lowercases the DOI.
// DOIs are case-insensitive.
func NormalizeDOI(doi string) string {
	d := strings.TrimSpace(doi)
	lower := strings.ToLower(d)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			lower = lower[len(p):]
			break
		}
	}
	return strings.TrimSpace(lower)
}

// NormalizeISBN reduces an ISBN to its 13-digit form. Hyphens and spaces are
// dropped and ISBN-10 values are converted. Input that is not a plausible
// ISBN is returned with separators removed.
func NormalizeISBN(isbn string) string {
	var b strings.Builder
	for _, r := range isbn {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'x' || r == 'X':
			b.WriteRune('X')
		}
	}
	s := b.String()
	if len(s) == 10 {
		return isbn10To13(s)
	}
	return s
}

// isbn10To13 prefixes 978 and recomputes the check digit.
func isbn10To13(isbn10 string) string {
	body := "978" + isbn10[:9]
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return body + string(rune('0'+check))
}

// NormalizeISBNs normalizes and deduplicates a list of ISBNs, preserving order.
func NormalizeISBNs(isbns []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range isbns {
		n := NormalizeISBN(raw)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
