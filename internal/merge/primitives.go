// Package merge combines an incoming publication with its stored
// counterpart without losing curated data: a stored value is only ever
// replaced by a non-empty incoming value.
package merge

import (
	"strings"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

// PreferNonNull returns a copy of incoming if it holds a value, else a
// copy of existing. The result never aliases either argument.
func PreferNonNull(existing, incoming *string) *string {
	if !publication.IsBlank(incoming) {
		v := *incoming
		return &v
	}
	if existing == nil {
		return nil
	}
	v := *existing
	return &v
}

// MergeRange merges begin and end independently, so a range can be
// completed from two partial sources.
func MergeRange(existing, incoming publication.PageRange) publication.PageRange {
	return publication.PageRange{
		Begin: PreferNonNull(existing.Begin, incoming.Begin),
		End:   PreferNonNull(existing.End, incoming.End),
	}
}

// preferNonEmpty is PreferNonNull for plain strings.
func preferNonEmpty(existing, incoming string) string {
	if strings.TrimSpace(incoming) != "" {
		return incoming
	}
	return existing
}

// unionStrings returns the union of two string slices, preserving order.
func unionStrings(a, b []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	return result
}

// unionISBNs keeps existing ISBNs as written and appends incoming ISBNs
// that are not already present in normalized form.
func unionISBNs(existing, incoming []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, list := range [][]string{existing, incoming} {
		for _, isbn := range list {
			n := publication.NormalizeISBN(isbn)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			result = append(result, isbn)
		}
	}
	return result
}
