package match

import (
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

// EqualityPolicy decides whether a stored candidate and an incoming
// publication denote the same real-world work.
type EqualityPolicy func(candidate, incoming publication.Publication) bool

// SameWork is the default EqualityPolicy. Titles must agree after
// normalization (main or alternative titles). Instance kind, publication
// year, DOI, ISBNs and additional identifiers must not contradict each
// other where both sides carry them.
func SameWork(candidate, incoming publication.Publication) bool {
	if !titlesAgree(candidate.EntityDescription, incoming.EntityDescription) {
		return false
	}

	if ck, ik := candidate.Kind(), incoming.Kind(); ck != "" && ik != "" && ck != ik {
		return false
	}

	cy := candidate.EntityDescription.PublicationDate.Year
	iy := incoming.EntityDescription.PublicationDate.Year
	if cy != "" && iy != "" && cy != iy {
		return false
	}

	cd := publication.NormalizeDOI(candidate.DOI())
	id := publication.NormalizeDOI(incoming.DOI())
	if cd != "" && id != "" && cd != id {
		return false
	}

	if !isbnsOverlap(candidate.ISBNs(), incoming.ISBNs()) {
		return false
	}

	return !identifiersConflict(candidate.AdditionalIdentifiers, incoming.AdditionalIdentifiers)
}

// titlesAgree compares all normalized titles of both descriptions.
func titlesAgree(a, b publication.EntityDescription) bool {
	aTitles := normalizedTitles(a)
	if len(aTitles) == 0 {
		return false
	}
	for t := range normalizedTitles(b) {
		if aTitles[t] {
			return true
		}
	}
	return false
}

func normalizedTitles(d publication.EntityDescription) map[string]bool {
	titles := make(map[string]bool)
	if t := publication.NormalizeTitle(d.MainTitle); t != "" {
		titles[t] = true
	}
	for _, alt := range d.AlternativeTitles {
		if t := publication.NormalizeTitle(alt); t != "" {
			titles[t] = true
		}
	}
	return titles
}

// isbnsOverlap is true when either side has no ISBNs or they share one.
func isbnsOverlap(a, b []string) bool {
	na := publication.NormalizeISBNs(a)
	nb := publication.NormalizeISBNs(b)
	if len(na) == 0 || len(nb) == 0 {
		return true
	}
	set := make(map[string]bool, len(na))
	for _, isbn := range na {
		set[isbn] = true
	}
	for _, isbn := range nb {
		if set[isbn] {
			return true
		}
	}
	return false
}

// identifiersConflict is true when both sides carry an identifier from the
// same source system with different values.
func identifiersConflict(a, b []publication.AdditionalIdentifier) bool {
	bySource := make(map[string]string, len(a))
	for _, id := range a {
		bySource[id.SourceName] = id.Value
	}
	for _, id := range b {
		if v, ok := bySource[id.SourceName]; ok && v != "" && id.Value != "" && v != id.Value {
			return true
		}
	}
	return false
}
